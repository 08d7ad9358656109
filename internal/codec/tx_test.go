package codec

import (
	"encoding/json"
	"testing"

	"rpschain/x/rps/types"
)

func TestDecodeTxEnvelope_OK(t *testing.T) {
	b, err := json.Marshal(map[string]any{
		"type":  "bank/mint",
		"value": map[string]any{"to": "alice", "amount": 123},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	env, err := DecodeTxEnvelope(b)
	if err != nil {
		t.Fatalf("DecodeTxEnvelope: %v", err)
	}
	if env.Type != TypeBankMint {
		t.Fatalf("unexpected type: %q", env.Type)
	}

	var v BankMintTx
	if err := json.Unmarshal(env.Value, &v); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if v.To != "alice" || v.Amount != 123 {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestDecodeTxEnvelope_MissingType(t *testing.T) {
	b, err := json.Marshal(map[string]any{
		"value": map[string]any{"x": 1},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeTxEnvelope(b); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDecodeTxEnvelope_InvalidJSON(t *testing.T) {
	if _, err := DecodeTxEnvelope([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEnrollPlayer1Tx_CommitmentAsHex(t *testing.T) {
	d, err := types.ComputeCommitment([]byte("game"), types.MoveRock, "alice")
	if err != nil {
		t.Fatalf("commitment: %v", err)
	}

	raw := `{"deadline":17,"commitment":"` + d.String() + `","player2":"bob","stake":500}`
	var msg EnrollPlayer1Tx
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Commitment != d || msg.Deadline != 17 {
		t.Fatalf("unexpected value: %+v", msg)
	}

	var bad EnrollPlayer1Tx
	if err := json.Unmarshal([]byte(`{"commitment":"0x1234"}`), &bad); err == nil {
		t.Fatalf("expected short commitment to be rejected")
	}
}
