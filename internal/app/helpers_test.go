package app

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"testing"

	abci "github.com/cometbft/cometbft/abci/types"

	"cosmossdk.io/log"

	"rpschain/internal/codec"
	"rpschain/internal/store"
	"rpschain/x/rps/types"
)

var testNonce atomic.Uint64

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func txBytes(t *testing.T, typ string, value any) []byte {
	t.Helper()
	return mustMarshal(t, map[string]any{
		"type":  typ,
		"value": value,
	})
}

func testEd25519Key(id string) (ed25519.PublicKey, ed25519.PrivateKey) {
	seed := sha256.Sum256([]byte("rps-test-key:" + id))
	priv := ed25519.NewKeyFromSeed(seed[:])
	return priv.Public().(ed25519.PublicKey), priv
}

func signedEnvelope(t *testing.T, typ string, value any, signer string, key ed25519.PrivateKey, nonce string) []byte {
	t.Helper()
	valueBytes := mustMarshal(t, value)
	sig := ed25519.Sign(key, TxSignBytes(typ, valueBytes, nonce, signer))
	return mustMarshal(t, codec.TxEnvelope{
		Type:   typ,
		Value:  valueBytes,
		Nonce:  nonce,
		Signer: signer,
		Sig:    sig,
	})
}

func txBytesSigned(t *testing.T, typ string, value any, signer string) []byte {
	t.Helper()
	_, priv := testEd25519Key(signer)
	return signedEnvelope(t, typ, value, signer, priv, strconv.FormatUint(testNonce.Add(1), 10))
}

func findEvent(events []abci.Event, typ string) *abci.Event {
	for i := range events {
		if events[i].Type == typ {
			return &events[i]
		}
	}
	return nil
}

func attr(ev *abci.Event, key string) string {
	if ev == nil {
		return ""
	}
	for _, a := range ev.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

func newTestAppWithStore(t *testing.T, db *store.Store) *RPSApp {
	t.Helper()
	a, err := New(log.NewNopLogger(), db, types.DefaultParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func newTestApp(t *testing.T) *RPSApp {
	t.Helper()
	return newTestAppWithStore(t, store.NewMemStore())
}

func mustOk(t *testing.T, res *abci.ExecTxResult) *abci.ExecTxResult {
	t.Helper()
	if res.Code != 0 {
		t.Fatalf("expected ok, got code=%d codespace=%q log=%q", res.Code, res.Codespace, res.Log)
	}
	return res
}

type abciCoded interface {
	Codespace() string
	ABCICode() uint32
}

func mustFailWith(t *testing.T, res *abci.ExecTxResult, want abciCoded) {
	t.Helper()
	if res.Code == 0 {
		t.Fatalf("expected %s/%d, got ok", want.Codespace(), want.ABCICode())
	}
	if res.Codespace != want.Codespace() || res.Code != want.ABCICode() {
		t.Fatalf("expected %s/%d, got %s/%d log=%q", want.Codespace(), want.ABCICode(), res.Codespace, res.Code, res.Log)
	}
}

func mintTestTokens(t *testing.T, a *RPSApp, height int64, to string, amount uint64) {
	t.Helper()
	mustOk(t, a.deliverTx(txBytes(t, codec.TypeBankMint, map[string]any{"to": to, "amount": amount}), height))
}

func registerTestAccount(t *testing.T, a *RPSApp, height int64, account string) {
	t.Helper()
	pub, _ := testEd25519Key(account)
	mustOk(t, a.deliverTx(txBytesSigned(t, codec.TypeAuthRegisterAccount, map[string]any{
		"account": account,
		"pubKey":  []byte(pub),
	}, account), height))
}

func commitmentFor(t *testing.T, secret string, move types.Move, player string) types.Digest {
	t.Helper()
	d, err := types.ComputeCommitment([]byte(secret), move, player)
	if err != nil {
		t.Fatalf("commitment: %v", err)
	}
	return d
}

// setupPlayers funds and registers alice and bob with 1000 each.
func setupPlayers(t *testing.T, a *RPSApp, height int64) {
	t.Helper()
	for _, p := range []string{"alice", "bob"} {
		mintTestTokens(t, a, height, p, 1000)
		registerTestAccount(t, a, height, p)
	}
}

func enrollPlayer1Tx(t *testing.T, d types.Digest, deadline uint64) []byte {
	t.Helper()
	return txBytesSigned(t, codec.TypeEnrollPlayer1, map[string]any{
		"deadline":   deadline,
		"commitment": d.String(),
		"player2":    "bob",
		"stake":      types.DefaultStake,
	}, "alice")
}

func enrollPlayer2Tx(t *testing.T, d types.Digest, move types.Move) []byte {
	t.Helper()
	return txBytesSigned(t, codec.TypeEnrollPlayer2, map[string]any{
		"commitment": d.String(),
		"move":       move,
		"stake":      types.DefaultStake,
	}, "bob")
}

func revealTx(t *testing.T, d types.Digest, move types.Move, secret string) []byte {
	t.Helper()
	return txBytesSigned(t, codec.TypeReveal, map[string]any{
		"commitment": d.String(),
		"move":       move,
		"secret":     []byte(secret),
	}, "alice")
}

func withdrawTx(t *testing.T, signer string) []byte {
	t.Helper()
	return txBytesSigned(t, codec.TypeWithdraw, map[string]any{}, signer)
}

func queryJSON(t *testing.T, a *RPSApp, path string, data []byte, out any) *abci.QueryResponse {
	t.Helper()
	res, err := a.Query(t.Context(), &abci.QueryRequest{Path: path, Data: data})
	if err != nil {
		t.Fatalf("query %s: %v", path, err)
	}
	if res.Code == 0 && out != nil {
		if err := json.Unmarshal(res.Value, out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return res
}
