package codec

import (
	"encoding/json"
	"fmt"

	"rpschain/x/rps/types"
)

// TxEnvelope is the transaction container.
//
// CometBFT transactions are opaque bytes; we use JSON-encoded txs.
type TxEnvelope struct {
	// Basic routing.
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`

	// Tx auth:
	// - Nonce: decimal u64, must increase per signer.
	// - Signer: account id; the caller identity of every rps/* tx.
	// - Sig: Ed25519 signature over (type, nonce, signer, sha256(value)).
	Nonce  string `json:"nonce,omitempty"`
	Signer string `json:"signer,omitempty"`
	Sig    []byte `json:"sig,omitempty"`
}

func DecodeTxEnvelope(txBytes []byte) (TxEnvelope, error) {
	var env TxEnvelope
	if err := json.Unmarshal(txBytes, &env); err != nil {
		return TxEnvelope{}, fmt.Errorf("invalid tx json: %w", err)
	}
	if env.Type == "" {
		return TxEnvelope{}, fmt.Errorf("missing tx.type")
	}
	return env, nil
}

// Tx type routes.
const (
	TypeBankMint            = "bank/mint"
	TypeBankSend            = "bank/send"
	TypeAuthRegisterAccount = "auth/register_account"
	TypeEnrollPlayer1       = "rps/enroll_player1"
	TypeEnrollPlayer2       = "rps/enroll_player2"
	TypeReveal              = "rps/reveal"
	TypeQuitPlayer1         = "rps/quit_player1"
	TypeQuitPlayer2         = "rps/quit_player2"
	TypeWithdraw            = "rps/withdraw"
)

// ---- Bank ----

type BankMintTx struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type BankSendTx struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// ---- Auth ----

type AuthRegisterAccountTx struct {
	Account string `json:"account"`
	PubKey  []byte `json:"pubKey"` // base64 (32 bytes)
}

// ---- RPS ----

// Stake fields carry the value attached to the call.

type EnrollPlayer1Tx struct {
	Deadline   uint64       `json:"deadline"`
	Commitment types.Digest `json:"commitment"`
	Player2    string       `json:"player2"`
	Stake      uint64       `json:"stake"`
}

type EnrollPlayer2Tx struct {
	Commitment types.Digest `json:"commitment"`
	Move       types.Move   `json:"move"`
	Stake      uint64       `json:"stake"`
}

type RevealTx struct {
	Commitment types.Digest `json:"commitment"`
	Move       types.Move   `json:"move"`
	Secret     []byte       `json:"secret"` // base64
}

type QuitPlayer1Tx struct {
	Commitment types.Digest `json:"commitment"`
}

type QuitPlayer2Tx struct {
	Commitment types.Digest `json:"commitment"`
}

type WithdrawTx struct{}

// CommitmentQuery is the request body of the /commitment query.
type CommitmentQuery struct {
	Secret  []byte     `json:"secret"` // base64
	Move    types.Move `json:"move"`
	Address string     `json:"address"`
}
