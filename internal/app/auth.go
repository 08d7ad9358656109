package app

import (
	"crypto/ed25519"
	"crypto/sha256"
	"strconv"

	"rpschain/internal/codec"
	"rpschain/internal/state"
)

const txAuthDomainV1 = "rps/tx/v1"

// TxSignBytes returns the bytes a signer signs for a tx envelope:
// DOMAIN || 0x00 || type || 0x00 || nonce || 0x00 || signer || 0x00 || sha256(value)
func TxSignBytes(typ string, value []byte, nonce string, signer string) []byte {
	sum := sha256.Sum256(value)
	out := make([]byte, 0, len(txAuthDomainV1)+1+len(typ)+1+len(nonce)+1+len(signer)+1+sha256.Size)
	out = append(out, []byte(txAuthDomainV1)...)
	out = append(out, 0)
	out = append(out, []byte(typ)...)
	out = append(out, 0)
	out = append(out, []byte(nonce)...)
	out = append(out, 0)
	out = append(out, []byte(signer)...)
	out = append(out, 0)
	out = append(out, sum[:]...)
	return out
}

func requireSignedEnvelope(env codec.TxEnvelope) error {
	if env.Nonce == "" {
		return ErrUnauthorized.Wrap("missing tx.nonce")
	}
	if env.Signer == "" {
		return ErrUnauthorized.Wrap("missing tx.signer")
	}
	if len(env.Sig) != ed25519.SignatureSize {
		return ErrUnauthorized.Wrapf("invalid tx.sig length: got %d want %d", len(env.Sig), ed25519.SignatureSize)
	}
	return nil
}

// parseNonce checks that the envelope nonce is a decimal u64 strictly above the
// signer's last accepted nonce.
func parseNonce(st *state.State, env codec.TxEnvelope) (uint64, error) {
	n, err := strconv.ParseUint(env.Nonce, 10, 64)
	if err != nil {
		return 0, ErrInvalidNonce.Wrapf("nonce %q is not a u64", env.Nonce)
	}
	if last := st.NonceMax[env.Signer]; n <= last {
		return 0, ErrInvalidNonce.Wrapf("nonce %d must exceed %d", n, last)
	}
	return n, nil
}

func requireRegisterAccountAuth(env codec.TxEnvelope, msg codec.AuthRegisterAccountTx) error {
	if msg.Account == "" {
		return ErrUnauthorized.Wrap("missing account")
	}
	if len(msg.PubKey) != ed25519.PublicKeySize {
		return ErrUnauthorized.Wrapf("pubKey must be %d bytes", ed25519.PublicKeySize)
	}
	if err := requireSignedEnvelope(env); err != nil {
		return err
	}
	if env.Signer != msg.Account {
		return ErrUnauthorized.Wrapf("tx signer mismatch: signer=%q want=%q", env.Signer, msg.Account)
	}
	if !ed25519.Verify(ed25519.PublicKey(msg.PubKey), TxSignBytes(env.Type, env.Value, env.Nonce, env.Signer), env.Sig) {
		return ErrUnauthorized.Wrap("invalid signature")
	}
	return nil
}

// requireAccountAuth verifies env was signed by the key registered for its signer.
func requireAccountAuth(st *state.State, env codec.TxEnvelope) error {
	if err := requireSignedEnvelope(env); err != nil {
		return err
	}
	pub := st.AccountKeys[env.Signer]
	if len(pub) != ed25519.PublicKeySize {
		return ErrUnauthorized.Wrapf("account %q missing pubKey (auth/register_account required)", env.Signer)
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), TxSignBytes(env.Type, env.Value, env.Nonce, env.Signer), env.Sig) {
		return ErrUnauthorized.Wrap("invalid signature")
	}
	return nil
}

// authenticate runs the signature and nonce checks for env against st and
// returns the nonce to record on success. bank/mint is the unsigned devnet
// faucet and needs neither.
func authenticate(st *state.State, env codec.TxEnvelope, register *codec.AuthRegisterAccountTx) (uint64, error) {
	if env.Type == codec.TypeBankMint {
		return 0, nil
	}
	var err error
	if register != nil {
		err = requireRegisterAccountAuth(env, *register)
	} else {
		err = requireAccountAuth(st, env)
	}
	if err != nil {
		return 0, err
	}
	return parseNonce(st, env)
}
