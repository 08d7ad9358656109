package types

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

var commitmentDomain = []byte("rps/commit/v1")

func writeLenPrefixed(h hash.Hash, b []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(b)))
	h.Write(n[:])
	h.Write(b)
}

// ComputeCommitment binds secret, move and committer into a Keccak-256 digest.
//
// Every variable-length input is length-prefixed, so two distinct triples can
// never produce the same preimage. The move is validated before hashing; a
// commitment to an illegal move cannot be constructed. Secret entropy is the
// caller's responsibility.
func ComputeCommitment(secret []byte, move Move, committer string) (Digest, error) {
	if !move.Valid() {
		return Digest{}, ErrInvalidMove.Wrapf("move %d not in 1..3", uint8(move))
	}
	if committer == "" {
		return Digest{}, ErrInvalidRequest.Wrap("missing committer address")
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(commitmentDomain)
	writeLenPrefixed(h, secret)
	h.Write([]byte{byte(move)})
	writeLenPrefixed(h, []byte(committer))

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// VerifyCommitment recomputes the digest and compares it with want.
func VerifyCommitment(want Digest, secret []byte, move Move, committer string) error {
	got, err := ComputeCommitment(secret, move, committer)
	if err != nil {
		return err
	}
	if got != want {
		return ErrRevealMismatch.Wrapf("commitment %s", want)
	}
	return nil
}
