package types

import (
	"encoding/hex"
	"strings"
)

// DigestSize is the byte length of a commitment digest.
const DigestSize = 32

// Digest identifies a game: the commitment published by player 1.
type Digest [DigestSize]byte

func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) String() string {
	return "0x" + hex.EncodeToString(d[:])
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest decodes a hex digest, with or without the 0x prefix.
func ParseDigest(s string) (Digest, error) {
	ss := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if len(ss) != 2*DigestSize {
		return Digest{}, ErrInvalidRequest.Wrapf("digest must be %d hex chars, got %d", 2*DigestSize, len(ss))
	}
	b, err := hex.DecodeString(ss)
	if err != nil {
		return Digest{}, ErrInvalidRequest.Wrapf("digest hex: %v", err)
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}
