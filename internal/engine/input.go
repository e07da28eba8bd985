package engine

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"

	"itercommit/internal/commitcrypto"
)

const (
	// PublicLen is the size of the little-endian iteration count.
	PublicLen = 8
	// PrivateLen is the size of the secret; it equals one digest.
	PrivateLen = commitcrypto.DigestSize
	// InputLen is the minimum accepted buffer length.
	InputLen = PublicLen + PrivateLen
)

// Input is a decoded input buffer.
type Input struct {
	Iterations uint64 `json:"iterations"`
	Secret     Secret `json:"secret"`
}

// ParseInput decodes buf. Buffers shorter than InputLen fail with
// ErrMalformedInput; bytes past InputLen are ignored. The returned Input owns
// a copy of the secret and buf is neither modified nor retained.
func ParseInput(buf []byte) (*Input, error) {
	if len(buf) < InputLen {
		return nil, errorsmod.Wrapf(ErrMalformedInput, "input is %d bytes, need at least %d", len(buf), InputLen)
	}
	in := &Input{
		Iterations: binary.LittleEndian.Uint64(buf[:PublicLen]),
	}
	copy(in.Secret.b[:], buf[PublicLen:InputLen])
	return in, nil
}
