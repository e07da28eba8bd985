package engine

import (
	"hash"
	"math/bits"

	errorsmod "cosmossdk.io/errors"

	"itercommit/internal/commitcrypto"
)

// Iterate replaces *acc with H^n(*acc). Each round hashes the previous round's
// digest, so rounds run strictly in order. n = 0 leaves acc untouched.
//
// The loop counter is a uint; n it cannot represent fails with
// ErrIterationOverflow before any hashing. A hasher whose digest is not
// commitcrypto.DigestSize bytes fails with ErrDigestSize, also before hashing.
func Iterate(h commitcrypto.Hasher, acc *commitcrypto.Digest, n uint64) error {
	if !counterFits(n, bits.UintSize) {
		return errorsmod.Wrapf(ErrIterationOverflow, "%d iterations do not fit a %d-bit counter", n, bits.UintSize)
	}
	if n == 0 {
		return nil
	}
	hh := h.New()
	if size := hh.Size(); size != commitcrypto.DigestSize {
		return errorsmod.Wrapf(ErrDigestSize, "hasher %q produces %d bytes, want %d", h.Name(), size, commitcrypto.DigestSize)
	}
	for i, rounds := uint(0), uint(n); i < rounds; i++ {
		hh.Reset()
		hh.Write(acc[:])
		// Sum appends into acc's backing array: DigestSize fits its capacity.
		hh.Sum(acc[:0])
	}
	scrub(hh)
	return nil
}

// scrub overwrites the block buffer a hash state keeps its last input in.
func scrub(hh hash.Hash) {
	var zero commitcrypto.Digest
	hh.Reset()
	hh.Write(zero[:])
	hh.Reset()
}

func counterFits(n uint64, width int) bool {
	if width >= 64 {
		return true
	}
	return n>>uint(width) == 0
}
