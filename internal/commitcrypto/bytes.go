package commitcrypto

import (
	"crypto/subtle"
	"encoding/binary"
)

// U64LE encodes x as 8 little-endian bytes.
func U64LE(x uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, x)
	return b
}

// ConcatBytes joins chunks into one freshly allocated slice.
func ConcatBytes(chunks ...[]byte) []byte {
	var n int
	for _, c := range chunks {
		n += len(c)
	}
	out := make([]byte, 0, n)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	clear(b)
}

// ConstantTimeEqual reports whether a and b are equal without an early exit.
func ConstantTimeEqual(a, b Digest) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
