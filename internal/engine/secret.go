package engine

import (
	"fmt"
	"io"

	"itercommit/internal/commitcrypto"
)

const redacted = "[REDACTED]"

// Secret is the private input. It has no accessor: fmt verbs, JSON and text
// encodings all render a placeholder.
type Secret struct {
	b [PrivateLen]byte
}

// Wipe zeroes the secret.
func (s *Secret) Wipe() {
	commitcrypto.Wipe(s.b[:])
}

// IsZero reports whether every byte is zero, in constant time.
func (s *Secret) IsZero() bool {
	var zero commitcrypto.Digest
	return commitcrypto.ConstantTimeEqual(s.b, zero)
}

func (Secret) String() string   { return redacted }
func (Secret) GoString() string { return "engine.Secret{" + redacted + "}" }

// Format covers every verb, including %x and %#v.
func (Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

func (Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }
func (Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }
