package codec

import (
	"bytes"
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"

	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
)

// ParseSecret reads a secret file's contents: exactly engine.PrivateLen raw
// bytes, or 2*engine.PrivateLen hex digits with an optional 0x prefix and
// surrounding whitespace. Anything else is ErrInvalidSecret; nothing is padded
// or truncated. The error never echoes raw.
func ParseSecret(raw []byte) ([]byte, error) {
	if len(raw) == engine.PrivateLen {
		return append([]byte(nil), raw...), nil
	}
	digits := bytes.TrimSpace(raw)
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}
	if len(digits) != 2*engine.PrivateLen {
		return nil, errorsmod.Wrapf(ErrInvalidSecret, "need %d raw bytes or %d hex digits, got %d bytes",
			engine.PrivateLen, 2*engine.PrivateLen, len(raw))
	}
	secret := make([]byte, engine.PrivateLen)
	if _, err := hex.Decode(secret, digits); err != nil {
		commitcrypto.Wipe(secret)
		return nil, errorsmod.Wrap(ErrInvalidSecret, "secret is not valid hex")
	}
	return secret, nil
}
