package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	errorsmod "cosmossdk.io/errors"

	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
)

// JSON input file names.
const (
	InputJSONFile  = "input.json"
	PublicJSONFile = "public.json"
)

// PublicJSON is the public half of input.json, and all of public.json.
type PublicJSON struct {
	N uint64 `json:"n"`
}

// inputJSON is {"public":{"n":N},"private":{"secret":"..."}}. The secret
// string's bytes are the secret.
type inputJSON struct {
	Public *struct {
		N *uint64 `json:"n"`
	} `json:"public"`
	Private *struct {
		Secret *string `json:"secret"`
	} `json:"private"`
}

// DecodeInputJSON returns the round count and secret held in an input.json
// document. The secret must be exactly engine.PrivateLen bytes. Errors never
// carry the secret.
func DecodeInputJSON(b []byte) (uint64, []byte, error) {
	var in inputJSON
	if err := json.Unmarshal(b, &in); err != nil {
		// Syntax errors quote the offending character, which may be secret.
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return 0, nil, errorsmod.Wrapf(engine.ErrMalformedInput, "input json: syntax error at offset %d", syntaxErr.Offset)
		}
		return 0, nil, errorsmod.Wrapf(engine.ErrMalformedInput, "input json: %v", err)
	}
	if in.Public == nil || in.Public.N == nil {
		return 0, nil, errorsmod.Wrap(engine.ErrMalformedInput, "input json: missing public.n")
	}
	if in.Private == nil || in.Private.Secret == nil {
		return 0, nil, errorsmod.Wrap(engine.ErrMalformedInput, "input json: missing private.secret")
	}
	secret := []byte(*in.Private.Secret)
	if len(secret) != engine.PrivateLen {
		commitcrypto.Wipe(secret)
		return 0, nil, errorsmod.Wrapf(ErrInvalidSecret, "private.secret is %d bytes, want %d", len(secret), engine.PrivateLen)
	}
	return *in.Public.N, secret, nil
}

// ConvertInputJSON reads jsonPath, writes the concatenated input.bin into
// outDir and echoes the public part to public.json beside it.
func ConvertInputJSON(jsonPath, outDir string) (PublicJSON, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return PublicJSON{}, fmt.Errorf("read input json: %w", err)
	}
	defer commitcrypto.Wipe(b)

	n, secret, err := DecodeInputJSON(b)
	if err != nil {
		return PublicJSON{}, err
	}
	defer commitcrypto.Wipe(secret)

	if err := WriteInputFile(filepath.Join(outDir, InputFile), n, secret); err != nil {
		return PublicJSON{}, err
	}
	pub := PublicJSON{N: n}
	pb, err := json.MarshalIndent(pub, "", "  ")
	if err != nil {
		return PublicJSON{}, fmt.Errorf("encode %s: %w", PublicJSONFile, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, PublicJSONFile), append(pb, '\n'), 0o644); err != nil {
		return PublicJSON{}, fmt.Errorf("write %s: %w", PublicJSONFile, err)
	}
	return pub, nil
}
