package codec

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	errorsmod "cosmossdk.io/errors"

	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
)

// File names of the two-file layout.
const (
	PublicFile  = "public.bin"
	PrivateFile = "private.bin"
	InputFile   = "input.bin"
)

// EncodeInput produces the concatenated input buffer for n rounds over secret.
// secret must be exactly engine.PrivateLen bytes.
func EncodeInput(n uint64, secret []byte) ([]byte, error) {
	if len(secret) != engine.PrivateLen {
		return nil, errorsmod.Wrapf(ErrInvalidSecret, "secret is %d bytes, want %d", len(secret), engine.PrivateLen)
	}
	buf := make([]byte, engine.InputLen)
	binary.LittleEndian.PutUint64(buf[:engine.PublicLen], n)
	copy(buf[engine.PublicLen:], secret)
	return buf, nil
}

// SplitInput returns copies of the public and private parts of buf.
func SplitInput(buf []byte) (public, private []byte, err error) {
	if len(buf) < engine.InputLen {
		return nil, nil, errorsmod.Wrapf(engine.ErrMalformedInput, "input is %d bytes, need at least %d", len(buf), engine.InputLen)
	}
	public = append([]byte(nil), buf[:engine.PublicLen]...)
	private = append([]byte(nil), buf[engine.PublicLen:engine.InputLen]...)
	return public, private, nil
}

// JoinInput concatenates separately supplied parts into the logical input
// buffer. public must be exactly engine.PublicLen bytes so the secret lands at
// its fixed offset; private may carry trailing bytes, which the engine ignores.
func JoinInput(public, private []byte) ([]byte, error) {
	if len(public) != engine.PublicLen {
		return nil, errorsmod.Wrapf(engine.ErrMalformedInput, "public part is %d bytes, want %d", len(public), engine.PublicLen)
	}
	if len(private) < engine.PrivateLen {
		return nil, errorsmod.Wrapf(engine.ErrMalformedInput, "private part is %d bytes, need at least %d", len(private), engine.PrivateLen)
	}
	return commitcrypto.ConcatBytes(public, private), nil
}

// WriteInputFiles writes public.bin and private.bin into dir. The private file
// is created owner-readable only.
func WriteInputFiles(dir string, n uint64, secret []byte) error {
	buf, err := EncodeInput(n, secret)
	if err != nil {
		return err
	}
	defer commitcrypto.Wipe(buf)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, PublicFile), buf[:engine.PublicLen], 0o644); err != nil {
		return fmt.Errorf("write %s: %w", PublicFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, PrivateFile), buf[engine.PublicLen:], 0o600); err != nil {
		return fmt.Errorf("write %s: %w", PrivateFile, err)
	}
	return nil
}

// WriteInputFile writes the concatenated buffer to path, owner-readable only.
func WriteInputFile(path string, n uint64, secret []byte) error {
	buf, err := EncodeInput(n, secret)
	if err != nil {
		return err
	}
	defer commitcrypto.Wipe(buf)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadInputFiles reads and joins the two-file layout. The caller owns the
// returned buffer and should Wipe it when done.
func ReadInputFiles(publicPath, privatePath string) ([]byte, error) {
	public, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public input: %w", err)
	}
	private, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("read private input: %w", err)
	}
	defer commitcrypto.Wipe(private)
	return JoinInput(public, private)
}

// ReadInputFile reads a single concatenated input buffer.
func ReadInputFile(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return buf, nil
}
