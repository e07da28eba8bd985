package engine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildInput(n uint64, secret []byte, extra ...byte) []byte {
	buf := make([]byte, PublicLen, InputLen+len(extra))
	binary.LittleEndian.PutUint64(buf, n)
	buf = append(buf, secret...)
	return append(buf, extra...)
}

func TestLayoutConstants(t *testing.T) {
	require.Equal(t, 8, PublicLen)
	require.Equal(t, 32, PrivateLen)
	require.Equal(t, 40, InputLen)
	require.Equal(t, 8, WordCount)
}

func TestParseInput_LengthBoundary(t *testing.T) {
	cases := []struct {
		length int
		ok     bool
	}{
		{0, false},
		{1, false},
		{8, false},
		{39, false},
		{40, true},
		{41, true},
		{100, true},
	}
	for _, tc := range cases {
		buf := bytes.Repeat([]byte{0x07}, tc.length)
		in, err := ParseInput(buf)
		if tc.ok {
			require.NoError(t, err, "len=%d", tc.length)
			require.NotNil(t, in)
			continue
		}
		require.Error(t, err, "len=%d", tc.length)
		require.True(t, errors.Is(err, ErrMalformedInput), "len=%d: %v", tc.length, err)
		require.Nil(t, in)
	}
}

func TestParseInput_Decodes(t *testing.T) {
	secret := make([]byte, PrivateLen)
	for i := range secret {
		secret[i] = byte(i)
	}
	buf := buildInput(0x0102030405060708, secret, 0xEE, 0xEE)
	orig := bytes.Clone(buf)

	in, err := ParseInput(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), in.Iterations)
	require.Equal(t, secret, in.Secret.b[:])
	require.Equal(t, orig, buf, "input buffer must not be modified")

	// The parsed secret is a copy.
	buf[PublicLen] = 0xFF
	require.Equal(t, byte(0), in.Secret.b[0])
}

func TestParseInput_ErrorOmitsSecretBytes(t *testing.T) {
	buf := buildInput(9, bytes.Repeat([]byte{0x5C}, 31))
	_, err := ParseInput(buf)
	require.Error(t, err)
	require.Equal(t, "input is 39 bytes, need at least 40: malformed input", err.Error())
}
