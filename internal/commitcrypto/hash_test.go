package commitcrypto

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisteredHashers_EmptyInputVectors(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"sha256", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha3-256", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{"blake2b-256", "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"},
		{"blake2s-256", "69217a3079908094e11121d042354a7c1f55b6482ca1a51e1b250dfd1ed0eef9"},
		{"blake3", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := Lookup(tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.name, h.Name())
			d := Sum(h, nil)
			require.Equal(t, tc.want, hex.EncodeToString(d[:]))
		})
	}
}

func TestSHA256_ABC(t *testing.T) {
	d := Sum(MustLookup(DefaultHash), []byte("abc"))
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(d[:]))
}

func TestNames_SortedAndComplete(t *testing.T) {
	require.Equal(t, []string{"blake2b-256", "blake2s-256", "blake3", "sha256", "sha3-256"}, Names())
	for _, n := range Names() {
		require.Equal(t, DigestSize, MustLookup(n).New().Size())
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("md5")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownHash))
	require.ErrorContains(t, err, `"md5"`)
}

func TestMustLookup_PanicsOnUnknown(t *testing.T) {
	require.Panics(t, func() { MustLookup("crc32") })
}

func TestRegister_RejectsWrongDigestSize(t *testing.T) {
	require.PanicsWithValue(t, `commitcrypto: hasher "sha512" has 64-byte digest, want 32`, func() {
		register("sha512", sha512.New)
	})
	_, err := Lookup("sha512")
	require.Error(t, err)
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	require.Panics(t, func() { register("sha256", MustLookup("sha256").New) })
}

func TestWipe(t *testing.T) {
	b := bytes.Repeat([]byte{0xAB}, 40)
	Wipe(b)
	require.Equal(t, make([]byte, 40), b)
}

func TestConstantTimeEqual(t *testing.T) {
	var a, b Digest
	a[31] = 1
	require.False(t, ConstantTimeEqual(a, b))
	b[31] = 1
	require.True(t, ConstantTimeEqual(a, b))
}

func TestU64LEAndConcat(t *testing.T) {
	got := ConcatBytes(U64LE(5), []byte{0xFF})
	require.Equal(t, []byte{5, 0, 0, 0, 0, 0, 0, 0, 0xFF}, got)
}
