package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecret_NeverFormatted(t *testing.T) {
	in, err := ParseInput(buildInput(3, bytes.Repeat([]byte{0xAB}, PrivateLen)))
	require.NoError(t, err)

	for _, verb := range []string{"%v", "%+v", "%#v", "%s", "%x", "%X", "%q", "%d"} {
		for _, v := range []any{in.Secret, &in.Secret, *in, in} {
			out := fmt.Sprintf(verb, v)
			require.NotContains(t, strings.ToLower(out), "abab", "verb %s leaked: %s", verb, out)
			require.NotContains(t, out, "171", "verb %s leaked: %s", verb, out)
		}
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"iterations":3,"secret":"[REDACTED]"}`, string(b))
}

func TestSecret_Wipe(t *testing.T) {
	in, err := ParseInput(buildInput(0, bytes.Repeat([]byte{0x01}, PrivateLen)))
	require.NoError(t, err)
	require.False(t, in.Secret.IsZero())
	in.Secret.Wipe()
	require.True(t, in.Secret.IsZero())
}
