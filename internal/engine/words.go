package engine

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"itercommit/internal/commitcrypto"
)

const (
	// WordSize is the byte width of one output word.
	WordSize = 4
	// WordCount is the number of words per commitment.
	WordCount = commitcrypto.DigestSize / WordSize
)

// Words is a commitment: a digest split into WordCount unsigned words.
type Words [WordCount]uint32

// WordOrder selects how each 4-byte chunk is read as a uint32.
type WordOrder uint8

const (
	// LittleEndian is the default.
	LittleEndian WordOrder = iota
	// BigEndian matches guests that emit u32::from_be_bytes chunks.
	BigEndian
)

func (o WordOrder) String() string {
	switch o {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

func (o WordOrder) byteOrder() binary.ByteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	default:
		return nil
	}
}

// ParseWordOrder accepts "little"/"le" and "big"/"be".
func ParseWordOrder(s string) (WordOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	default:
		return 0, errorsmod.Wrapf(ErrUnknownWordOrder, "%q", s)
	}
}

func (o WordOrder) MarshalText() ([]byte, error) {
	if o.byteOrder() == nil {
		return nil, errorsmod.Wrapf(ErrUnknownWordOrder, "%d", uint8(o))
	}
	return []byte(o.String()), nil
}

func (o *WordOrder) UnmarshalText(b []byte) error {
	v, err := ParseWordOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// EncodeWords splits d into words: word[i] is d[4i:4i+4] read in order o.
func EncodeWords(d commitcrypto.Digest, o WordOrder) Words {
	bo := o.byteOrder()
	var w Words
	for i := range w {
		w[i] = bo.Uint32(d[i*WordSize:])
	}
	return w
}

// Digest reassembles the digest EncodeWords(d, o) was built from.
func (w Words) Digest(o WordOrder) commitcrypto.Digest {
	bo := o.byteOrder()
	var d commitcrypto.Digest
	for i, v := range w {
		bo.PutUint32(d[i*WordSize:], v)
	}
	return d
}

// String renders the words as comma-separated 0x-prefixed hex, the form
// ParseWords reads back.
func (w Words) String() string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = fmt.Sprintf("0x%08x", v)
	}
	return strings.Join(parts, ",")
}

// ParseWords reads exactly WordCount comma-separated words, each decimal or
// 0x-prefixed hex.
func ParseWords(s string) (Words, error) {
	var w Words
	parts := strings.Split(s, ",")
	if len(parts) != WordCount {
		return w, errorsmod.Wrapf(ErrMalformedWords, "got %d words, want %d", len(parts), WordCount)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 32)
		if err != nil {
			return Words{}, errorsmod.Wrapf(ErrMalformedWords, "word %d: %v", i, err)
		}
		w[i] = uint32(v)
	}
	return w, nil
}
