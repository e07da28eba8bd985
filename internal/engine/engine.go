package engine

import (
	"fmt"

	"itercommit/internal/commitcrypto"
)

// Engine computes commitments with one hash primitive and word order.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	hasher commitcrypto.Hasher
	order  WordOrder
}

// New panics on a nil hasher, an unknown order, or a hasher whose digest is
// not commitcrypto.DigestSize bytes.
func New(hasher commitcrypto.Hasher, order WordOrder) *Engine {
	if hasher == nil {
		panic("engine: hasher is nil")
	}
	if size := hasher.New().Size(); size != commitcrypto.DigestSize {
		panic(fmt.Sprintf("engine: hasher %q produces %d-byte digests, want %d", hasher.Name(), size, commitcrypto.DigestSize))
	}
	if order.byteOrder() == nil {
		panic(fmt.Sprintf("engine: unknown word order %d", uint8(order)))
	}
	return &Engine{hasher: hasher, order: order}
}

// Default uses SHA-256 and little-endian words.
func Default() *Engine {
	return New(commitcrypto.MustLookup(commitcrypto.DefaultHash), LittleEndian)
}

func (e *Engine) HashName() string { return e.hasher.Name() }
func (e *Engine) Order() WordOrder { return e.order }

// Commitment is the public result of one call.
type Commitment struct {
	Iterations uint64    `json:"iterations"`
	Hash       string    `json:"hash"`
	Order      WordOrder `json:"wordOrder"`
	Words      Words     `json:"words"`
}

// Digest reassembles the final digest from the words.
func (c Commitment) Digest() commitcrypto.Digest {
	return c.Words.Digest(c.Order)
}

// Commit parses buf and commits to its secret. buf is not modified or retained.
func (e *Engine) Commit(buf []byte) (Commitment, error) {
	in, err := ParseInput(buf)
	if err != nil {
		return Commitment{}, err
	}
	return e.CommitInput(in)
}

// CommitInput consumes in: its secret is the accumulator that gets hashed in
// place, and it is zeroed before CommitInput returns, on success or failure.
func (e *Engine) CommitInput(in *Input) (Commitment, error) {
	defer in.Secret.Wipe()

	acc := &in.Secret.b
	if err := Iterate(e.hasher, acc, in.Iterations); err != nil {
		return Commitment{}, err
	}
	return Commitment{
		Iterations: in.Iterations,
		Hash:       e.hasher.Name(),
		Order:      e.order,
		Words:      EncodeWords(*acc, e.order),
	}, nil
}
