package commitcrypto

import (
	"fmt"
	"hash"
	"sort"

	errorsmod "cosmossdk.io/errors"
	sha256 "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the output size in bytes of every registered hash primitive.
// Word chunking downstream assumes it; changing it changes the commitment shape.
const DigestSize = 32

// Digest is one hash output.
type Digest = [DigestSize]byte

// DefaultHash is the primitive used when none is configured.
const DefaultHash = "sha256"

// Codespace for commitcrypto errors.
const Codespace = "commitcrypto"

var ErrUnknownHash = errorsmod.Register(Codespace, 1, "unknown hash primitive")

// Hasher names a hash primitive and builds fresh instances of it.
//
// New must return a hash.Hash whose Size is DigestSize. Instances are not
// shared between goroutines; callers Reset and reuse one per computation.
type Hasher interface {
	Name() string
	New() hash.Hash
}

type hasherFunc struct {
	name string
	fn   func() hash.Hash
}

func (h hasherFunc) Name() string   { return h.name }
func (h hasherFunc) New() hash.Hash { return h.fn() }

var hashers = map[string]Hasher{}

func register(name string, fn func() hash.Hash) {
	if _, dup := hashers[name]; dup {
		panic(fmt.Sprintf("commitcrypto: hasher %q registered twice", name))
	}
	if size := fn().Size(); size != DigestSize {
		panic(fmt.Sprintf("commitcrypto: hasher %q has %d-byte digest, want %d", name, size, DigestSize))
	}
	hashers[name] = hasherFunc{name: name, fn: fn}
}

func init() {
	register("sha256", sha256.New)
	register("sha3-256", sha3.New256)
	register("blake2b-256", func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			// Only a key longer than 64 bytes makes New256 fail.
			panic(err)
		}
		return h
	})
	register("blake2s-256", func() hash.Hash {
		h, err := blake2s.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	})
	register("blake3", func() hash.Hash { return blake3.New() })
}

// Lookup returns the hasher registered under name.
func Lookup(name string) (Hasher, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownHash, "%q (available: %v)", name, Names())
	}
	return h, nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Hasher {
	h, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return h
}

// Names lists registered hashers in sorted order.
func Names() []string {
	out := make([]string, 0, len(hashers))
	for name := range hashers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Sum hashes data once with h. It allocates a fresh instance and is meant for
// one-off digests; hot loops should Reset and reuse an instance instead.
func Sum(h Hasher, data []byte) Digest {
	var out Digest
	hh := h.New()
	hh.Write(data)
	hh.Sum(out[:0])
	return out
}
