package params

import (
	"fmt"
	"time"

	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
)

const (
	// AppName is the human-readable name.
	AppName = "itercommit"

	// EnvPrefix is the environment variable prefix used by the CLI/config system.
	// Example: ITERCOMMIT_MAX_ITERATIONS, ITERCOMMIT_HASH.
	EnvPrefix = "ITERCOMMIT"

	// DefaultMaxIterations bounds caller-supplied iteration counts (2^24).
	DefaultMaxIterations uint64 = 1 << 24

	// DefaultTimeout is the wall-clock budget for one commitment.
	DefaultTimeout = 5 * time.Minute

	// maxTimeout is a sanity bound against obviously-bad config values.
	maxTimeout = 24 * time.Hour
)

// Params configure how a caller embeds the engine.
type Params struct {
	// MaxIterations rejects larger iteration counts before hashing. 0 disables the bound.
	MaxIterations uint64 `mapstructure:"max_iterations"`
	// Timeout is the deadline for one commitment. 0 disables it.
	Timeout time.Duration `mapstructure:"timeout"`
	// Hash names a commitcrypto hasher.
	Hash string `mapstructure:"hash"`
	// WordOrder is "little" or "big".
	WordOrder string `mapstructure:"word_order"`
}

func DefaultParams() Params {
	return Params{
		MaxIterations: DefaultMaxIterations,
		Timeout:       DefaultTimeout,
		Hash:          commitcrypto.DefaultHash,
		WordOrder:     engine.LittleEndian.String(),
	}
}

func (p Params) Validate() error {
	if p.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", p.Timeout)
	}
	if p.Timeout > maxTimeout {
		return fmt.Errorf("timeout too large: %s > %s", p.Timeout, maxTimeout)
	}
	if _, err := commitcrypto.Lookup(p.Hash); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if _, err := engine.ParseWordOrder(p.WordOrder); err != nil {
		return fmt.Errorf("word_order: %w", err)
	}
	return nil
}

// Engine builds the engine these params describe.
func (p Params) Engine() (*engine.Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h, err := commitcrypto.Lookup(p.Hash)
	if err != nil {
		return nil, err
	}
	order, err := engine.ParseWordOrder(p.WordOrder)
	if err != nil {
		return nil, err
	}
	return engine.New(h, order), nil
}
