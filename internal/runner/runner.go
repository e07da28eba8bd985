package runner

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"itercommit/internal/codec"
	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
	"itercommit/internal/params"
)

// Runner embeds the engine: it bounds the iteration count and applies a
// deadline, neither of which the engine does itself.
type Runner struct {
	eng    *engine.Engine
	params params.Params
	logger log.Logger
}

func New(p params.Params, logger log.Logger) (*Runner, error) {
	eng, err := p.Engine()
	if err != nil {
		return nil, err
	}
	return NewWithEngine(eng, p, logger), nil
}

// NewWithEngine uses eng as is; p supplies only the iteration bound and timeout.
func NewWithEngine(eng *engine.Engine, p params.Params, logger log.Logger) *Runner {
	if eng == nil {
		panic("runner: engine is nil")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{
		eng:    eng,
		params: p,
		logger: logger.With("module", "runner"),
	}
}

func (r *Runner) Engine() *engine.Engine { return r.eng }

type result struct {
	c   engine.Commitment
	err error
}

// Run commits to the input in buf. buf is not modified; callers that read it
// from disk should Wipe it afterwards.
//
// The hash loop cannot be preempted. When the deadline fires first, Run
// returns ErrDeadline and the abandoned computation keeps its goroutine until
// it finishes, then wipes its accumulator and exits.
func (r *Runner) Run(ctx context.Context, buf []byte) (engine.Commitment, error) {
	in, err := engine.ParseInput(buf)
	if err != nil {
		return engine.Commitment{}, err
	}
	n := in.Iterations

	if limit := r.params.MaxIterations; limit > 0 && n > limit {
		in.Secret.Wipe()
		r.logger.Warn("iteration count over budget", "iterations", n, "max", limit)
		return engine.Commitment{}, errorsmod.Wrapf(ErrIterationBudget, "%d iterations, max %d", n, limit)
	}

	if r.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.params.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		in.Secret.Wipe()
		return engine.Commitment{}, errorsmod.Wrapf(ErrDeadline, "not started: %v", err)
	}

	start := time.Now()
	done := make(chan result, 1)
	go func() {
		c, err := r.eng.CommitInput(in)
		done <- result{c: c, err: err}
	}()

	select {
	case res := <-done:
		elapsed := time.Since(start)
		if res.err != nil {
			r.logger.Error("commitment failed", "iterations", n, "err", res.err)
			return engine.Commitment{}, res.err
		}
		r.logger.Info("commitment computed",
			"iterations", n,
			"hash", res.c.Hash,
			"word_order", res.c.Order.String(),
			"elapsed", elapsed,
		)
		return res.c, nil
	case <-ctx.Done():
		elapsed := time.Since(start)
		r.logger.Error("commitment abandoned", "iterations", n, "elapsed", elapsed, "err", ctx.Err())
		return engine.Commitment{}, errorsmod.Wrapf(ErrDeadline, "%d iterations after %s: %v", n, elapsed, ctx.Err())
	}
}

// RunFile commits to a single concatenated input file.
func (r *Runner) RunFile(ctx context.Context, path string) (engine.Commitment, error) {
	buf, err := codec.ReadInputFile(path)
	if err != nil {
		return engine.Commitment{}, err
	}
	defer commitcrypto.Wipe(buf)
	return r.Run(ctx, buf)
}

// RunFiles commits to the two-file layout.
func (r *Runner) RunFiles(ctx context.Context, publicPath, privatePath string) (engine.Commitment, error) {
	buf, err := codec.ReadInputFiles(publicPath, privatePath)
	if err != nil {
		return engine.Commitment{}, err
	}
	defer commitcrypto.Wipe(buf)
	return r.Run(ctx, buf)
}

// Verify recomputes the commitment for buf and compares it with want, read in
// the runner's word order, in constant time.
func (r *Runner) Verify(ctx context.Context, buf []byte, want engine.Words) (engine.Commitment, error) {
	got, err := r.Run(ctx, buf)
	if err != nil {
		return engine.Commitment{}, err
	}
	if !commitcrypto.ConstantTimeEqual(got.Digest(), want.Digest(got.Order)) {
		r.logger.Warn("commitment mismatch", "iterations", got.Iterations, "hash", got.Hash)
		return got, errorsmod.Wrapf(ErrMismatch, "%d iterations of %s", got.Iterations, got.Hash)
	}
	return got, nil
}
