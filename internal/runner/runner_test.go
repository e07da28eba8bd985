package runner

import (
	"bytes"
	"context"
	"errors"
	"hash"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"itercommit/internal/codec"
	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
	"itercommit/internal/params"
)

func testParams() params.Params {
	p := params.DefaultParams()
	p.MaxIterations = 1000
	p.Timeout = 0
	return p
}

func newTestRunner(t *testing.T, p params.Params) *Runner {
	t.Helper()
	r, err := New(p, log.NewNopLogger())
	require.NoError(t, err)
	return r
}

func mustInput(t *testing.T, n uint64, fill byte) []byte {
	t.Helper()
	buf, err := codec.EncodeInput(n, bytes.Repeat([]byte{fill}, engine.PrivateLen))
	require.NoError(t, err)
	return buf
}

// gatedHasher blocks in Write until release is closed.
type gatedHasher struct {
	started chan struct{}
	release chan struct{}
}

func (g *gatedHasher) Name() string { return "gated" }
func (g *gatedHasher) New() hash.Hash {
	return &gatedHash{Hash: commitcrypto.MustLookup("sha256").New(), g: g}
}

type gatedHash struct {
	hash.Hash
	g    *gatedHasher
	once bool
}

func (h *gatedHash) Write(p []byte) (int, error) {
	if !h.once {
		h.once = true
		close(h.g.started)
		<-h.g.release
	}
	return h.Hash.Write(p)
}

func TestRun_MatchesEngine(t *testing.T) {
	r := newTestRunner(t, testParams())
	buf := mustInput(t, 5, 0x2A)
	orig := bytes.Clone(buf)

	got, err := r.Run(context.Background(), buf)
	require.NoError(t, err)
	want, err := engine.Default().Commit(buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, orig, buf)
}

func TestRun_MalformedInputPassesThrough(t *testing.T) {
	r := newTestRunner(t, testParams())
	_, err := r.Run(context.Background(), make([]byte, 39))
	require.True(t, errors.Is(err, engine.ErrMalformedInput))
}

func TestRun_IterationBudget(t *testing.T) {
	r := newTestRunner(t, testParams())

	_, err := r.Run(context.Background(), mustInput(t, 1000, 1))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), mustInput(t, 1001, 1))
	require.True(t, errors.Is(err, ErrIterationBudget))
	require.Equal(t, "1001 iterations, max 1000: iteration budget exceeded", err.Error())

	p := testParams()
	p.MaxIterations = 0
	r = newTestRunner(t, p)
	_, err = r.Run(context.Background(), mustInput(t, 1001, 1))
	require.NoError(t, err)
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	r := newTestRunner(t, testParams())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, mustInput(t, 3, 1))
	require.True(t, errors.Is(err, ErrDeadline))
	require.ErrorContains(t, err, "not started")
}

func TestRun_DeadlineAbandonsComputation(t *testing.T) {
	g := &gatedHasher{started: make(chan struct{}), release: make(chan struct{})}
	p := testParams()
	p.Timeout = 20 * time.Millisecond
	r := NewWithEngine(engine.New(g, engine.LittleEndian), p, nil)

	_, err := r.Run(context.Background(), mustInput(t, 2, 7))
	require.True(t, errors.Is(err, ErrDeadline), "%v", err)
	require.ErrorContains(t, err, "2 iterations")

	<-g.started
	close(g.release)
}

func TestRun_LogsOnlyPublicData(t *testing.T) {
	var out bytes.Buffer
	logger := log.NewLogger(&out, log.OutputJSONOption(), log.ColorOption(false))
	r, err := New(testParams(), logger)
	require.NoError(t, err)

	_, err = r.Run(context.Background(), mustInput(t, 4, 0xAB))
	require.NoError(t, err)
	_, err = r.Run(context.Background(), mustInput(t, 4000, 0xAB))
	require.Error(t, err)

	logs := out.String()
	require.Contains(t, logs, "commitment computed")
	require.Contains(t, logs, `"iterations":4`)
	require.Contains(t, logs, `"module":"runner"`)
	require.NotContains(t, strings.ToLower(logs), "abab")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	secret := bytes.Repeat([]byte{0xFF}, engine.PrivateLen)
	require.NoError(t, codec.WriteInputFiles(dir, 0, secret))
	require.NoError(t, codec.WriteInputFile(filepath.Join(dir, codec.InputFile), 0, secret))

	r := newTestRunner(t, testParams())
	a, err := r.RunFiles(context.Background(), filepath.Join(dir, codec.PublicFile), filepath.Join(dir, codec.PrivateFile))
	require.NoError(t, err)
	b, err := r.RunFile(context.Background(), filepath.Join(dir, codec.InputFile))
	require.NoError(t, err)
	require.Equal(t, a, b)
	for _, w := range a.Words {
		require.Equal(t, uint32(0xffffffff), w)
	}

	require.NoError(t, os.Remove(filepath.Join(dir, codec.PrivateFile)))
	_, err = r.RunFiles(context.Background(), filepath.Join(dir, codec.PublicFile), filepath.Join(dir, codec.PrivateFile))
	require.ErrorContains(t, err, "read private input")
}

func TestVerify(t *testing.T) {
	r := newTestRunner(t, testParams())
	buf := mustInput(t, 5, 0x2A)
	c, err := r.Run(context.Background(), buf)
	require.NoError(t, err)

	_, err = r.Verify(context.Background(), buf, c.Words)
	require.NoError(t, err)

	bad := c.Words
	bad[7] ^= 1
	_, err = r.Verify(context.Background(), buf, bad)
	require.True(t, errors.Is(err, ErrMismatch))
}

type recordingPublisher struct {
	idx   []int
	words []uint32
	fail  int
}

func (p *recordingPublisher) Declare(i int, w uint32) error {
	if p.fail > 0 && i == p.fail {
		return errors.New("host refused")
	}
	p.idx = append(p.idx, i)
	p.words = append(p.words, w)
	return nil
}

func TestPublish(t *testing.T) {
	c := engine.Commitment{Words: engine.Words{10, 11, 12, 13, 14, 15, 16, 17}}

	p := &recordingPublisher{}
	require.NoError(t, Publish(c, p))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, p.idx)
	require.Equal(t, c.Words[:], p.words)

	err := Publish(c, &recordingPublisher{fail: 3})
	require.ErrorContains(t, err, "declare output 3: host refused")

	var out bytes.Buffer
	require.NoError(t, Publish(c, WriterPublisher{W: &out}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, engine.WordCount)
	require.Equal(t, "output[0] = 0x0000000a", lines[0])
	require.Equal(t, "output[7] = 0x00000011", lines[7])
}
