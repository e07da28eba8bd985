package registry

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cometbft/cometbft/crypto/tmhash"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"itercommit/internal/codec"
	"itercommit/internal/commitcrypto"
)

const (
	AppVersion uint64 = 1
)

// App is an ABCI application that records published commitments. It only
// ever sees public values; the secret behind a commitment never reaches it.
type App struct {
	*abci.BaseApplication

	logger log.Logger

	mu       sync.Mutex
	st       *Store
	lastHash []byte
}

// New opens the registry store under <home>/data.
func New(home string, logger log.Logger) (*App, error) {
	st, err := OpenStore(filepath.Join(home, "data"))
	if err != nil {
		return nil, err
	}
	return NewWithStore(st, logger), nil
}

func NewWithStore(st *Store, logger log.Logger) *App {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &App{
		BaseApplication: abci.NewBaseApplication(),
		logger:          logger.With("module", "registry"),
		st:              st,
		lastHash:        st.Committed().AppHash,
	}
}

func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.Close()
}

func (a *App) Info(_ context.Context, _ *abci.InfoRequest) (*abci.InfoResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return &abci.InfoResponse{
		Data:             "itercommit registry",
		Version:          "v1",
		AppVersion:       AppVersion,
		LastBlockHeight:  a.st.Committed().Height,
		LastBlockAppHash: a.lastHash,
	}, nil
}

func (a *App) CheckTx(_ context.Context, req *abci.CheckTxRequest) (*abci.CheckTxResponse, error) {
	if _, err := decodeTx(req.Tx); err != nil {
		codespace, code, logMsg := errorsmod.ABCIInfo(err, false)
		return &abci.CheckTxResponse{Code: code, Codespace: codespace, Log: logMsg}, nil
	}
	return &abci.CheckTxResponse{Code: 0}, nil
}

func (a *App) InitChain(_ context.Context, _ *abci.InitChainRequest) (*abci.InitChainResponse, error) {
	return &abci.InitChainResponse{}, nil
}

func (a *App) FinalizeBlock(_ context.Context, req *abci.FinalizeBlockRequest) (*abci.FinalizeBlockResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	txResults := make([]*abci.ExecTxResult, 0, len(req.Txs))
	for _, txBytes := range req.Txs {
		txResults = append(txResults, a.deliverTx(txBytes, req.Height))
	}

	hash, err := chainAppHash(a.lastHash, req.Height, a.st.Pending())
	if err != nil {
		return nil, err
	}
	a.st.SetBlock(req.Height, hash)
	a.lastHash = hash

	return &abci.FinalizeBlockResponse{
		TxResults: txResults,
		AppHash:   hash,
	}, nil
}

func (a *App) Commit(_ context.Context, _ *abci.CommitRequest) (*abci.CommitResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.st.Pending())
	if err := a.st.Flush(); err != nil {
		// CometBFT expects Commit to not crash; return error so node halts loudly.
		return nil, err
	}
	meta := a.st.Committed()
	a.logger.Info("block committed", "height", meta.Height, "records", n, "total", meta.Count)
	return &abci.CommitResponse{}, nil
}

func (a *App) Query(_ context.Context, req *abci.QueryRequest) (*abci.QueryResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	height := a.st.Committed().Height
	value, err := a.query(strings.TrimSpace(req.Path))
	if err != nil {
		codespace, code, logMsg := errorsmod.ABCIInfo(err, false)
		return &abci.QueryResponse{Code: code, Codespace: codespace, Log: logMsg, Height: height}, nil
	}
	return &abci.QueryResponse{Code: 0, Value: value, Height: height}, nil
}

// Paths:
// - /commitment/<id>
// - /commitments
// - /stats
func (a *App) query(path string) ([]byte, error) {
	switch {
	case path == "/commitments":
		ids, err := a.st.IDs()
		if err != nil {
			return nil, err
		}
		return json.Marshal(ids)
	case path == "/stats":
		meta := a.st.Committed()
		return json.Marshal(map[string]any{
			"height":          meta.Height,
			"count":           meta.Count,
			"totalIterations": meta.TotalIterations,
		})
	case strings.HasPrefix(path, "/commitment/"):
		raw := strings.TrimPrefix(path, "/commitment/")
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrNotFound, "invalid commitment id %q", raw)
		}
		rec, err := a.st.Get(id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rec)
	default:
		return nil, errorsmod.Wrap(ErrUnknownQuery, path)
	}
}

func decodeTx(txBytes []byte) (codec.PublishCommitmentTx, error) {
	env, err := codec.DecodeTxEnvelope(txBytes)
	if err != nil {
		return codec.PublishCommitmentTx{}, err
	}
	if env.Type != codec.TxTypePublish {
		return codec.PublishCommitmentTx{}, errorsmod.Wrap(ErrUnknownTxType, env.Type)
	}
	return codec.DecodePublishTx(env)
}

func (a *App) deliverTx(txBytes []byte, height int64) *abci.ExecTxResult {
	msg, err := decodeTx(txBytes)
	if err != nil {
		return errResult(err)
	}
	c, err := msg.Commitment()
	if err != nil {
		return errResult(err)
	}
	rec, err := a.st.Stage(Record{
		Height:     height,
		Label:      msg.Label,
		Iterations: c.Iterations,
		Hash:       c.Hash,
		WordOrder:  c.Order,
		Words:      c.Words,
	})
	if err != nil {
		return errResult(err)
	}
	return okEvent("CommitmentPublished", map[string]string{
		"id":         fmt.Sprintf("%d", rec.ID),
		"label":      rec.Label,
		"iterations": fmt.Sprintf("%d", rec.Iterations),
		"hash":       rec.Hash,
		"wordOrder":  rec.WordOrder.String(),
		"words":      rec.Words.String(),
	})
}

// chainAppHash = H(prev || height || len||record ...), records in delivery order.
func chainAppHash(prev []byte, height int64, recs []Record) ([]byte, error) {
	h := tmhash.New()
	h.Write(prev)
	h.Write(commitcrypto.U64LE(uint64(height)))
	for _, rec := range recs {
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encode record %d: %w", rec.ID, err)
		}
		var lb [4]byte
		binary.LittleEndian.PutUint32(lb[:], uint32(len(b)))
		h.Write(lb[:])
		h.Write(b)
	}
	return h.Sum(nil), nil
}

func errResult(err error) *abci.ExecTxResult {
	codespace, code, logMsg := errorsmod.ABCIInfo(err, false)
	return &abci.ExecTxResult{Code: code, Codespace: codespace, Log: logMsg}
}

func okEvent(typ string, attrs map[string]string) *abci.ExecTxResult {
	ev := abci.Event{Type: typ}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ev.Attributes = append(ev.Attributes, abci.EventAttribute{Key: k, Value: attrs[k], Index: true})
	}
	return &abci.ExecTxResult{
		Code:   0,
		Events: []abci.Event{ev},
	}
}
