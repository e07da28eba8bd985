package codec

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
)

// TxTypePublish records a commitment in the public-output registry.
const TxTypePublish = "commitment/publish"

// MaxLabelLen bounds the free-form label on a published commitment.
const MaxLabelLen = 128

// TxEnvelope is the registry transaction container.
//
// CometBFT transactions are opaque bytes; the registry uses JSON envelopes.
type TxEnvelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`

	// Optional, only to keep otherwise identical tx bytes unique in the mempool.
	Nonce string `json:"nonce,omitempty"`
}

func DecodeTxEnvelope(txBytes []byte) (TxEnvelope, error) {
	var env TxEnvelope
	if err := json.Unmarshal(txBytes, &env); err != nil {
		return TxEnvelope{}, errorsmod.Wrapf(ErrInvalidTx, "invalid tx json: %v", err)
	}
	if env.Type == "" {
		return TxEnvelope{}, errorsmod.Wrap(ErrInvalidTx, "missing tx.type")
	}
	return env, nil
}

// PublishCommitmentTx carries public data only: nothing in it is secret.
type PublishCommitmentTx struct {
	Label      string           `json:"label,omitempty"`
	Iterations uint64           `json:"iterations"`
	Hash       string           `json:"hash"`
	WordOrder  engine.WordOrder `json:"wordOrder"`
	Words      []uint32         `json:"words"`
}

// Validate checks the shape of a publish tx.
func (m PublishCommitmentTx) Validate() error {
	if len(m.Label) > MaxLabelLen {
		return errorsmod.Wrapf(ErrInvalidTx, "label is %d bytes, max %d", len(m.Label), MaxLabelLen)
	}
	if _, err := commitcrypto.Lookup(m.Hash); err != nil {
		return errorsmod.Wrapf(ErrInvalidTx, "hash: %v", err)
	}
	if _, err := m.WordOrder.MarshalText(); err != nil {
		return errorsmod.Wrapf(ErrInvalidTx, "word order: %v", err)
	}
	if len(m.Words) != engine.WordCount {
		return errorsmod.Wrapf(ErrInvalidTx, "got %d words, want %d", len(m.Words), engine.WordCount)
	}
	return nil
}

// Commitment converts a validated tx back into an engine commitment.
func (m PublishCommitmentTx) Commitment() (engine.Commitment, error) {
	if err := m.Validate(); err != nil {
		return engine.Commitment{}, err
	}
	c := engine.Commitment{
		Iterations: m.Iterations,
		Hash:       m.Hash,
		Order:      m.WordOrder,
	}
	copy(c.Words[:], m.Words)
	return c, nil
}

// NewPublishTx builds the envelope bytes that publish c under label.
func NewPublishTx(c engine.Commitment, label string) ([]byte, error) {
	msg := PublishCommitmentTx{
		Label:      label,
		Iterations: c.Iterations,
		Hash:       c.Hash,
		WordOrder:  c.Order,
		Words:      append([]uint32(nil), c.Words[:]...),
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode publish value: %w", err)
	}
	return json.Marshal(TxEnvelope{Type: TxTypePublish, Value: value})
}

// DecodePublishTx decodes the value of a publish envelope.
func DecodePublishTx(env TxEnvelope) (PublishCommitmentTx, error) {
	if env.Type != TxTypePublish {
		return PublishCommitmentTx{}, errorsmod.Wrapf(ErrInvalidTx, "unexpected tx type %q", env.Type)
	}
	var msg PublishCommitmentTx
	if err := json.Unmarshal(env.Value, &msg); err != nil {
		return PublishCommitmentTx{}, errorsmod.Wrapf(ErrInvalidTx, "bad %s value: %v", TxTypePublish, err)
	}
	// The zero WordOrder is a valid order, so absence has to be checked on the raw value.
	var present struct {
		WordOrder *engine.WordOrder `json:"wordOrder"`
	}
	if err := json.Unmarshal(env.Value, &present); err != nil || present.WordOrder == nil {
		return PublishCommitmentTx{}, errorsmod.Wrap(ErrInvalidTx, "missing wordOrder")
	}
	if err := msg.Validate(); err != nil {
		return PublishCommitmentTx{}, err
	}
	return msg, nil
}
