package registry

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	dbm "github.com/cosmos/cosmos-db"

	"itercommit/internal/engine"
)

// Key layout.
var (
	keyMeta         = []byte("meta")
	prefixRecord    = []byte("c/")
	prefixRecordEnd = []byte("c0") // '0' == '/'+1
)

// Record is a published commitment. Every field is public.
type Record struct {
	ID         uint64           `json:"id"`
	Height     int64            `json:"height"`
	Label      string           `json:"label,omitempty"`
	Iterations uint64           `json:"iterations"`
	Hash       string           `json:"hash"`
	WordOrder  engine.WordOrder `json:"wordOrder"`
	Words      engine.Words     `json:"words"`
}

// Meta is the registry's running state.
type Meta struct {
	Height          int64  `json:"height"`
	NextID          uint64 `json:"nextId"`
	Count           uint64 `json:"count"`
	TotalIterations uint64 `json:"totalIterations"`
	AppHash         []byte `json:"appHash,omitempty"`
}

func newMeta() Meta {
	return Meta{NextID: 1}
}

// Store persists records and meta in a cosmos-db database. Writes made during
// a block are staged and become visible to readers only after Flush.
type Store struct {
	db        dbm.DB
	meta      Meta
	committed Meta
	pending   []Record
}

// OpenStore opens (or creates) a goleveldb store under dir.
func OpenStore(dir string) (*Store, error) {
	db, err := dbm.NewDB("registry", dbm.GoLevelDBBackend, dir)
	if err != nil {
		return nil, fmt.Errorf("open registry db: %w", err)
	}
	s, err := NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an open database and loads its meta.
func NewStore(db dbm.DB) (*Store, error) {
	s := &Store{db: db, meta: newMeta()}
	s.committed = s.meta
	b, err := db.Get(keyMeta)
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	if b == nil {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.meta); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	if s.meta.NextID == 0 {
		s.meta.NextID = 1
	}
	s.committed = s.meta
	return s, nil
}

// Meta includes staged changes; Committed is what the last Flush wrote.
func (s *Store) Meta() Meta      { return s.meta }
func (s *Store) Committed() Meta { return s.committed }

func recordKey(id uint64) []byte {
	k := make([]byte, len(prefixRecord)+8)
	copy(k, prefixRecord)
	binary.BigEndian.PutUint64(k[len(prefixRecord):], id)
	return k
}

// Stage assigns the next id to rec and queues it for the next Flush.
func (s *Store) Stage(rec Record) (Record, error) {
	next, err := addUint64Checked(s.meta.NextID, 1, "next id")
	if err != nil {
		return Record{}, err
	}
	count, err := addUint64Checked(s.meta.Count, 1, "count")
	if err != nil {
		return Record{}, err
	}
	total, err := addUint64Checked(s.meta.TotalIterations, rec.Iterations, "total iterations")
	if err != nil {
		return Record{}, err
	}
	rec.ID = s.meta.NextID
	s.meta.NextID = next
	s.meta.Count = count
	s.meta.TotalIterations = total
	s.pending = append(s.pending, rec)
	return rec, nil
}

// Pending returns the records staged since the last Flush.
func (s *Store) Pending() []Record { return s.pending }

// SetBlock records the height and app hash of the block being finalized.
func (s *Store) SetBlock(height int64, appHash []byte) {
	s.meta.Height = height
	s.meta.AppHash = appHash
}

// Flush writes staged records and meta in one synced batch.
func (s *Store) Flush() error {
	batch := s.db.NewBatch()
	defer batch.Close()

	for _, rec := range s.pending {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", rec.ID, err)
		}
		if err := batch.Set(recordKey(rec.ID), b); err != nil {
			return fmt.Errorf("stage record %d: %w", rec.ID, err)
		}
	}
	mb, err := json.Marshal(s.meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	if err := batch.Set(keyMeta, mb); err != nil {
		return fmt.Errorf("stage meta: %w", err)
	}
	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	s.pending = nil
	s.committed = s.meta
	return nil
}

// Get reads a committed record.
func (s *Store) Get(id uint64) (Record, error) {
	b, err := s.db.Get(recordKey(id))
	if err != nil {
		return Record{}, fmt.Errorf("read record %d: %w", id, err)
	}
	if b == nil {
		return Record{}, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record %d: %w", id, err)
	}
	return rec, nil
}

// IDs lists committed record ids in ascending order.
func (s *Store) IDs() ([]uint64, error) {
	it, err := s.db.Iterator(prefixRecord, prefixRecordEnd)
	if err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	defer it.Close()

	ids := []uint64{}
	for ; it.Valid(); it.Next() {
		ids = append(ids, binary.BigEndian.Uint64(it.Key()[len(prefixRecord):]))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return ids, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
