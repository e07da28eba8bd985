package registry

import (
	"errors"
	"math"
	"testing"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"itercommit/internal/engine"
)

func TestAddUint64Checked(t *testing.T) {
	got, err := addUint64Checked(10, 20, "id")
	require.NoError(t, err)
	require.Equal(t, uint64(30), got)

	_, err = addUint64Checked(math.MaxUint64, 1, "id")
	require.ErrorContains(t, err, "overflows uint64")
	require.True(t, errors.Is(err, ErrOverflow))
}

func TestStore_StageFlushGet(t *testing.T) {
	st, err := NewStore(dbm.NewMemDB())
	require.NoError(t, err)
	require.Equal(t, uint64(1), st.Meta().NextID)

	rec, err := st.Stage(Record{Iterations: 4, Hash: "sha256", WordOrder: engine.LittleEndian})
	require.NoError(t, err)
	require.Equal(t, uint64(1), rec.ID)
	require.Len(t, st.Pending(), 1)

	_, err = st.Get(1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, uint64(0), st.Committed().Count)

	st.SetBlock(3, []byte{0xAA})
	require.NoError(t, st.Flush())
	require.Empty(t, st.Pending())
	require.Equal(t, uint64(1), st.Committed().Count)
	require.Equal(t, int64(3), st.Committed().Height)

	got, err := st.Get(1)
	require.NoError(t, err)
	require.Equal(t, rec, got)

	ids, err := st.IDs()
	require.NoError(t, err)
	require.Equal(t, []uint64{1}, ids)
}

func TestStore_TotalIterationsOverflow(t *testing.T) {
	st, err := NewStore(dbm.NewMemDB())
	require.NoError(t, err)
	_, err = st.Stage(Record{Iterations: math.MaxUint64, Hash: "sha256"})
	require.NoError(t, err)

	_, err = st.Stage(Record{Iterations: 1, Hash: "sha256"})
	require.ErrorContains(t, err, "total iterations overflows uint64")
	require.Equal(t, uint64(2), st.Meta().NextID, "failed stage must not consume an id")
}

func TestStore_ReloadsMeta(t *testing.T) {
	db := dbm.NewMemDB()
	st, err := NewStore(db)
	require.NoError(t, err)
	_, err = st.Stage(Record{Iterations: 2, Hash: "blake3"})
	require.NoError(t, err)
	require.NoError(t, st.Flush())

	again, err := NewStore(db)
	require.NoError(t, err)
	require.Equal(t, st.Committed(), again.Meta())
	require.Equal(t, uint64(2), again.Meta().NextID)
}
