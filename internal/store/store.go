package store

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	dbm "github.com/cosmos/cosmos-db"

	"rpschain/internal/state"
)

var (
	// LatestHeightKey stores the last committed height as big-endian u64.
	LatestHeightKey = []byte{0x01}

	// SnapshotKeyPrefix stores state by height: SnapshotKeyPrefix || u64be(height).
	SnapshotKeyPrefix = []byte{0x02}

	// AppHashKeyPrefix stores the committed app hash by height.
	AppHashKeyPrefix = []byte{0x03}
)

func heightKey(prefix []byte, height int64) []byte {
	bz := make([]byte, 1+8)
	bz[0] = prefix[0]
	binary.BigEndian.PutUint64(bz[1:], uint64(height))
	return bz
}

// Store persists committed state snapshots in a cosmos-db database.
type Store struct {
	db dbm.DB
	// keepRecent bounds how many historical snapshots are retained; 0 keeps all.
	keepRecent int64
}

// Open opens (or creates) the database under <home>/data.
func Open(home, backend string, keepRecent int64) (*Store, error) {
	dir := filepath.Join(home, "data")
	db, err := dbm.NewDB("rps", dbm.BackendType(backend), dir)
	if err != nil {
		return nil, fmt.Errorf("open %s db at %s: %w", backend, dir, err)
	}
	return New(db, keepRecent), nil
}

func New(db dbm.DB, keepRecent int64) *Store {
	if keepRecent < 0 {
		keepRecent = 0
	}
	return &Store{db: db, keepRecent: keepRecent}
}

// NewMemStore is an in-memory store for tests and throwaway nodes.
func NewMemStore() *Store {
	return New(dbm.NewMemDB(), 0)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LatestHeight() (int64, error) {
	bz, err := s.db.Get(LatestHeightKey)
	if err != nil {
		return 0, fmt.Errorf("read latest height: %w", err)
	}
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, fmt.Errorf("invalid latest height encoding")
	}
	return int64(binary.BigEndian.Uint64(bz)), nil
}

// LoadLatest returns the last committed state, or a fresh state when nothing
// has been committed yet.
func (s *Store) LoadLatest() (*state.State, error) {
	h, err := s.LatestHeight()
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return state.NewState(), nil
	}
	return s.LoadAt(h)
}

func (s *Store) LoadAt(height int64) (*state.State, error) {
	bz, err := s.db.Get(heightKey(SnapshotKeyPrefix, height))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %d: %w", height, err)
	}
	if bz == nil {
		return nil, fmt.Errorf("no snapshot at height %d", height)
	}
	st, err := state.Decode(bz)
	if err != nil {
		return nil, err
	}
	hash, err := s.db.Get(heightKey(AppHashKeyPrefix, height))
	if err != nil {
		return nil, fmt.Errorf("read app hash %d: %w", height, err)
	}
	st.AppHash = hash
	return st, nil
}

// Save writes st as the snapshot for st.Height in a single batch and prunes
// the snapshot that fell out of the retention window.
func (s *Store) Save(st *state.State) error {
	if st == nil {
		return fmt.Errorf("state is nil")
	}
	if st.Height <= 0 {
		return fmt.Errorf("cannot save state at height %d", st.Height)
	}
	bz, err := st.Encode()
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(heightKey(SnapshotKeyPrefix, st.Height), bz); err != nil {
		return err
	}
	if len(st.AppHash) > 0 {
		if err := batch.Set(heightKey(AppHashKeyPrefix, st.Height), st.AppHash); err != nil {
			return err
		}
	}
	latest := make([]byte, 8)
	binary.BigEndian.PutUint64(latest, uint64(st.Height))
	if err := batch.Set(LatestHeightKey, latest); err != nil {
		return err
	}
	if s.keepRecent > 0 && st.Height > s.keepRecent {
		old := st.Height - s.keepRecent
		if err := batch.Delete(heightKey(SnapshotKeyPrefix, old)); err != nil {
			return err
		}
		if err := batch.Delete(heightKey(AppHashKeyPrefix, old)); err != nil {
			return err
		}
	}
	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("write snapshot %d: %w", st.Height, err)
	}
	return nil
}

// Heights lists every retained snapshot height in ascending order.
func (s *Store) Heights() ([]int64, error) {
	it, err := s.db.Iterator(SnapshotKeyPrefix, []byte{SnapshotKeyPrefix[0] + 1})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []int64
	for ; it.Valid(); it.Next() {
		key := it.Key()
		if len(key) != 1+8 || key[0] != SnapshotKeyPrefix[0] {
			continue
		}
		out = append(out, int64(binary.BigEndian.Uint64(key[1:])))
	}
	return out, it.Error()
}
