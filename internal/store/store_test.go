package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rpschain/internal/state"
	"rpschain/x/rps/types"
)

func TestLoadLatest_EmptyReturnsFreshState(t *testing.T) {
	s := NewMemStore()
	st, err := s.LoadLatest()
	require.NoError(t, err)
	require.Equal(t, int64(0), st.Height)
	require.Equal(t, types.DefaultParams(), st.Params())
}

func TestSaveAndLoad_RoundTripsGamesAndHash(t *testing.T) {
	s := NewMemStore()

	st := state.NewState()
	st.Height = 3
	d, err := types.ComputeCommitment([]byte("game"), types.MovePaper, "alice")
	require.NoError(t, err)
	st.SetGame(&types.Game{Digest: d, Player1: "alice", Player2: "bob", Stake: 500, Status: types.StatusCreated})
	st.SetPending("carol", 42)
	st.AppHash = st.ComputeAppHash()
	require.NoError(t, s.Save(st))

	got, err := s.LoadLatest()
	require.NoError(t, err)
	require.Equal(t, int64(3), got.Height)
	require.Equal(t, st.AppHash, got.AppHash)
	g, ok := got.GetGame(d)
	require.True(t, ok)
	require.Equal(t, "bob", g.Player2)
	require.Equal(t, uint64(42), got.Pending("carol"))
}

func TestSave_PrunesOutsideRetentionWindow(t *testing.T) {
	s := NewMemStore()
	s.keepRecent = 2

	for h := int64(1); h <= 4; h++ {
		st := state.NewState()
		st.Height = h
		require.NoError(t, s.Save(st))
	}

	heights, err := s.Heights()
	require.NoError(t, err)
	require.Equal(t, []int64{3, 4}, heights)

	_, err = s.LoadAt(1)
	require.Error(t, err)
	latest, err := s.LatestHeight()
	require.NoError(t, err)
	require.Equal(t, int64(4), latest)
}

func TestSave_RejectsGenesisHeight(t *testing.T) {
	s := NewMemStore()
	require.Error(t, s.Save(state.NewState()))
	require.Error(t, s.Save(nil))
}
