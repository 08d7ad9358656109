package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rpschain/x/rps/types"
)

func TestSend_AllOrNothing(t *testing.T) {
	st := NewState()
	require.NoError(t, st.Credit("alice", 10))

	err := st.Send("alice", "bob", 11)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Equal(t, uint64(10), st.Balance("alice"))
	require.Equal(t, uint64(0), st.Balance("bob"))

	require.NoError(t, st.Credit("bob", ^uint64(0)))
	require.ErrorIs(t, st.Send("alice", "bob", 1), ErrBalanceOverflow)
	require.Equal(t, uint64(10), st.Balance("alice"))

	require.NoError(t, st.Send("alice", "alice", 10))
	require.Equal(t, uint64(10), st.Balance("alice"))
}

func TestCreditDebit(t *testing.T) {
	st := NewState()
	require.NoError(t, st.Credit("a", 5))
	require.ErrorIs(t, st.Debit("a", 6), ErrInsufficientFunds)
	require.NoError(t, st.Debit("a", 5))
	require.Equal(t, uint64(0), st.Balance("a"))

	require.NoError(t, st.Credit("a", ^uint64(0)))
	require.ErrorIs(t, st.Credit("a", 1), ErrBalanceOverflow)
}

func TestClone_IsDeep(t *testing.T) {
	st := NewState()
	d, err := types.ComputeCommitment([]byte("x"), types.MoveRock, "alice")
	require.NoError(t, err)
	st.SetGame(&types.Game{Digest: d, Player1: "alice", Player2: "bob", Stake: 500, Status: types.StatusCreated})
	require.NoError(t, st.Credit("alice", 1))
	st.AppHash = []byte{1, 2, 3}

	cp, err := st.Clone()
	require.NoError(t, err)
	g, ok := cp.GetGame(d)
	require.True(t, ok)
	g.Status = types.StatusResolved
	cp.SetPending("alice", 9)
	require.NoError(t, cp.Credit("alice", 1))

	orig, _ := st.GetGame(d)
	require.Equal(t, types.StatusCreated, orig.Status)
	require.Equal(t, uint64(0), st.Pending("alice"))
	require.Equal(t, uint64(1), st.Balance("alice"))
	require.Equal(t, st.AppHash, cp.AppHash)
}

func TestComputeAppHash_StableAndSensitive(t *testing.T) {
	build := func() *State {
		st := NewState()
		st.Height = 4
		for _, p := range []string{"carol", "alice", "bob"} {
			require.NoError(t, st.Credit(p, 100))
		}
		st.SetPending("bob", 7)
		return st
	}
	a, b := build(), build()
	require.Equal(t, a.ComputeAppHash(), b.ComputeAppHash())

	b.SetPending("bob", 8)
	require.NotEqual(t, a.ComputeAppHash(), b.ComputeAppHash())
}

func TestEncodeDecode_PreservesRegistry(t *testing.T) {
	st := NewState()
	d, err := types.ComputeCommitment([]byte("x"), types.MovePaper, "alice")
	require.NoError(t, err)
	st.SetGame(&types.Game{Digest: d, Player1: "alice", Player2: "bob", Stake: 500, Status: types.StatusPlayer2Enrolled, Player2Move: types.MoveRock})

	bz, err := st.Encode()
	require.NoError(t, err)
	got, err := Decode(bz)
	require.NoError(t, err)
	require.Equal(t, st.ComputeAppHash(), got.ComputeAppHash())

	_, err = Decode([]byte("{"))
	require.Error(t, err)
}

func TestSetPending_ZeroDeletes(t *testing.T) {
	st := NewState()
	st.SetPending("a", 3)
	require.Equal(t, map[string]uint64{"a": 3}, st.PendingEntries())
	st.SetPending("a", 0)
	require.Empty(t, st.PendingEntries())
}
