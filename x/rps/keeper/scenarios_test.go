package keeper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rpschain/x/rps/types"
)

func TestScenarioA_Player1ReclaimsAfterOwnDeadline(t *testing.T) {
	f := newFixture(t)
	d := f.commit("a", types.MoveRock)
	_, err := f.k.EnrollPlayer1(f.env("alice", 100), 17, d, "bob", types.DefaultStake)
	require.NoError(t, err)

	_, err = f.k.QuitPlayer1(f.env("alice", 117), d)
	require.ErrorIs(t, err, types.ErrDeadlineNotPassed)

	_, err = f.k.QuitPlayer1(f.env("alice", 118), d)
	require.NoError(t, err)
	require.Equal(t, types.DefaultStake, f.st.Pending("alice"))
	f.requireInvariant()
}

func TestScenarioB_RockBeatsScissors(t *testing.T) {
	f := newFixture(t)
	d := f.open("b", types.MoveRock)
	f.join(d, types.MoveScissors, 2)

	_, err := f.k.RevealPlayer1Move(f.env("alice", 3), d, types.MoveRock, []byte("b"))
	require.NoError(t, err)
	require.Equal(t, 2*types.DefaultStake, f.st.Pending("alice"))

	_, _, err = f.k.Withdraw(f.env("bob", 4))
	require.ErrorIs(t, err, types.ErrNothingToWithdraw)

	_, err = f.k.QuitPlayer2(f.env("bob", 100), d)
	require.ErrorIs(t, err, types.ErrAlreadyRevealed)
	f.requireInvariant()
}

func TestScenarioC_SameMoveRefundsBoth(t *testing.T) {
	for _, m := range allLegalMoves {
		t.Run(m.String(), func(t *testing.T) {
			f := newFixture(t)
			d := f.open("c", m)
			f.join(d, m, 2)

			_, err := f.k.RevealPlayer1Move(f.env("alice", 3), d, m, []byte("c"))
			require.NoError(t, err)
			require.Equal(t, types.DefaultStake, f.st.Pending("alice"))
			require.Equal(t, types.DefaultStake, f.st.Pending("bob"))

			for _, p := range []string{"alice", "bob"} {
				_, _, err := f.k.Withdraw(f.env(p, 4))
				require.NoError(t, err)
				require.Equal(t, uint64(1000), f.st.Balance(p))
			}
			f.requireInvariant()
		})
	}
}

func TestEnrollPlayer2_InvalidMoveFailsInAnyState(t *testing.T) {
	f := newFixture(t)
	unknown := f.commit("none", types.MoveRock)
	d := f.open("a", types.MoveRock)

	for _, digest := range []types.Digest{unknown, d} {
		for _, m := range []types.Move{types.MoveNone, 4, 255} {
			_, err := f.k.EnrollPlayer2(f.env("bob", 2), digest, m, types.DefaultStake)
			require.ErrorIs(t, err, types.ErrInvalidMove)
		}
	}

	f.join(d, types.MoveRock, 2)
	_, err := f.k.EnrollPlayer2(f.env("bob", 3), d, 0, types.DefaultStake)
	require.ErrorIs(t, err, types.ErrInvalidMove)
}

var allLegalMoves = []types.Move{types.MoveRock, types.MovePaper, types.MoveScissors}
