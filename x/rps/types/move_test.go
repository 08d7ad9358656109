package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allMoves = []Move{MoveRock, MovePaper, MoveScissors}

func TestBeats_Cycle(t *testing.T) {
	require.True(t, Beats(MovePaper, MoveRock))
	require.True(t, Beats(MoveRock, MoveScissors))
	require.True(t, Beats(MoveScissors, MovePaper))

	require.False(t, Beats(MoveRock, MovePaper))
	require.False(t, Beats(MoveRock, MoveRock))
	require.False(t, Beats(MoveNone, MoveRock))
	require.False(t, Beats(MoveRock, Move(4)))
}

func TestBeats_AntisymmetricAndTotal(t *testing.T) {
	for _, a := range allMoves {
		for _, b := range allMoves {
			if a == b {
				require.False(t, Beats(a, b))
				require.Equal(t, OutcomeDraw, Compare(a, b))
				continue
			}
			require.NotEqual(t, Beats(a, b), Beats(b, a), "%s vs %s", a, b)
			if Beats(a, b) {
				require.Equal(t, OutcomeFirstWins, Compare(a, b))
				require.Equal(t, OutcomeSecondWins, Compare(b, a))
			}
		}
	}
}

func TestParseMove(t *testing.T) {
	for in, want := range map[string]Move{
		"1": MoveRock, "rock": MoveRock, " Paper ": MovePaper, "3": MoveScissors,
	} {
		got, err := ParseMove(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "0", "4", "lizard"} {
		_, err := ParseMove(in)
		require.ErrorIs(t, err, ErrInvalidMove, in)
	}
}

func TestMove_Valid(t *testing.T) {
	require.False(t, MoveNone.Valid())
	require.False(t, Move(4).Valid())
	for _, m := range allMoves {
		require.True(t, m.Valid())
	}
	require.Equal(t, "move(9)", Move(9).String())
}
