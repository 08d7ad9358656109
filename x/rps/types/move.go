package types

import (
	"strconv"
	"strings"
)

// Move is one of the three hand shapes. The zero value means "no move yet".
type Move uint8

const (
	MoveNone     Move = 0
	MoveRock     Move = 1
	MovePaper    Move = 2
	MoveScissors Move = 3
)

func (m Move) Valid() bool {
	return m >= MoveRock && m <= MoveScissors
}

func (m Move) String() string {
	switch m {
	case MoveNone:
		return "none"
	case MoveRock:
		return "rock"
	case MovePaper:
		return "paper"
	case MoveScissors:
		return "scissors"
	default:
		return "move(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMove accepts either the numeric form (1..3) or the shape name.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "rock":
		return MoveRock, nil
	case "2", "paper":
		return MovePaper, nil
	case "3", "scissors":
		return MoveScissors, nil
	default:
		return MoveNone, ErrInvalidMove.Wrapf("%q", s)
	}
}

// Outcome is the result of comparing two moves from the first mover's side.
type Outcome string

const (
	OutcomeDraw       Outcome = "draw"
	OutcomeFirstWins  Outcome = "player1"
	OutcomeSecondWins Outcome = "player2"
)

// Beats reports whether a beats b. The relation is the 3-cycle
// paper > rock > scissors > paper, i.e. (a - b) mod 3 == 1.
func Beats(a, b Move) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return (int(a)-int(b)+3)%3 == 1
}

// Compare decides a round between two legal moves.
func Compare(first, second Move) Outcome {
	switch {
	case first == second:
		return OutcomeDraw
	case Beats(first, second):
		return OutcomeFirstWins
	default:
		return OutcomeSecondWins
	}
}
