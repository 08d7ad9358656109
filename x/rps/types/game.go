package types

// GameStatus is the lifecycle position of a game record.
type GameStatus string

const (
	StatusCreated         GameStatus = "created"
	StatusPlayer2Enrolled GameStatus = "player2Enrolled"
	StatusResolved        GameStatus = "resolved"
	StatusPlayer1Refunded GameStatus = "player1Refunded"
	StatusPlayer2Refunded GameStatus = "player2Refunded"
)

// Terminal reports whether no further transition is allowed from s.
func (s GameStatus) Terminal() bool {
	switch s {
	case StatusResolved, StatusPlayer1Refunded, StatusPlayer2Refunded:
		return true
	default:
		return false
	}
}

// Game is a single match, keyed by player 1's commitment.
type Game struct {
	Digest  Digest `json:"digest"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Stake   uint64 `json:"stake"`

	// Player1Deadline is a block count measured from EnrollBlock.
	Player1Deadline uint64 `json:"player1Deadline"`
	EnrollBlock     int64  `json:"enrollBlock"`

	Player2Move        Move  `json:"player2Move,omitempty"`
	Player2EnrollBlock int64 `json:"player2EnrollBlock,omitempty"`

	Player1Move Move `json:"player1Move,omitempty"`
	Revealed    bool `json:"revealed"`

	Status      GameStatus `json:"status"`
	Outcome     Outcome    `json:"outcome,omitempty"`
	Winner      string     `json:"winner,omitempty"`
	ClosedBlock int64      `json:"closedBlock,omitempty"`
}

func (g *Game) Closed() bool {
	return g.Status.Terminal()
}

func (g *Game) Player2Enrolled() bool {
	return g.Player2Move != MoveNone
}

// EscrowedSides is the number of stakes the game still holds in escrow. A
// game closed by player 2's refund keeps player 1's forfeited stake.
func (g *Game) EscrowedSides() uint64 {
	switch g.Status {
	case StatusCreated, StatusPlayer2Refunded:
		return 1
	case StatusPlayer2Enrolled:
		return 2
	default:
		return 0
	}
}
