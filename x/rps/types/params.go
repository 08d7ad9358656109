package types

import "fmt"

const (
	DefaultStake       uint64 = 500
	DefaultMinDeadline uint64 = 10
)

// Params are fixed at genesis and shared by every game.
type Params struct {
	// Stake is the exact amount each side escrows.
	Stake uint64 `json:"stake"`
	// MinDeadline is the floor for player 1's deadline and the exact window
	// player 2 waits before reclaiming a stake from an unrevealed game.
	MinDeadline uint64 `json:"minDeadline"`
}

func DefaultParams() Params {
	return Params{Stake: DefaultStake, MinDeadline: DefaultMinDeadline}
}

func (p Params) Validate() error {
	if p.Stake == 0 {
		return fmt.Errorf("stake must be > 0")
	}
	if p.MinDeadline == 0 {
		return fmt.Errorf("minDeadline must be > 0")
	}
	if p.Stake > ^uint64(0)/2 {
		return fmt.Errorf("stake %d too large: a winner's payout would overflow", p.Stake)
	}
	return nil
}
