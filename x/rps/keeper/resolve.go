package keeper

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"rpschain/x/rps/types"
)

// RevealPlayer1Move opens player 1's commitment, settles the game and credits
// the pending balances: both stakes to the winner, or each stake back to its
// owner on a draw.
func (k Keeper) RevealPlayer1Move(env types.Env, digest types.Digest, move types.Move, secret []byte) ([]abci.Event, error) {
	if err := requireEnv(env); err != nil {
		return nil, err
	}
	g, err := unrevealedGame(env, digest)
	if err != nil {
		return nil, err
	}
	if env.Caller != g.Player1 {
		return nil, types.ErrWrongPlayer.Wrapf("caller %q is not player1 %q", env.Caller, g.Player1)
	}
	if !g.Player2Enrolled() {
		return nil, types.ErrTooEarly.Wrapf("commitment %s", digest)
	}
	if err := types.VerifyCommitment(digest, secret, move, env.Caller); err != nil {
		return nil, err
	}

	outcome := types.Compare(move, g.Player2Move)
	var winner string
	switch outcome {
	case types.OutcomeFirstWins:
		winner = g.Player1
	case types.OutcomeSecondWins:
		winner = g.Player2
	}

	if winner != "" {
		if err := creditPending(env, winner, 2*g.Stake); err != nil {
			return nil, err
		}
	} else {
		if err := creditPending(env, g.Player1, g.Stake); err != nil {
			return nil, err
		}
		if err := creditPending(env, g.Player2, g.Stake); err != nil {
			return nil, err
		}
	}

	g.Player1Move = move
	g.Revealed = true
	g.Outcome = outcome
	g.Winner = winner
	g.Status = types.StatusResolved
	g.ClosedBlock = env.Height
	env.Store.SetGame(g)

	k.logger.Info("game resolved", "commitment", digest.String(), "outcome", string(outcome), "winner", winner)

	return []abci.Event{
		newEvent(types.EventTypeMoveRevealed, map[string]string{
			types.AttributeKeyCommitment: digest.String(),
			types.AttributeKeyPlayer1:    g.Player1,
			types.AttributeKeyMove:       move.String(),
		}),
		newEvent(types.EventTypeGameResolved, map[string]string{
			types.AttributeKeyCommitment: digest.String(),
			types.AttributeKeyOutcome:    string(outcome),
			types.AttributeKeyWinner:     winner,
			types.AttributeKeyAmount:     fmt.Sprintf("%d", 2*g.Stake),
		}),
	}, nil
}
