package keeper

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"rpschain/x/rps/types"
)

// QuitPlayer1 refunds player 1 when player 2 never joined within player 1's
// own deadline.
func (k Keeper) QuitPlayer1(env types.Env, digest types.Digest) ([]abci.Event, error) {
	if err := requireEnv(env); err != nil {
		return nil, err
	}
	g, err := openGame(env, digest)
	if err != nil {
		return nil, err
	}
	if env.Caller != g.Player1 {
		return nil, types.ErrWrongPlayer.Wrapf("caller %q is not player1 %q", env.Caller, g.Player1)
	}
	if g.Player2Enrolled() {
		return nil, types.ErrAlreadyEnrolled.Wrapf("commitment %s", digest)
	}
	passed, elapsed, err := windowPassed(env.Height, g.EnrollBlock, g.Player1Deadline)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	if !passed {
		return nil, types.ErrDeadlineNotPassed.Wrapf("%d blocks elapsed, deadline is %d", elapsed, g.Player1Deadline)
	}

	if err := creditPending(env, g.Player1, g.Stake); err != nil {
		return nil, err
	}
	g.Status = types.StatusPlayer1Refunded
	g.ClosedBlock = env.Height
	env.Store.SetGame(g)

	k.logger.Info("player 1 refunded", "commitment", digest.String(), "player1", g.Player1, "elapsed", elapsed)

	return []abci.Event{newEvent(types.EventTypePlayer1Refunded, map[string]string{
		types.AttributeKeyCommitment: digest.String(),
		types.AttributeKeyPlayer:     g.Player1,
		types.AttributeKeyAmount:     fmt.Sprintf("%d", g.Stake),
	})}, nil
}

// QuitPlayer2 refunds player 2 when player 1 has not revealed within the
// chain-wide minimum deadline after player 2 joined. Player 1's stake stays
// in escrow as forfeit.
func (k Keeper) QuitPlayer2(env types.Env, digest types.Digest) ([]abci.Event, error) {
	if err := requireEnv(env); err != nil {
		return nil, err
	}
	g, err := unrevealedGame(env, digest)
	if err != nil {
		return nil, err
	}
	if env.Caller != g.Player2 {
		return nil, types.ErrWrongPlayer.Wrapf("caller %q is not player2 %q", env.Caller, g.Player2)
	}
	if !g.Player2Enrolled() {
		return nil, types.ErrTooEarly.Wrapf("commitment %s", digest)
	}
	window := env.Store.Params().MinDeadline
	passed, elapsed, err := windowPassed(env.Height, g.Player2EnrollBlock, window)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	if !passed {
		return nil, types.ErrDeadlineNotPassed.Wrapf("%d blocks elapsed, threshold is %d", elapsed, window)
	}

	if err := creditPending(env, g.Player2, g.Stake); err != nil {
		return nil, err
	}
	g.Status = types.StatusPlayer2Refunded
	g.ClosedBlock = env.Height
	env.Store.SetGame(g)

	k.logger.Info("player 2 refunded", "commitment", digest.String(), "player2", g.Player2, "elapsed", elapsed)

	return []abci.Event{newEvent(types.EventTypePlayer2Refunded, map[string]string{
		types.AttributeKeyCommitment: digest.String(),
		types.AttributeKeyPlayer:     g.Player2,
		types.AttributeKeyAmount:     fmt.Sprintf("%d", g.Stake),
	})}, nil
}
