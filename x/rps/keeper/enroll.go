package keeper

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"rpschain/x/rps/types"
)

// EnrollPlayer1 opens a game under digest and escrows player 1's stake.
// Only player2 may later join it.
func (k Keeper) EnrollPlayer1(env types.Env, deadline uint64, digest types.Digest, player2 string, stake uint64) ([]abci.Event, error) {
	if err := requireEnv(env); err != nil {
		return nil, err
	}
	if digest.IsZero() {
		return nil, types.ErrInvalidRequest.Wrap("missing commitment")
	}
	if player2 == "" {
		return nil, types.ErrInvalidRequest.Wrap("missing player2")
	}

	params := env.Store.Params()
	if deadline <= params.MinDeadline {
		return nil, types.ErrDeadlineTooShort.Wrapf("deadline %d must exceed %d blocks", deadline, params.MinDeadline)
	}
	if stake != params.Stake {
		return nil, types.ErrIncorrectStake.Wrapf("got %d want %d", stake, params.Stake)
	}
	if existing, ok := env.Store.GetGame(digest); ok {
		if existing.Closed() {
			return nil, types.ErrDigestInUse.Wrapf("commitment %s belongs to a closed game and cannot be reused", digest)
		}
		return nil, types.ErrDigestInUse.Wrapf("commitment %s identifies an active game", digest)
	}
	expiresAt, err := addInt64AndU64Checked(env.Height, deadline, "player1 deadline")
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}

	if err := escrow(env, env.Caller, stake); err != nil {
		return nil, err
	}

	env.Store.SetGame(&types.Game{
		Digest:          digest,
		Player1:         env.Caller,
		Player2:         player2,
		Stake:           stake,
		Player1Deadline: deadline,
		EnrollBlock:     env.Height,
		Status:          types.StatusCreated,
	})

	k.logger.Info("player 1 enrolled", "commitment", digest.String(), "player1", env.Caller, "player2", player2, "deadline", deadline)

	return []abci.Event{newEvent(types.EventTypePlayer1Enrolled, map[string]string{
		types.AttributeKeyCommitment: digest.String(),
		types.AttributeKeyPlayer1:    env.Caller,
		types.AttributeKeyPlayer2:    player2,
		types.AttributeKeyStake:      fmt.Sprintf("%d", stake),
		types.AttributeKeyDeadline:   fmt.Sprintf("%d", deadline),
		"refundableAfter":            fmt.Sprintf("%d", expiresAt),
	})}, nil
}

// EnrollPlayer2 records the designated opponent's open move and stake.
//
// Player 2 may join for as long as the game is still open, even after player
// 1's deadline has elapsed: whichever of EnrollPlayer2 and QuitPlayer1 lands
// first wins.
func (k Keeper) EnrollPlayer2(env types.Env, digest types.Digest, move types.Move, stake uint64) ([]abci.Event, error) {
	if err := requireEnv(env); err != nil {
		return nil, err
	}
	if !move.Valid() {
		return nil, types.ErrInvalidMove.Wrapf("move %d not in 1..3", uint8(move))
	}

	g, err := openGame(env, digest)
	if err != nil {
		return nil, err
	}
	if g.Player2Enrolled() {
		return nil, types.ErrAlreadyEnrolled.Wrapf("commitment %s", digest)
	}
	if env.Caller != g.Player2 {
		return nil, types.ErrWrongPlayer.Wrapf("caller %q is not player2 %q", env.Caller, g.Player2)
	}
	if stake != g.Stake {
		return nil, types.ErrIncorrectStake.Wrapf("got %d want %d", stake, g.Stake)
	}

	if err := escrow(env, env.Caller, stake); err != nil {
		return nil, err
	}

	g.Player2Move = move
	g.Player2EnrollBlock = env.Height
	g.Status = types.StatusPlayer2Enrolled
	env.Store.SetGame(g)

	k.logger.Info("player 2 enrolled", "commitment", digest.String(), "player2", env.Caller, "move", move.String())

	return []abci.Event{newEvent(types.EventTypePlayer2Enrolled, map[string]string{
		types.AttributeKeyCommitment: digest.String(),
		types.AttributeKeyPlayer2:    env.Caller,
		types.AttributeKeyMove:       move.String(),
		types.AttributeKeyStake:      fmt.Sprintf("%d", stake),
	})}, nil
}
