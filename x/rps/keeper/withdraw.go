package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	abci "github.com/cometbft/cometbft/abci/types"

	"rpschain/x/rps/types"
)

// Withdraw pays the caller's whole pending balance out of escrow.
func (k Keeper) Withdraw(env types.Env) (uint64, []abci.Event, error) {
	if err := requireEnv(env); err != nil {
		return 0, nil, err
	}
	amount := env.Store.Pending(env.Caller)
	if amount == 0 {
		return 0, nil, types.ErrNothingToWithdraw.Wrapf("caller %q", env.Caller)
	}

	env.Store.SetPending(env.Caller, 0)
	if err := env.Bank.SendFromModuleToAccount(types.ModuleAccount, env.Caller, amount); err != nil {
		return 0, nil, errorsmod.Wrap(err, "pay out pending balance")
	}

	k.logger.Info("withdrawn", "player", env.Caller, "amount", amount)

	return amount, []abci.Event{newEvent(types.EventTypeWithdrawn, map[string]string{
		types.AttributeKeyPlayer: env.Caller,
		types.AttributeKeyAmount: fmt.Sprintf("%d", amount),
	})}, nil
}
