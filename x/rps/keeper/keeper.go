package keeper

import (
	"fmt"
	"sort"

	"cosmossdk.io/log"

	abci "github.com/cometbft/cometbft/abci/types"

	"rpschain/x/rps/types"
)

// Keeper owns every game transition. It holds no state of its own: each call
// receives the registry and bank it operates on through types.Env.
type Keeper struct {
	logger log.Logger
}

func NewKeeper(logger log.Logger) Keeper {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return Keeper{logger: logger.With("module", "x/"+types.ModuleName)}
}

func requireEnv(env types.Env) error {
	if env.Store == nil || env.Bank == nil {
		return fmt.Errorf("rps: incomplete execution environment")
	}
	if env.Caller == "" {
		return types.ErrInvalidRequest.Wrap("missing caller")
	}
	return nil
}

// openGame loads a game that can still transition.
func openGame(env types.Env, d types.Digest) (*types.Game, error) {
	g, ok := env.Store.GetGame(d)
	if !ok {
		return nil, types.ErrUnknownGame.Wrapf("commitment %s", d)
	}
	if g.Closed() {
		return nil, types.ErrGameClosed.Wrapf("commitment %s is %s", d, g.Status)
	}
	return g, nil
}

// unrevealedGame is openGame for transitions that require player 1's move to
// still be hidden. A revealed game reports ErrAlreadyRevealed.
func unrevealedGame(env types.Env, d types.Digest) (*types.Game, error) {
	if g, ok := env.Store.GetGame(d); ok && g.Revealed {
		return nil, types.ErrAlreadyRevealed.Wrapf("commitment %s", d)
	}
	return openGame(env, d)
}

// escrow moves a stake from the caller into the module account.
func escrow(env types.Env, from string, amount uint64) error {
	if bal := env.Bank.Balance(from); bal < amount {
		return types.ErrInsufficientFunds.Wrapf("have=%d need=%d", bal, amount)
	}
	return env.Bank.SendFromAccountToModule(from, types.ModuleAccount, amount)
}

// creditPending adds amount to addr's withdrawable balance.
func creditPending(env types.Env, addr string, amount uint64) error {
	bal := env.Store.Pending(addr)
	if bal > ^uint64(0)-amount {
		return types.ErrBalanceOverflow.Wrapf("pending have=%d add=%d", bal, amount)
	}
	env.Store.SetPending(addr, bal+amount)
	return nil
}

func newEvent(typ string, attrs map[string]string) abci.Event {
	ev := abci.Event{Type: typ}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ev.Attributes = append(ev.Attributes, abci.EventAttribute{Key: k, Value: attrs[k], Index: true})
	}
	return ev
}
