package app

import (
	"encoding/json"

	"rpschain/internal/state"
	"rpschain/x/rps/types"
)

// GenesisState is the app_state document passed to InitChain.
type GenesisState struct {
	RPS *types.GenesisState `json:"rps,omitempty"`
	// Balances seeds bank accounts at genesis.
	Balances map[string]uint64 `json:"balances,omitempty"`
}

func parseGenesis(raw []byte, fallback types.Params) (GenesisState, error) {
	gs := GenesisState{RPS: &types.GenesisState{Params: fallback}}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &gs); err != nil {
			return GenesisState{}, ErrInvalidGenesis.Wrapf("decode app_state: %v", err)
		}
		if gs.RPS == nil {
			gs.RPS = &types.GenesisState{Params: fallback}
		}
	}
	if err := types.ValidateGenesis(gs.RPS); err != nil {
		return GenesisState{}, ErrInvalidGenesis.Wrap(err.Error())
	}
	for addr := range gs.Balances {
		if addr == "" {
			return GenesisState{}, ErrInvalidGenesis.Wrap("empty balance address")
		}
		if isReservedAccount(addr) {
			return GenesisState{}, ErrReservedAccount.Wrapf("cannot fund %q at genesis", addr)
		}
	}
	return gs, nil
}

func applyGenesis(st *state.State, gs GenesisState) error {
	st.RPS = gs.RPS.Params
	for addr, amt := range gs.Balances {
		if err := st.Credit(addr, amt); err != nil {
			return err
		}
	}
	return nil
}
