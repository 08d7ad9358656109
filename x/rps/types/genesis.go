package types

import "fmt"

// GenesisState is the x/rps section of the chain's app_state.
type GenesisState struct {
	Params Params `json:"params"`
}

func DefaultGenesisState() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

func ValidateGenesis(gs *GenesisState) error {
	if gs == nil {
		return fmt.Errorf("genesis state is nil")
	}
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}
