package keeper

import (
	"fmt"
	"math/bits"

	"rpschain/x/rps/types"
)

// EscrowInvariant checks that the module account holds exactly the stakes of
// games still in escrow plus every pending balance.
func (k Keeper) EscrowInvariant(store types.GameStore, bank types.BankKeeper) error {
	var expected uint64
	add := func(v uint64) error {
		sum, carry := bits.Add64(expected, v, 0)
		if carry != 0 {
			return fmt.Errorf("escrow total overflows uint64")
		}
		expected = sum
		return nil
	}

	for _, g := range store.Games() {
		hi, lo := bits.Mul64(g.Stake, g.EscrowedSides())
		if hi != 0 {
			return fmt.Errorf("game %s: escrowed stake overflows uint64", g.Digest)
		}
		if err := add(lo); err != nil {
			return err
		}
	}
	for _, amt := range store.PendingEntries() {
		if err := add(amt); err != nil {
			return err
		}
	}

	if held := bank.Balance(types.ModuleAccount); held != expected {
		return fmt.Errorf("escrow mismatch: module holds %d, games and pending balances account for %d", held, expected)
	}
	return nil
}
