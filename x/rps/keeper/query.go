package keeper

import (
	"rpschain/x/rps/types"
)

// GameSummary is the list view of a game record.
type GameSummary struct {
	Digest  types.Digest     `json:"digest"`
	Player1 string           `json:"player1"`
	Player2 string           `json:"player2"`
	Status  types.GameStatus `json:"status"`
}

func (k Keeper) Game(store types.GameStore, digest types.Digest) (*types.Game, error) {
	g, ok := store.GetGame(digest)
	if !ok {
		return nil, types.ErrUnknownGame.Wrapf("commitment %s", digest)
	}
	return g, nil
}

// Games lists every game, optionally filtered by a participant address.
func (k Keeper) Games(store types.GameStore, player string) []GameSummary {
	games := store.Games()
	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		if player != "" && g.Player1 != player && g.Player2 != player {
			continue
		}
		out = append(out, GameSummary{Digest: g.Digest, Player1: g.Player1, Player2: g.Player2, Status: g.Status})
	}
	return out
}

func (k Keeper) PendingBalance(store types.GameStore, addr string) uint64 {
	return store.Pending(addr)
}

func (k Keeper) Params(store types.GameStore) types.Params {
	return store.Params()
}
