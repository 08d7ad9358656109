package app

import (
	"context"
	"encoding/json"
	"strings"

	errorsmod "cosmossdk.io/errors"

	abci "github.com/cometbft/cometbft/abci/types"

	"rpschain/internal/codec"
	"rpschain/internal/state"
	"rpschain/x/rps/types"
)

// Query paths:
//   - /params
//   - /game/<commitment>
//   - /games              (Data: optional player address filter)
//   - /pending/<addr>
//   - /account/<addr>
//   - /commitment         (Data: codec.CommitmentQuery JSON)
//   - /heights            (retained snapshot heights)
//
// A non-zero Height reads the retained snapshot at that height.
func (a *RPSApp) Query(_ context.Context, req *abci.QueryRequest) (*abci.QueryResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := a.st
	if req.Height != 0 && req.Height != a.st.Height {
		hist, err := a.db.LoadAt(req.Height)
		if err != nil {
			return queryError(types.ErrInvalidRequest.Wrap(err.Error()), req.Height), nil
		}
		st = hist
	}

	v, err := a.query(st, strings.TrimSpace(req.Path), req.Data)
	if err != nil {
		return queryError(err, st.Height), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return queryError(err, st.Height), nil
	}
	return &abci.QueryResponse{Code: 0, Value: b, Height: st.Height}, nil
}

func queryError(err error, height int64) *abci.QueryResponse {
	space, code, msg := errorsmod.ABCIInfo(err, false)
	return &abci.QueryResponse{Codespace: space, Code: code, Log: msg, Height: height}
}

func (a *RPSApp) query(st *state.State, path string, data []byte) (any, error) {
	switch {
	case path == "/params":
		return a.keeper.Params(st), nil

	case path == "/games":
		return a.keeper.Games(st, strings.TrimSpace(string(data))), nil

	case strings.HasPrefix(path, "/game/"):
		d, err := types.ParseDigest(strings.TrimPrefix(path, "/game/"))
		if err != nil {
			return nil, err
		}
		return a.keeper.Game(st, d)

	case strings.HasPrefix(path, "/pending/"):
		addr := strings.TrimPrefix(path, "/pending/")
		return map[string]any{"addr": addr, "pending": a.keeper.PendingBalance(st, addr)}, nil

	case strings.HasPrefix(path, "/account/"):
		addr := strings.TrimPrefix(path, "/account/")
		return map[string]any{"addr": addr, "balance": st.Balance(addr)}, nil

	case path == "/commitment":
		var q codec.CommitmentQuery
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, types.ErrInvalidRequest.Wrapf("bad commitment query: %v", err)
		}
		d, err := types.ComputeCommitment(q.Secret, q.Move, q.Address)
		if err != nil {
			return nil, err
		}
		return map[string]string{"commitment": d.String()}, nil

	case path == "/heights":
		heights, err := a.db.Heights()
		if err != nil {
			return nil, err
		}
		return map[string]any{"latest": a.st.Height, "retained": heights}, nil

	default:
		return nil, ErrUnknownQueryPath.Wrap(path)
	}
}
