package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	abci "github.com/cometbft/cometbft/abci/types"

	"rpschain/internal/codec"
	"rpschain/internal/state"
	"rpschain/internal/store"
	"rpschain/x/rps/keeper"
	"rpschain/x/rps/types"
)

const (
	AppVersion uint64 = 1
)

type RPSApp struct {
	*abci.BaseApplication

	logger log.Logger
	db     *store.Store
	keeper keeper.Keeper

	// genesisParams apply when InitChain carries no x/rps section.
	genesisParams types.Params

	mu       sync.Mutex
	st       *state.State
	lastHash []byte
}

func New(logger log.Logger, db *store.Store, genesisParams types.Params) (*RPSApp, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if db == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if err := genesisParams.Validate(); err != nil {
		return nil, fmt.Errorf("genesis params: %w", err)
	}
	st, err := db.LoadLatest()
	if err != nil {
		return nil, err
	}
	a := &RPSApp{
		BaseApplication: abci.NewBaseApplication(),
		logger:          logger.With("module", "app"),
		db:              db,
		keeper:          keeper.NewKeeper(logger),
		genesisParams:   genesisParams,
		st:              st,
		lastHash:        st.AppHash,
	}
	if len(a.lastHash) == 0 {
		a.lastHash = st.ComputeAppHash()
	}
	a.logger.Info("loaded state", "height", st.Height, "games", len(st.GameRecords))
	return a, nil
}

func (a *RPSApp) Info(_ context.Context, _ *abci.InfoRequest) (*abci.InfoResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return &abci.InfoResponse{
		Data:             "RPS (v1)",
		Version:          "v1",
		AppVersion:       AppVersion,
		LastBlockHeight:  a.st.Height,
		LastBlockAppHash: a.lastHash,
	}, nil
}

func (a *RPSApp) InitChain(_ context.Context, req *abci.InitChainRequest) (*abci.InitChainResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	gs, err := parseGenesis(req.AppStateBytes, a.genesisParams)
	if err != nil {
		return nil, err
	}
	if err := applyGenesis(a.st, gs); err != nil {
		return nil, err
	}
	a.lastHash = a.st.ComputeAppHash()
	a.logger.Info("init chain", "chain_id", req.ChainId, "stake", a.st.RPS.Stake, "min_deadline", a.st.RPS.MinDeadline)
	return &abci.InitChainResponse{AppHash: a.lastHash}, nil
}

// CheckTx validates structure, auth and nonce against the last committed state.
// Game rules are only evaluated at FinalizeBlock.
func (a *RPSApp) CheckTx(_ context.Context, req *abci.CheckTxRequest) (*abci.CheckTxResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	env, register, err := decodeTx(req.Tx)
	if err != nil {
		return checkTxError(err), nil
	}
	if _, err := authenticate(a.st, env, register); err != nil {
		return checkTxError(err), nil
	}
	return &abci.CheckTxResponse{Code: 0}, nil
}

func checkTxError(err error) *abci.CheckTxResponse {
	space, code, msg := errorsmod.ABCIInfo(err, false)
	return &abci.CheckTxResponse{Codespace: space, Code: code, Log: msg}
}

func (a *RPSApp) FinalizeBlock(_ context.Context, req *abci.FinalizeBlockRequest) (*abci.FinalizeBlockResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.st.Height = req.Height

	txResults := make([]*abci.ExecTxResult, 0, len(req.Txs))
	for _, txBytes := range req.Txs {
		txResults = append(txResults, a.deliverTx(txBytes, req.Height))
	}

	a.lastHash = a.st.ComputeAppHash()
	a.st.AppHash = a.lastHash

	return &abci.FinalizeBlockResponse{
		TxResults: txResults,
		AppHash:   a.lastHash,
	}, nil
}

func (a *RPSApp) Commit(_ context.Context, _ *abci.CommitRequest) (*abci.CommitResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.db.Save(a.st); err != nil {
		// CometBFT expects Commit to not crash; return error so node halts loudly.
		return nil, err
	}
	return &abci.CommitResponse{}, nil
}

// deliverTx executes one tx against a staged copy of the state. The copy
// replaces the live state only if the tx succeeds and escrow still balances.
// A tx that authenticates against a registered key consumes its nonce even
// when execution fails, so the same signed bytes cannot be replayed later.
func (a *RPSApp) deliverTx(txBytes []byte, height int64) *abci.ExecTxResult {
	env, register, err := decodeTx(txBytes)
	if err != nil {
		return txError(err)
	}
	nonce, err := authenticate(a.st, env, register)
	if err != nil {
		a.logger.Debug("tx rejected", "height", height, "type", env.Type, "err", err)
		return txError(err)
	}

	staged, err := a.st.Clone()
	if err != nil {
		return txError(err)
	}
	events, err := a.route(staged, env, register, height)
	if err != nil {
		a.logger.Debug("tx failed", "height", height, "type", env.Type, "class", types.ClassOf(err), "err", err)
		a.consumeNonce(env, register, nonce)
		return txError(err)
	}
	if err := a.keeper.EscrowInvariant(staged, staged); err != nil {
		a.logger.Error("rejecting tx that breaks escrow invariant", "height", height, "err", err)
		a.consumeNonce(env, register, nonce)
		return txError(ErrInvariantBroken.Wrap(err.Error()))
	}

	recordNonce(staged, env, nonce)
	a.st = staged
	return &abci.ExecTxResult{Code: 0, Events: events}
}

// consumeNonce records nonce on the live state after a failed execution.
// Register txs are skipped: their signature is checked against the key they
// carry, so anyone could otherwise advance another account's nonce.
func (a *RPSApp) consumeNonce(env codec.TxEnvelope, register *codec.AuthRegisterAccountTx, nonce uint64) {
	if register != nil {
		return
	}
	recordNonce(a.st, env, nonce)
}

func recordNonce(st *state.State, env codec.TxEnvelope, nonce uint64) {
	if env.Type == codec.TypeBankMint {
		return
	}
	st.NonceMax[env.Signer] = nonce
}

// txError maps err to an ABCI result. Game errors carry their class in Info.
func txError(err error) *abci.ExecTxResult {
	space, code, msg := errorsmod.ABCIInfo(err, false)
	return &abci.ExecTxResult{Codespace: space, Code: code, Log: msg, Info: string(types.ClassOf(err))}
}

func decodeTx(txBytes []byte) (codec.TxEnvelope, *codec.AuthRegisterAccountTx, error) {
	env, err := codec.DecodeTxEnvelope(txBytes)
	if err != nil {
		return codec.TxEnvelope{}, nil, ErrTxDecode.Wrap(err.Error())
	}
	if env.Type != codec.TypeAuthRegisterAccount {
		return env, nil, nil
	}
	var msg codec.AuthRegisterAccountTx
	if err := decodeValue(env, &msg); err != nil {
		return codec.TxEnvelope{}, nil, err
	}
	return env, &msg, nil
}

func decodeValue(env codec.TxEnvelope, v any) error {
	if err := json.Unmarshal(env.Value, v); err != nil {
		return ErrTxDecode.Wrapf("bad %s value: %v", env.Type, err)
	}
	return nil
}

func (a *RPSApp) route(st *state.State, env codec.TxEnvelope, register *codec.AuthRegisterAccountTx, height int64) ([]abci.Event, error) {
	rpsEnv := types.Env{Store: st, Bank: st, Height: height, Caller: env.Signer}

	switch env.Type {
	case codec.TypeBankMint:
		var msg codec.BankMintTx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		if msg.To == "" || msg.Amount == 0 {
			return nil, types.ErrInvalidRequest.Wrap("missing to/amount")
		}
		if isReservedAccount(msg.To) {
			return nil, ErrReservedAccount.Wrapf("cannot mint to %q", msg.To)
		}
		if err := st.Credit(msg.To, msg.Amount); err != nil {
			return nil, err
		}
		return []abci.Event{attrEvent("BankMinted", map[string]string{
			"to":     msg.To,
			"amount": fmt.Sprintf("%d", msg.Amount),
		})}, nil

	case codec.TypeBankSend:
		var msg codec.BankSendTx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		if msg.To == "" || msg.Amount == 0 {
			return nil, types.ErrInvalidRequest.Wrap("missing to/amount")
		}
		if isReservedAccount(msg.To) {
			return nil, ErrReservedAccount.Wrapf("cannot send to %q", msg.To)
		}
		if err := st.Send(env.Signer, msg.To, msg.Amount); err != nil {
			return nil, err
		}
		return []abci.Event{attrEvent("BankSent", map[string]string{
			"from":   env.Signer,
			"to":     msg.To,
			"amount": fmt.Sprintf("%d", msg.Amount),
		})}, nil

	case codec.TypeAuthRegisterAccount:
		if isReservedAccount(register.Account) {
			return nil, ErrReservedAccount.Wrapf("cannot register %q", register.Account)
		}
		if existing := st.AccountKeys[register.Account]; len(existing) != 0 {
			return nil, ErrUnauthorized.Wrapf("account %q already registered", register.Account)
		}
		st.AccountKeys[register.Account] = append([]byte(nil), register.PubKey...)
		return []abci.Event{attrEvent("AccountKeyUpdated", map[string]string{
			"account": register.Account,
		})}, nil

	case codec.TypeEnrollPlayer1:
		var msg codec.EnrollPlayer1Tx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		return a.keeper.EnrollPlayer1(rpsEnv, msg.Deadline, msg.Commitment, msg.Player2, msg.Stake)

	case codec.TypeEnrollPlayer2:
		var msg codec.EnrollPlayer2Tx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		return a.keeper.EnrollPlayer2(rpsEnv, msg.Commitment, msg.Move, msg.Stake)

	case codec.TypeReveal:
		var msg codec.RevealTx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		return a.keeper.RevealPlayer1Move(rpsEnv, msg.Commitment, msg.Move, msg.Secret)

	case codec.TypeQuitPlayer1:
		var msg codec.QuitPlayer1Tx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		return a.keeper.QuitPlayer1(rpsEnv, msg.Commitment)

	case codec.TypeQuitPlayer2:
		var msg codec.QuitPlayer2Tx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		return a.keeper.QuitPlayer2(rpsEnv, msg.Commitment)

	case codec.TypeWithdraw:
		var msg codec.WithdrawTx
		if err := decodeValue(env, &msg); err != nil {
			return nil, err
		}
		_, events, err := a.keeper.Withdraw(rpsEnv)
		return events, err

	default:
		return nil, ErrUnknownTxType.Wrap(env.Type)
	}
}

// isReservedAccount reports whether addr is a module account that no key may
// control and no transfer may target directly.
func isReservedAccount(addr string) bool {
	return addr == types.ModuleAccount
}

func attrEvent(typ string, attrs map[string]string) abci.Event {
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
