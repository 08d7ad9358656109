package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"

	errorsmod "cosmossdk.io/errors"

	"rpschain/x/rps/types"
)

const bankCodespace = "bank"

var (
	ErrInsufficientFunds = errorsmod.Register(bankCodespace, 2, "insufficient funds")
	ErrBalanceOverflow   = errorsmod.Register(bankCodespace, 3, "balance overflow")
)

type State struct {
	Height  int64  `json:"height"`
	AppHash []byte `json:"-"`

	RPS types.Params `json:"rps"`

	Accounts    map[string]uint64 `json:"accounts"`
	AccountKeys map[string][]byte `json:"accountKeys,omitempty"` // addr -> ed25519 pubkey (32 bytes)
	NonceMax    map[string]uint64 `json:"nonceMax,omitempty"`    // signer -> last accepted tx.nonce (u64), for replay protection

	GameRecords map[types.Digest]*types.Game `json:"games"`
	PendingBals map[string]uint64            `json:"pending"` // withdrawable winnings and refunds
}

func NewState() *State {
	return &State{
		Height:      0,
		RPS:         types.DefaultParams(),
		Accounts:    map[string]uint64{},
		AccountKeys: map[string][]byte{},
		NonceMax:    map[string]uint64{},
		GameRecords: map[types.Digest]*types.Game{},
		PendingBals: map[string]uint64{},
	}
}

func (s *State) normalize() {
	if s.Accounts == nil {
		s.Accounts = map[string]uint64{}
	}
	if s.AccountKeys == nil {
		s.AccountKeys = map[string][]byte{}
	}
	if s.NonceMax == nil {
		s.NonceMax = map[string]uint64{}
	}
	if s.GameRecords == nil {
		s.GameRecords = map[types.Digest]*types.Game{}
	}
	if s.PendingBals == nil {
		s.PendingBals = map[string]uint64{}
	}
}

// Decode parses a JSON-encoded state snapshot.
func Decode(b []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	st.normalize()
	return &st, nil
}

func (s *State) Encode() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

// Clone returns a deep copy of state suitable for staged tx execution.
func (s *State) Clone() (*State, error) {
	if s == nil {
		return nil, fmt.Errorf("state is nil")
	}
	b, err := s.Encode()
	if err != nil {
		return nil, err
	}
	out, err := Decode(b)
	if err != nil {
		return nil, err
	}
	out.AppHash = append([]byte(nil), s.AppHash...)
	return out, nil
}

func (s *State) ComputeAppHash() []byte {
	// encoding/json sorts map keys, but we normalize into slices anyway so the
	// hashed layout does not depend on how a map key type marshals.
	type accountKV struct {
		Addr    string `json:"addr"`
		Balance uint64 `json:"balance"`
	}
	type accountKeyKV struct {
		Addr   string `json:"addr"`
		PubKey []byte `json:"pubKey"`
	}
	type nonceKV struct {
		Signer string `json:"signer"`
		Nonce  uint64 `json:"nonce"`
	}

	accounts := sortedBalances(s.Accounts)
	pending := sortedBalances(s.PendingBals)

	accountKeys := make([]accountKeyKV, 0, len(s.AccountKeys))
	for k, v := range s.AccountKeys {
		accountKeys = append(accountKeys, accountKeyKV{Addr: k, PubKey: v})
	}
	sort.Slice(accountKeys, func(i, j int) bool { return accountKeys[i].Addr < accountKeys[j].Addr })

	nonces := make([]nonceKV, 0, len(s.NonceMax))
	for k, v := range s.NonceMax {
		nonces = append(nonces, nonceKV{Signer: k, Nonce: v})
	}
	sort.Slice(nonces, func(i, j int) bool { return nonces[i].Signer < nonces[j].Signer })

	normalized := struct {
		Height      int64          `json:"height"`
		RPS         types.Params   `json:"rps"`
		Accounts    []accountKV    `json:"accounts"`
		AccountKeys []accountKeyKV `json:"accountKeys,omitempty"`
		NonceMax    []nonceKV      `json:"nonceMax,omitempty"`
		Games       []*types.Game  `json:"games"`
		Pending     []accountKV    `json:"pending"`
	}{
		Height:      s.Height,
		RPS:         s.RPS,
		AccountKeys: accountKeys,
		NonceMax:    nonces,
		Games:       s.Games(),
	}
	for _, kv := range accounts {
		normalized.Accounts = append(normalized.Accounts, accountKV{Addr: kv.addr, Balance: kv.amount})
	}
	for _, kv := range pending {
		normalized.Pending = append(normalized.Pending, accountKV{Addr: kv.addr, Balance: kv.amount})
	}

	b, _ := json.Marshal(normalized)
	sum := sha256.Sum256(b)
	return sum[:]
}

type balanceKV struct {
	addr   string
	amount uint64
}

func sortedBalances(m map[string]uint64) []balanceKV {
	out := make([]balanceKV, 0, len(m))
	for k, v := range m {
		out = append(out, balanceKV{addr: k, amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].addr < out[j].addr })
	return out
}

// ---- Bank ----

func (s *State) Balance(addr string) uint64 {
	return s.Accounts[addr]
}

func (s *State) Credit(addr string, amount uint64) error {
	bal := s.Accounts[addr]
	if bal > ^uint64(0)-amount {
		return ErrBalanceOverflow.Wrapf("have=%d add=%d", bal, amount)
	}
	s.Accounts[addr] = bal + amount
	return nil
}

func (s *State) Debit(addr string, amount uint64) error {
	bal := s.Accounts[addr]
	if bal < amount {
		return ErrInsufficientFunds.Wrapf("have=%d need=%d", bal, amount)
	}
	s.Accounts[addr] = bal - amount
	return nil
}

// Send moves amount between two accounts, or fails without touching either.
func (s *State) Send(from, to string, amount uint64) error {
	if s.Accounts[from] < amount {
		return ErrInsufficientFunds.Wrapf("have=%d need=%d", s.Accounts[from], amount)
	}
	if from != to && s.Accounts[to] > ^uint64(0)-amount {
		return ErrBalanceOverflow.Wrapf("have=%d add=%d", s.Accounts[to], amount)
	}
	s.Accounts[from] -= amount
	s.Accounts[to] += amount
	return nil
}

func (s *State) SendFromAccountToModule(sender, module string, amount uint64) error {
	return s.Send(sender, module, amount)
}

func (s *State) SendFromModuleToAccount(module, recipient string, amount uint64) error {
	return s.Send(module, recipient, amount)
}

// ---- RPS registry ----

func (s *State) Params() types.Params {
	return s.RPS
}

func (s *State) GetGame(d types.Digest) (*types.Game, bool) {
	g, ok := s.GameRecords[d]
	return g, ok
}

func (s *State) SetGame(g *types.Game) {
	s.GameRecords[g.Digest] = g
}

func (s *State) Games() []*types.Game {
	out := make([]*types.Game, 0, len(s.GameRecords))
	for _, g := range s.GameRecords {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].Digest[:], out[j].Digest[:]) < 0 })
	return out
}

func (s *State) Pending(addr string) uint64 {
	return s.PendingBals[addr]
}

func (s *State) SetPending(addr string, amount uint64) {
	if amount == 0 {
		delete(s.PendingBals, addr)
		return
	}
	s.PendingBals[addr] = amount
}

// PendingEntries returns every non-zero withdrawable balance.
func (s *State) PendingEntries() map[string]uint64 {
	out := make(map[string]uint64, len(s.PendingBals))
	for k, v := range s.PendingBals {
		out[k] = v
	}
	return out
}
