package types

// GameStore is the registry of game records and withdrawable balances.
type GameStore interface {
	Params() Params
	GetGame(d Digest) (*Game, bool)
	SetGame(g *Game)
	// Games returns every record ordered by digest.
	Games() []*Game
	Pending(addr string) uint64
	SetPending(addr string, amount uint64)
	// PendingEntries returns a copy of every non-zero withdrawable balance.
	PendingEntries() map[string]uint64
}

// BankKeeper defines the expected interface needed for escrow management.
type BankKeeper interface {
	Balance(addr string) uint64
	SendFromAccountToModule(sender, module string, amount uint64) error
	SendFromModuleToAccount(module, recipient string, amount uint64) error
}

// Env is the execution environment of one call, supplied by the ledger.
type Env struct {
	Store  GameStore
	Bank   BankKeeper
	Height int64
	// Caller is the authenticated identity submitting the call.
	Caller string
}
