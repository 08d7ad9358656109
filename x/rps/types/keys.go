package types

const (
	// ModuleName defines the module name.
	ModuleName = "rps"

	// ModuleAccount is the bank account holding every escrowed stake.
	ModuleAccount = "rps/escrow"
)
