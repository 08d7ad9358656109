package app

import errorsmod "cosmossdk.io/errors"

const appCodespace = "app"

var (
	ErrTxDecode         = errorsmod.Register(appCodespace, 2, "tx decode error")
	ErrUnknownTxType    = errorsmod.Register(appCodespace, 3, "unknown tx type")
	ErrUnauthorized     = errorsmod.Register(appCodespace, 4, "unauthorized")
	ErrInvalidNonce     = errorsmod.Register(appCodespace, 5, "invalid nonce")
	ErrReservedAccount  = errorsmod.Register(appCodespace, 6, "reserved account")
	ErrInvariantBroken  = errorsmod.Register(appCodespace, 7, "state invariant broken")
	ErrInvalidGenesis   = errorsmod.Register(appCodespace, 8, "invalid genesis")
	ErrUnknownQueryPath = errorsmod.Register(appCodespace, 9, "unknown query path")
)
