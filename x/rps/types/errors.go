package types

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

// x/rps sentinel errors.
var (
	ErrInvalidRequest    = errorsmod.Register(ModuleName, 2, "invalid request")
	ErrInvalidMove       = errorsmod.Register(ModuleName, 3, "invalid move")
	ErrIncorrectStake    = errorsmod.Register(ModuleName, 4, "incorrect stake")
	ErrDeadlineTooShort  = errorsmod.Register(ModuleName, 5, "deadline too short")
	ErrRevealMismatch    = errorsmod.Register(ModuleName, 6, "reveal does not match commitment")
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 7, "insufficient funds")
	ErrWrongPlayer       = errorsmod.Register(ModuleName, 8, "caller is not the designated player")
	ErrUnknownGame       = errorsmod.Register(ModuleName, 9, "unknown game")
	ErrDigestInUse       = errorsmod.Register(ModuleName, 10, "commitment already in use")
	ErrGameClosed        = errorsmod.Register(ModuleName, 11, "game is closed")
	ErrAlreadyEnrolled   = errorsmod.Register(ModuleName, 12, "player 2 already enrolled")
	ErrTooEarly          = errorsmod.Register(ModuleName, 13, "player 2 has not enrolled yet")
	ErrAlreadyRevealed   = errorsmod.Register(ModuleName, 14, "player 1 already revealed")
	ErrNothingToWithdraw = errorsmod.Register(ModuleName, 15, "nothing to withdraw")
	ErrDeadlineNotPassed = errorsmod.Register(ModuleName, 16, "deadline has not passed")
	ErrBalanceOverflow   = errorsmod.Register(ModuleName, 17, "balance overflow")
)

// ErrorClass groups sentinel errors by what the caller got wrong.
type ErrorClass string

const (
	ClassNone          ErrorClass = ""
	ClassValidation    ErrorClass = "validation"
	ClassAuthorization ErrorClass = "authorization"
	ClassState         ErrorClass = "state"
	ClassTiming        ErrorClass = "timing"
)

var errorClasses = []struct {
	class ErrorClass
	errs  []error
}{
	{ClassValidation, []error{ErrInvalidRequest, ErrInvalidMove, ErrIncorrectStake, ErrDeadlineTooShort, ErrRevealMismatch, ErrInsufficientFunds, ErrBalanceOverflow}},
	{ClassAuthorization, []error{ErrWrongPlayer}},
	{ClassState, []error{ErrUnknownGame, ErrDigestInUse, ErrGameClosed, ErrAlreadyEnrolled, ErrTooEarly, ErrAlreadyRevealed, ErrNothingToWithdraw}},
	{ClassTiming, []error{ErrDeadlineNotPassed}},
}

// ClassOf reports the class of err, or ClassNone for errors outside this module.
func ClassOf(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}
	for _, c := range errorClasses {
		for _, target := range c.errs {
			if errors.Is(err, target) {
				return c.class
			}
		}
	}
	return ClassNone
}
