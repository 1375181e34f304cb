// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

// ErrorKind classifies every error returned by the sale, distribution and vesting packages
type ErrorKind int

const (
	UnknownError ErrorKind = iota
	// ValidationError rejects bad constructor or admin parameters
	ValidationError
	// AuthorizationError rejects callers lacking the required role or list membership
	AuthorizationError
	// WindowError rejects calls made outside their time window, may succeed later
	WindowError
	// CapacityError rejects contributions or mints above a cap
	CapacityError
	// StateConflictError is permanent for the given caller and arguments
	StateConflictError
)

func (k ErrorKind) String() string {
	switch k {
	case ValidationError:
		return "ValidationError"
	case AuthorizationError:
		return "AuthorizationError"
	case WindowError:
		return "WindowError"
	case CapacityError:
		return "CapacityError"
	case StateConflictError:
		return "StateConflictError"
	default:
		return "UnknownError"
	}
}

// Retryable reports whether resubmitting the same call later may succeed
func (k ErrorKind) Retryable() bool {
	return k == WindowError || k == CapacityError
}

// KindError is a sentinel error tagged with its kind. Call sites wrap it with %w.
type KindError struct {
	Kind ErrorKind
	msg  string
}

func (e *KindError) Error() string {
	return e.msg
}

func newError(kind ErrorKind, msg string) *KindError {
	return &KindError{Kind: kind, msg: msg}
}

// KindOf returns the kind of the first KindError in err's chain
func KindOf(err error) ErrorKind {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return UnknownError
}

var (
	ErrInvalidAddress       = newError(ValidationError, "invalid address")
	ErrArityMismatch        = newError(ValidationError, "arity mismatch")
	ErrMultiplierOutOfRange = newError(ValidationError, "vesting bonus multiplier out of range")
	ErrZeroDuration         = newError(ValidationError, "zero vesting duration")
	ErrStartTimeInPast      = newError(ValidationError, "start time in the past")
	ErrInvalidWindow        = newError(ValidationError, "end time must be after start time")
	ErrCapMisconfigured     = newError(ValidationError, "cap misconfigured")
	ErrZeroAmount           = newError(ValidationError, "zero amount")
	ErrZeroValue            = newError(ValidationError, "zero value")
	ErrOverflow             = newError(ValidationError, "uint256 overflow")

	ErrNotOwner        = newError(AuthorizationError, "caller is not the owner")
	ErrNotWhitelisted  = newError(AuthorizationError, "address not whitelisted")
	ErrNotBeneficiary  = newError(AuthorizationError, "no escrow for beneficiary")
	ErrTransferBlocked = newError(AuthorizationError, "token transfers are paused")

	ErrOutOfWindow     = newError(WindowError, "outside of the allowed time window")
	ErrPreTGEStillOpen = newError(WindowError, "pre-TGE ledger is not locked")
	ErrSaleStillOpen   = newError(WindowError, "public sale and grace period have not elapsed")

	ErrCapExceeded         = newError(CapacityError, "contribution cap exceeded")
	ErrSupplyExceeded      = newError(CapacityError, "token max supply exceeded")
	ErrInsufficientBalance = newError(CapacityError, "insufficient balance")

	ErrLedgerClosed     = newError(StateConflictError, "ledger closed")
	ErrAlreadySettled   = newError(StateConflictError, "already settled")
	ErrNoContribution   = newError(StateConflictError, "no contribution")
	ErrNothingToRelease = newError(StateConflictError, "nothing to release")
	ErrVestingUnchanged = newError(StateConflictError, "vesting decision unchanged")
	ErrAlreadyUnpaused  = newError(StateConflictError, "token already unpaused")
	ErrNoStuckFunds     = newError(StateConflictError, "no stuck funds to reclaim")
	ErrStateNotFound    = errors.New("no deployment found, run 'tge deploy' first")
	ErrDeploymentExists = errors.New("a deployment already exists in the base dir, use --force to replace it")
)
