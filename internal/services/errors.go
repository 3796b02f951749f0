// Package services defines the business logic for delulus, stakes,
// claims and users. This file centralizes common service-level error
// values so that they can be consistently returned by service methods
// and checked by callers.
//
// Translation into HTTP status codes is performed at the handler layer;
// each value maps to a distinct, recoverable failure so callers can
// tell "already processed" apart from "malformed request".
package services

import "errors"

// Validation errors.
var (
	// ErrInvalidAddress is returned when a wallet address is not a
	// well-formed 20-byte hex address.
	ErrInvalidAddress = errors.New("invalid wallet address")

	// ErrInvalidTxHash is returned when a transaction hash is not a
	// well-formed 32-byte hex hash.
	ErrInvalidTxHash = errors.New("invalid transaction hash")

	// ErrInvalidAmount is returned when an amount is missing, not a
	// decimal, or not strictly positive.
	ErrInvalidAmount = errors.New("amount must be a positive decimal")

	// ErrInvalidOnChainID is returned when an on-chain id cannot be
	// parsed as a non-negative integer.
	ErrInvalidOnChainID = errors.New("invalid on-chain id")

	// ErrInvalidDeadlines is returned when the resolution deadline does
	// not come after the staking deadline.
	ErrInvalidDeadlines = errors.New("resolution deadline must be after staking deadline")

	// ErrMissingContentHash is returned when a delulu creation event
	// carries no content hash.
	ErrMissingContentHash = errors.New("content hash is required")

	// ErrInvalidLeaderboardType is returned for an unrecognized
	// leaderboard type value.
	ErrInvalidLeaderboardType = errors.New("unknown leaderboard type")
)

// Not-found errors.
var (
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDeluluNotFound indicates the referenced delulu does not exist.
	ErrDeluluNotFound = errors.New("delulu not found")
)

// Duplicate / state-conflict errors.
var (
	// ErrDuplicateTx indicates the transaction hash was already
	// processed; the event has been applied and must not be re-applied.
	ErrDuplicateTx = errors.New("transaction already processed")

	// ErrDuplicateOnChainID indicates a delulu with this on-chain id
	// was already ingested.
	ErrDuplicateOnChainID = errors.New("delulu already exists for this on-chain id")

	// ErrDuplicateClaim indicates the user already claimed this delulu.
	ErrDuplicateClaim = errors.New("claim already recorded for this user and delulu")

	// ErrStakingClosed is returned when a stake arrives for a delulu
	// that is no longer accepting stakes.
	ErrStakingClosed = errors.New("staking is closed for this delulu")

	// ErrAlreadyResolved is returned when resolving or cancelling a
	// delulu that was already resolved.
	ErrAlreadyResolved = errors.New("delulu already resolved")

	// ErrAlreadyCancelled is returned when resolving or cancelling a
	// delulu that was already cancelled.
	ErrAlreadyCancelled = errors.New("delulu already cancelled")
)
