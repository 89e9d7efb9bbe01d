package models

import (
	"errors"
	"fmt"
)

// Business-rule failures. These are returned as values, never panicked, and
// map to structured {error, code} JSON at the server boundary.
var (
	// Validation failures, caught before any write.
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidDateRange     = errors.New("invalid date range: end before start")
	ErrNonPositiveAmount    = errors.New("amount must be positive")
	ErrSameAccountTransfer  = errors.New("source and target account are identical")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrAccountNotAccessible = errors.New("account is not accessible by this person")

	// Same-cycle business-rule conflicts.
	ErrAlreadySettledThisCycle = errors.New("obligation already settled this cycle")
	ErrObligationLocked        = errors.New("entry is locked by a settled obligation; reclaim it first")
	ErrNotSettled              = errors.New("obligation is not settled")

	// Not-found.
	ErrNotFound = errors.New("not found")
)

// NotFoundError wraps ErrNotFound with the entity kind and id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound returns a NotFoundError for the given entity kind and id.
func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ErrorCode returns the machine-readable code for a business error, or empty
// for plain store/transport failures.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, ErrSameAccountTransfer):
		return "same_account"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrAccountNotAccessible):
		return "account_not_accessible"
	case errors.Is(err, ErrAlreadySettledThisCycle):
		return "already_settled_this_cycle"
	case errors.Is(err, ErrObligationLocked):
		return "obligation_locked"
	case errors.Is(err, ErrNotSettled):
		return "not_settled"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return ""
	}
}

// IsValidation reports whether err is a pre-write validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrSameAccountTransfer) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrAccountNotAccessible)
}

// IsConflict reports whether err is a same-cycle business-rule violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadySettledThisCycle) ||
		errors.Is(err, ErrObligationLocked) ||
		errors.Is(err, ErrNotSettled)
}
