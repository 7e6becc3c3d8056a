package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected failure inside the service layer.
var ErrInternal = errors.New("internal error")

// Registry errors.
var (
	// ErrDuplicateCode indicates an account or journal code is already taken.
	ErrDuplicateCode = errors.New("code already exists")

	// ErrImmutableField indicates an attempt to change a field that is frozen,
	// e.g. the code of an account referenced by a validated entry.
	ErrImmutableField = errors.New("field is immutable")

	// ErrReferencedEntity indicates the entity is referenced by ledger lines or
	// entries and cannot be deleted.
	ErrReferencedEntity = errors.New("entity is referenced and cannot be deleted")
)

// Period errors.
var (
	// ErrOverlappingPeriod indicates the period's date range intersects an existing period.
	ErrOverlappingPeriod = errors.New("period range overlaps an existing period")

	// ErrInvalidRange indicates startDate > endDate.
	ErrInvalidRange = errors.New("period start date is after end date")

	// ErrAlreadyClosed indicates closePeriod was called on a closed period.
	ErrAlreadyClosed = errors.New("period is already closed")

	// ErrClosedPeriod indicates the target period is closed and rejects the operation.
	ErrClosedPeriod = errors.New("period is closed")
)

// Entry validation errors, surfaced by the ledger validator in check order.
var (
	// ErrInactiveJournal indicates the entry's journal is not active.
	ErrInactiveJournal = errors.New("journal is inactive")

	// ErrDateOutOfPeriod indicates the entry date falls outside the period range.
	ErrDateOutOfPeriod = errors.New("entry date falls outside the period range")

	// ErrNonPostableAccount indicates a line targets a missing or non-leaf account.
	ErrNonPostableAccount = errors.New("account does not accept postings")

	// ErrMixedLine indicates a line carries both a debit and a credit (or neither).
	ErrMixedLine = errors.New("line must carry exactly one of debit or credit")

	// ErrUnbalancedEntry indicates total debits do not equal total credits.
	ErrUnbalancedEntry = errors.New("entry debits and credits do not balance")

	// ErrEmptyEntry indicates the entry carries no monetary movement.
	ErrEmptyEntry = errors.New("entry has no monetary movement")

	// ErrAlreadyValidated indicates a mutation was attempted on a validated entry.
	ErrAlreadyValidated = errors.New("entry is already validated")

	// ErrStaleEntry indicates the entry was modified between being read and
	// being posted; the caller must re-read it and validate again.
	ErrStaleEntry = errors.New("entry changed concurrently")
)

// AppError carries an HTTP-ish status code alongside a message and an optional
// cause. Repositories use it to report infrastructure failures without leaking
// driver errors to callers.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
