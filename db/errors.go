package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Business failures. Controllers branch on these with errors.Is; the
// transaction that produced one has been rolled back in full.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBookNotFound     = errors.New("book not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrDuplicateActiveLoan = errors.New("user already has an active loan for this book")
	ErrLoanLimitReached    = errors.New("user has reached the maximum number of active loans")
	ErrOutOfStock          = errors.New("book is not available for borrowing")
	ErrAlreadyReturned     = errors.New("loan is already returned")
	ErrForbidden           = errors.New("loan belongs to another user")

	ErrBooksStillOnLoan = errors.New("book has active loans")
	ErrCategoryExists   = errors.New("category with this name already exists")
	ErrISBNExists       = errors.New("book with this ISBN already exists")

	// ErrTransient: the whole transaction conflicted with a concurrent one
	// and retries were exhausted. Safe for the caller to retry.
	ErrTransient = errors.New("transient conflict, retry the request")

	// ErrInvariantViolation means stock accounting went wrong. Never
	// retried, never absorbed.
	ErrInvariantViolation = errors.New("inventory invariant violation")
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isRetryable reports whether the failed transaction may be replayed as a
// whole: serialization failures and deadlocks only.
func isRetryable(err error) bool {
	code := pgCode(err)
	return code == pgSerializationFailure || code == pgDeadlockDetected
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
