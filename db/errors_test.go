package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("plain error")))
	assert.False(t, isRetryable(nil))

	// Wrapped driver errors are still recognized.
	wrapped := fmt.Errorf("tx failed: %w", &pgconn.PgError{Code: "40P01"})
	assert.True(t, isRetryable(wrapped))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isUniqueViolation(errors.New("nope")))
}

// Business errors never classify as retryable.
func TestBusinessErrorsAreTerminal(t *testing.T) {
	for _, err := range []error{
		ErrOutOfStock, ErrDuplicateActiveLoan, ErrLoanLimitReached,
		ErrAlreadyReturned, ErrInvariantViolation,
	} {
		assert.False(t, isRetryable(err), "%v", err)
	}
}
