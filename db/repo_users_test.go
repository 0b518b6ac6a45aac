package db

import (
	"context"
	"testing"

	"libstack/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateUser(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	u, err := r.FindOrCreateUser(ctx, "Quinn@Example.COM", "Quinn", uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, "quinn@example.com", u.Email, "emails are normalized")
	assert.Equal(t, models.RoleUser, u.Role)

	// Second login finds the same account, ignoring the proposed id.
	again, err := r.FindOrCreateUser(ctx, "quinn@example.com", "", uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestSetUserRoleAndListUsers(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	u := seedUser(t, r, "ruth@example.com")
	seedUser(t, r, "sam@example.com")

	promoted, err := r.SetUserRole(ctx, u.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	n, err := r.CountAdmins(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	res, err := r.ListUsers(ctx, "ruth", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	res, err = r.ListUsers(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)

	_, err = r.SetUserRole(ctx, uuid.NewString(), models.RoleUser)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserBlockedByActiveLoans(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	u := seedUser(t, r, "tess@example.com")
	b := seedBook(t, r, "978-0-0000-0030-1", 1)

	loan, err := r.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)

	require.ErrorIs(t, r.DeleteUserByID(ctx, u.ID), ErrBooksStillOnLoan)

	_, err = r.ReturnLoan(ctx, loan.ID, u.ID, false)
	require.NoError(t, err)
	require.NoError(t, r.DeleteUserByID(ctx, u.ID))
	_, err = r.FindUserByID(ctx, u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
