package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCRUD(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	cat, err := r.CreateCategory(ctx, uuid.NewString(), "Databases", "")
	require.NoError(t, err)

	b, err := r.CreateBook(ctx, uuid.NewString(), CreateBookInput{
		Title:       "Designing Data-Intensive Applications",
		Author:      "Martin Kleppmann",
		ISBN:        "978-1-4493-7332-0",
		CategoryID:  &cat.ID,
		TotalCopies: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, b.StockQuantity, "new copies start on the shelf")

	// Duplicate ISBN rejected.
	_, err = r.CreateBook(ctx, uuid.NewString(), CreateBookInput{
		Title: "x", Author: "y", ISBN: "978-1-4493-7332-0",
	})
	require.ErrorIs(t, err, ErrISBNExists)

	// Patch a couple of fields.
	title := "DDIA"
	copies := 5
	got, err := r.UpdateBook(ctx, b.ID, UpdateBookInput{Title: &title, TotalCopies: &copies})
	require.NoError(t, err)
	assert.Equal(t, "DDIA", got.Title)
	assert.Equal(t, 5, got.TotalCopies)
	assert.Equal(t, 5, got.StockQuantity)
	requireConservation(t, r, b.ID)

	require.NoError(t, r.DeleteBook(ctx, b.ID))
	_, err = r.FindBookByID(ctx, b.ID)
	require.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookShrinkBelowOutstandingLoans(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	u1 := seedUser(t, r, "nina@example.com")
	u2 := seedUser(t, r, "omar@example.com")
	b := seedBook(t, r, "978-0-0000-0020-1", 3)

	_, err := r.BorrowBook(ctx, u1.ID, b.ID)
	require.NoError(t, err)
	_, err = r.BorrowBook(ctx, u2.ID, b.ID)
	require.NoError(t, err)

	// Two copies are out; shrinking to 1 would lose track of one of them.
	one := 1
	_, err = r.UpdateBook(ctx, b.ID, UpdateBookInput{TotalCopies: &one})
	require.ErrorIs(t, err, ErrBooksStillOnLoan)
	requireConservation(t, r, b.ID)

	// Shrinking to exactly the outstanding count leaves the shelf empty.
	two := 2
	got, err := r.UpdateBook(ctx, b.ID, UpdateBookInput{TotalCopies: &two})
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	requireConservation(t, r, b.ID)
}

func TestDeleteBookWithActiveLoans(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	u := seedUser(t, r, "pam@example.com")
	b := seedBook(t, r, "978-0-0000-0021-2", 1)

	loan, err := r.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)

	require.ErrorIs(t, r.DeleteBook(ctx, b.ID), ErrBooksStillOnLoan)

	_, err = r.ReturnLoan(ctx, loan.ID, u.ID, false)
	require.NoError(t, err)
	require.NoError(t, r.DeleteBook(ctx, b.ID))
}

func TestListBooksFilters(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	cat, err := r.CreateCategory(ctx, uuid.NewString(), "Go", "")
	require.NoError(t, err)

	_, err = r.CreateBook(ctx, uuid.NewString(), CreateBookInput{
		Title: "The Go Programming Language", Author: "Donovan", ISBN: "978-0-1341-9044-0",
		CategoryID: &cat.ID, TotalCopies: 2,
	})
	require.NoError(t, err)
	empty, err := r.CreateBook(ctx, uuid.NewString(), CreateBookInput{
		Title: "Go in Action", Author: "Kennedy", ISBN: "978-1-6172-9178-1",
	})
	require.NoError(t, err)

	res, err := r.ListBooks(ctx, BooksQuery{Q: "donovan"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	res, err = r.ListBooks(ctx, BooksQuery{Available: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	assert.NotEqual(t, empty.ID, res.Books[0].ID)

	res, err = r.ListBooks(ctx, BooksQuery{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	res, err = r.ListBooks(ctx, BooksQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
}

func TestCategoryCRUD(t *testing.T) {
	r := testRepo(t, DefaultLoanPolicy())
	ctx := context.Background()

	c1, err := r.CreateCategory(ctx, uuid.NewString(), "History", "past things")
	require.NoError(t, err)

	_, err = r.CreateCategory(ctx, uuid.NewString(), "History", "")
	require.ErrorIs(t, err, ErrCategoryExists)

	got, err := r.UpdateCategory(ctx, c1.ID, "World History", "")
	require.NoError(t, err)
	assert.Equal(t, "World History", got.Name)

	// Deleting a category detaches its books instead of deleting them.
	b, err := r.CreateBook(ctx, uuid.NewString(), CreateBookInput{
		Title: "SPQR", Author: "Mary Beard", ISBN: "978-0-6716-8674-2",
		CategoryID: &c1.ID, TotalCopies: 1,
	})
	require.NoError(t, err)

	require.NoError(t, r.DeleteCategory(ctx, c1.ID))
	kept, err := r.FindBookByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.CategoryID)
}
