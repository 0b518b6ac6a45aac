package db

import (
	"context"
	"fmt"
	"time"

	"libstack/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxTxAttempts = 3

// withRetry replays the whole transaction on serialization failures and
// deadlocks, a bounded number of times. Business errors pass through
// untouched; an exhausted retry budget surfaces as ErrTransient.
func (r *Repo) withRetry(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.DB.WithContext(ctx).Transaction(fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
	}
	return fmt.Errorf("%w: %v", ErrTransient, err)
}

// BorrowBook takes one copy of a book out on loan: lock the book row, check
// eligibility, reserve a copy, create the ACTIVE loan. One transaction, so a
// failed insert rolls the reservation back with it.
func (r *Repo) BorrowBook(ctx context.Context, userID, bookID string) (*models.Loan, error) {
	var loan *models.Loan
	err := r.withRetry(ctx, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return notFound(err, ErrUserNotFound)
		}

		// The row lock serializes concurrent borrows of the same book;
		// different books never contend.
		var book models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "id = ?", bookID).Error; err != nil {
			return notFound(err, ErrBookNotFound)
		}

		var dup int64
		if err := tx.Model(&models.Loan{}).
			Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, models.LoanActive).
			Count(&dup).Error; err != nil {
			return err
		}
		var active int64
		if err := tx.Model(&models.Loan{}).
			Where("user_id = ? AND status = ?", userID, models.LoanActive).
			Count(&active).Error; err != nil {
			return err
		}
		if err := checkEligibility(active, dup > 0, r.Policy.MaxActiveLoans); err != nil {
			return err
		}

		if err := reserveCopy(tx, bookID); err != nil {
			return err
		}

		now := time.Now().UTC()
		l := &models.Loan{
			ID:         uuid.NewString(),
			UserID:     userID,
			BookID:     bookID,
			BorrowedAt: now,
			DueDate:    now.AddDate(0, 0, r.Policy.LoanPeriodDays),
			Status:     models.LoanActive,
		}
		if err := tx.Create(l).Error; err != nil {
			// Partial unique index backstop for the duplicate check.
			if isUniqueViolation(err) {
				return ErrDuplicateActiveLoan
			}
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ReturnLoan flips a loan ACTIVE -> RETURNED and puts the copy back on the
// shelf, atomically. Non-admin actors may only return their own loans; pass
// an empty actorID to skip the ownership check (internal callers).
func (r *Repo) ReturnLoan(ctx context.Context, loanID, actorID string, actorIsAdmin bool) (*models.Loan, error) {
	var loan models.Loan
	err := r.withRetry(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&loan, "id = ?", loanID).Error; err != nil {
			return notFound(err, ErrLoanNotFound)
		}
		if actorID != "" && !actorIsAdmin && loan.UserID != actorID {
			return ErrForbidden
		}
		if loan.Status != models.LoanActive {
			return ErrAlreadyReturned
		}

		now := time.Now().UTC()
		loan.Status = models.LoanReturned
		loan.ReturnedAt = &now
		if err := tx.Save(&loan).Error; err != nil {
			return err
		}
		return releaseCopy(tx, loan.BookID)
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// LoanRow is a loan joined with its book and borrower for list endpoints.
// Overdue is derived at read time by the same rule as Loan.IsOverdue.
type LoanRow struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	UserName     string     `json:"userName"`
	BookID       string     `json:"bookId"`
	BookTitle    string     `json:"bookTitle"`
	BookAuthor   string     `json:"bookAuthor"`
	BookCoverURL string     `json:"bookCoverUrl,omitempty"`
	BorrowedAt   time.Time  `json:"borrowedAt"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnedAt   *time.Time `json:"returnedAt,omitempty"`
	Status       string     `json:"status"`
	Overdue      bool       `json:"overdue"`
}

func markOverdue(rows []LoanRow, now time.Time) {
	for i := range rows {
		l := models.Loan{Status: rows[i].Status, DueDate: rows[i].DueDate}
		rows[i].Overdue = l.IsOverdue(now)
	}
}

func (r *Repo) loanRowQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table(models.LoanTable+" l").
		Select(`
			l.id, l.user_id, l.book_id, l.borrowed_at, l.due_date, l.returned_at, l.status,
			u.name      AS user_name,
			b.title     AS book_title,
			b.author    AS book_author,
			b.cover_url AS book_cover_url
		`).
		Joins("JOIN "+models.UserTable+" u ON u.id = l.user_id").
		Joins("JOIN "+models.BookTable+" b ON b.id = l.book_id")
}

// ListActiveLoans returns the user's open loans, newest first.
func (r *Repo) ListActiveLoans(ctx context.Context, userID string) ([]LoanRow, error) {
	var rows []LoanRow
	if err := r.loanRowQuery(ctx).
		Where("l.user_id = ? AND l.status = ?", userID, models.LoanActive).
		Order("l.borrowed_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	markOverdue(rows, time.Now())
	return rows, nil
}

func (r *Repo) CountActiveLoans(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Loan{}).
		Where("user_id = ? AND status = ?", userID, models.LoanActive).
		Count(&n).Error
	return n, err
}

type PagedLoans struct {
	Total int64     `json:"total"`
	Loans []LoanRow `json:"loans"`
}

// ListLoansByUser is the paged borrow history, open and returned alike.
func (r *Repo) ListLoansByUser(ctx context.Context, userID string, page, size int) (*PagedLoans, error) {
	return r.pagedLoans(ctx, page, size, "l.user_id = ?", userID)
}

// ListAllLoans is the admin view over every loan.
func (r *Repo) ListAllLoans(ctx context.Context, page, size int) (*PagedLoans, error) {
	return r.pagedLoans(ctx, page, size, "")
}

func (r *Repo) pagedLoans(ctx context.Context, page, size int, cond string, args ...interface{}) (*PagedLoans, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	count := r.DB.WithContext(ctx).Table(models.LoanTable + " l")
	qry := r.loanRowQuery(ctx)
	if cond != "" {
		count = count.Where(cond, args...)
		qry = qry.Where(cond, args...)
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []LoanRow
	if err := qry.
		Order("l.borrowed_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	markOverdue(rows, time.Now())
	return &PagedLoans{Total: total, Loans: rows}, nil
}

// ListOverdueLoans returns active loans whose due date has passed.
func (r *Repo) ListOverdueLoans(ctx context.Context) ([]LoanRow, error) {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	var rows []LoanRow
	if err := r.loanRowQuery(ctx).
		Where("l.status = ? AND l.due_date < ?", models.LoanActive, today).
		Order("l.due_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	markOverdue(rows, now)
	return rows, nil
}
