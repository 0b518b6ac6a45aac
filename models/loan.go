package models

import "time"

const LoanTable = "lib_loans"

const (
	LoanActive   = "ACTIVE"
	LoanReturned = "RETURNED"
)

// Loan records one copy of a book borrowed by one user. A loan is created
// ACTIVE by a successful borrow, flips to RETURNED exactly once, and is
// never deleted.
type Loan struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`
	BookID string `gorm:"type:uuid;index;not null" json:"bookId"`

	BorrowedAt time.Time  `gorm:"index;not null" json:"borrowedAt"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	ReturnedAt *time.Time `gorm:"index" json:"returnedAt,omitempty"`
	Status     string     `gorm:"size:16;not null;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Loan) TableName() string { return LoanTable }

// IsOverdue is computed on read, never stored. A loan counts as overdue
// starting the day after its due date, and only while it is still active.
func (l *Loan) IsOverdue(now time.Time) bool {
	if l.Status != LoanActive {
		return false
	}
	today := now.UTC().Truncate(24 * time.Hour)
	due := l.DueDate.UTC().Truncate(24 * time.Hour)
	return today.After(due)
}
