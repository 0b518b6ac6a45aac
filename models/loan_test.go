package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoanIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name    string
		status  string
		dueDate time.Time
		want    bool
	}{
		{"due yesterday, active", LoanActive, now.Add(-day), true},
		{"due a week ago, active", LoanActive, now.Add(-7 * day), true},
		{"due today, active", LoanActive, now, false},
		{"due today earlier hour, active", LoanActive, now.Add(-3 * time.Hour), false},
		{"due tomorrow, active", LoanActive, now.Add(day), false},
		{"due yesterday, returned", LoanReturned, now.Add(-day), false},
		{"due a year ago, returned", LoanReturned, now.AddDate(-1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Loan{Status: tt.status, DueDate: tt.dueDate}
			assert.Equal(t, tt.want, l.IsOverdue(now))
		})
	}
}
