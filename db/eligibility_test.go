package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name      string
		active    int64
		duplicate bool
		max       int
		want      error
	}{
		{"no loans", 0, false, 5, nil},
		{"under the cap", 4, false, 5, nil},
		{"at the cap", 5, false, 5, ErrLoanLimitReached},
		{"over the cap", 6, false, 5, ErrLoanLimitReached},
		{"duplicate", 1, true, 5, ErrDuplicateActiveLoan},
		{"duplicate reported before cap", 5, true, 5, ErrDuplicateActiveLoan},
		{"cap of one", 1, false, 1, ErrLoanLimitReached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkEligibility(tt.active, tt.duplicate, tt.max)
			if tt.want == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}
