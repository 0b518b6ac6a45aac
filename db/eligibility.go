package db

// checkEligibility decides whether a user may take out one more loan. Pure:
// callers gather the counts under the borrow transaction's lock and pass
// them in. The duplicate check wins over the cap check when both fail.
func checkEligibility(activeLoans int64, hasActiveForBook bool, maxActive int) error {
	if hasActiveForBook {
		return ErrDuplicateActiveLoan
	}
	if activeLoans >= int64(maxActive) {
		return ErrLoanLimitReached
	}
	return nil
}
