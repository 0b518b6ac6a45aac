package db

import (
	"log"

	"libstack/models"

	"gorm.io/gorm"
)

// Inventory ledger. Both operations are single conditional UPDATEs so the
// test and the mutation cannot be split by a concurrent writer, and both run
// inside the caller's transaction so a later failure rolls them back.

// reserveCopy takes one copy off the shelf. Returns ErrOutOfStock when no
// copy is available; the row is left untouched in that case.
func reserveCopy(tx *gorm.DB, bookID string) error {
	res := tx.Model(&models.Book{}).
		Where("id = ? AND stock_quantity > 0", bookID).
		Update("stock_quantity", gorm.Expr("stock_quantity - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOutOfStock
	}
	return nil
}

// releaseCopy puts one copy back. A release that would push stock above
// total_copies means a reservation was never taken for it; that is a bug,
// not a business error.
func releaseCopy(tx *gorm.DB, bookID string) error {
	res := tx.Model(&models.Book{}).
		Where("id = ? AND stock_quantity < total_copies", bookID).
		Update("stock_quantity", gorm.Expr("stock_quantity + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("[INVARIANT] release without outstanding reservation, book=%s", bookID)
		return ErrInvariantViolation
	}
	return nil
}
