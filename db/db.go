package db

import (
	"fmt"
	"log"
	"os"

	"libstack/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Book{}, &models.Loan{}); err != nil {
		return err
	}

	// Stock can never go negative or above the copies we own. The ledger
	// already guards both in SQL; these are the backstop.
	if err := db.Exec(fmt.Sprintf(`
	  ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s_stock_bounds;
	`, models.BookTable, models.BookTable)).Error; err != nil {
		return err
	}
	if err := db.Exec(fmt.Sprintf(`
	  ALTER TABLE %s ADD CONSTRAINT %s_stock_bounds
	  CHECK (stock_quantity >= 0 AND stock_quantity <= total_copies);
	`, models.BookTable, models.BookTable)).Error; err != nil {
		return err
	}

	// At most one ACTIVE loan per (user, book).
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_active_per_user_book
	  ON %s (user_id, book_id)
	  WHERE status = 'ACTIVE';
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	// Overdue scans walk active loans by due date.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_active_due_date
	  ON %s (due_date)
	  WHERE status = 'ACTIVE';
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	return nil
}
