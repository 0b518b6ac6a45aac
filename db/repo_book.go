package db

import (
	"context"
	"strings"

	"libstack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBookInput struct {
	Title       string
	Author      string
	ISBN        string
	Description string
	CoverURL    string
	CategoryID  *string
	TotalCopies int
}

func (r *Repo) CreateBook(ctx context.Context, id string, in CreateBookInput) (*models.Book, error) {
	if in.CategoryID != nil {
		if _, err := r.FindCategoryByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if in.TotalCopies < 0 {
		in.TotalCopies = 0
	}
	b := &models.Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		ISBN:          in.ISBN,
		Description:   in.Description,
		CoverURL:      in.CoverURL,
		CategoryID:    in.CategoryID,
		TotalCopies:   in.TotalCopies,
		StockQuantity: in.TotalCopies, // new copies all start on the shelf
	}
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrISBNExists
		}
		return nil, err
	}
	return b, nil
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrBookNotFound)
	}
	return &b, nil
}

type UpdateBookInput struct {
	Title       *string
	Author      *string
	ISBN        *string
	Description *string
	CoverURL    *string
	CategoryID  *string
	TotalCopies *int
}

// UpdateBook patches catalog fields. Changing TotalCopies adjusts the shelf
// stock by the same delta; shrinking below the number of copies currently
// out on loan is rejected so conservation keeps holding.
func (r *Repo) UpdateBook(ctx context.Context, id string, in UpdateBookInput) (*models.Book, error) {
	var out *models.Book
	err := r.withRetry(ctx, func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error; err != nil {
			return notFound(err, ErrBookNotFound)
		}

		if in.Title != nil {
			b.Title = *in.Title
		}
		if in.Author != nil {
			b.Author = *in.Author
		}
		if in.ISBN != nil {
			b.ISBN = *in.ISBN
		}
		if in.Description != nil {
			b.Description = *in.Description
		}
		if in.CoverURL != nil {
			b.CoverURL = *in.CoverURL
		}
		if in.CategoryID != nil {
			if *in.CategoryID == "" {
				b.CategoryID = nil
			} else {
				var c models.Category
				if err := tx.First(&c, "id = ?", *in.CategoryID).Error; err != nil {
					return notFound(err, ErrCategoryNotFound)
				}
				b.CategoryID = in.CategoryID
			}
		}
		if in.TotalCopies != nil {
			onLoan := b.TotalCopies - b.StockQuantity
			if *in.TotalCopies < onLoan {
				return ErrBooksStillOnLoan
			}
			b.StockQuantity += *in.TotalCopies - b.TotalCopies
			b.TotalCopies = *in.TotalCopies
		}

		if err := tx.Save(&b).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrISBNExists
			}
			return err
		}
		out = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBook refuses while copies are out on loan; returned loan history
// survives the book row (no FK cascade on loans).
func (r *Repo) DeleteBook(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Loan{}).
			Where("book_id = ? AND status = ?", id, models.LoanActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrBooksStillOnLoan
		}
		res := tx.Delete(&models.Book{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookNotFound
		}
		return nil
	})
}

type BooksQuery struct {
	Q          string // matches title/author/isbn
	CategoryID string
	Available  bool // only books with stock on the shelf
	Page       int
	Size       int
}

type PagedBooks struct {
	Total int64         `json:"total"`
	Books []models.Book `json:"books"`
}

func (r *Repo) ListBooks(ctx context.Context, q BooksQuery) (*PagedBooks, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Book{})
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(isbn) LIKE ?", like, like, like)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.Available {
		tx = tx.Where("stock_quantity > 0")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var books []models.Book
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return &PagedBooks{Total: total, Books: books}, nil
}
