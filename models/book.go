package models

import "time"

const BookTable = "lib_books"

// Book is a catalog title. TotalCopies is the number of physical copies the
// library owns; StockQuantity is how many of them are on the shelf right now.
// Conservation: StockQuantity + open loans == TotalCopies, always.
type Book struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string  `gorm:"size:300;not null;index" json:"title"`
	Author      string  `gorm:"size:200;not null;index" json:"author"`
	ISBN        string  `gorm:"uniqueIndex;size:32;not null" json:"isbn"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	CoverURL    string  `gorm:"size:500" json:"coverUrl,omitempty"`
	CategoryID  *string `gorm:"type:uuid;index" json:"categoryId,omitempty"`

	TotalCopies   int `gorm:"not null;default:0" json:"totalCopies"`
	StockQuantity int `gorm:"not null;default:0" json:"stockQuantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }

func (b *Book) Available() bool { return b.StockQuantity > 0 }
