package model

import (
	"time"
)

// Book (title, author) 组合唯一；quantity 只能通过条件更新递减，不允许为负
type Book struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null;uniqueIndex:idx_books_title_author" json:"title"`
	AuthorID    int64     `gorm:"not null;uniqueIndex:idx_books_title_author;index" json:"author_id"`
	Author      *Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID  *int64    `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	LanguageID  *int64    `json:"language_id,omitempty"`
	Language    *Language `gorm:"foreignKey:LanguageID;constraint:OnDelete:SET NULL" json:"language,omitempty"`
	ISBNID      *int64    `gorm:"column:isbn_id" json:"isbn_id,omitempty"`
	ISBN        *ISBN     `gorm:"foreignKey:ISBNID;constraint:OnDelete:SET NULL" json:"isbn,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	AddedBy     int64     `gorm:"not null" json:"added_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
