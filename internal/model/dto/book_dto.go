package dto

// CreateBookRequest 创建图书请求，不传 ISBN 时自动生成
type CreateBookRequest struct {
	Title       string  `json:"title" binding:"required,max=150"`
	AuthorID    int64   `json:"author_id" binding:"required"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	LanguageID  *int64  `json:"language_id,omitempty"`
	ISBNCode    string  `json:"isbn_code,omitempty"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// UpdateBookRequest 更新图书请求
type UpdateBookRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=150"`
	AuthorID    *int64   `json:"author_id,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty" binding:"omitempty,min=0"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
}

// BookItem 图书项
type BookItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category,omitempty"`
	Language    string  `json:"language,omitempty"`
	ISBN        string  `json:"isbn,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// AvailableBooksResponse 学生可见的目录划分：会员免费可读 + 需租借
type AvailableBooksResponse struct {
	AccessibleCount int         `json:"accessible_count"`
	Accessible      []*BookItem `json:"accessible"`
	RentRequired    []*BookItem `json:"rent_required"`
}
