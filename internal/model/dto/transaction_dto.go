package dto

// RentRequest 租借请求
type RentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// RentItem 租借项，end_date 由租期推算
type RentItem struct {
	ID        int64   `json:"id"`
	BookID    int64   `json:"book_id"`
	BookTitle string  `json:"book_title"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	RentalFee float64 `json:"rental_fee"`
	PaymentID *int64  `json:"payment_id,omitempty"`
}

// PurchaseRequest 购买请求
type PurchaseRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

// PurchaseItem 购买项
type PurchaseItem struct {
	ID              int64   `json:"id"`
	BookID          int64   `json:"book_id"`
	BookTitle       string  `json:"book_title"`
	PurchaseDate    string  `json:"purchase_date"`
	DeliveryAddress string  `json:"delivery_address"`
	PurchasePrice   float64 `json:"purchase_price"`
	PaymentID       *int64  `json:"payment_id,omitempty"`
}

// IssueRequest 借出请求（馆员）
type IssueRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
	UserID int64 `json:"user_id" binding:"required"`
}

// IssuedBookItem 借出记录项
type IssuedBookItem struct {
	ID         int64  `json:"id"`
	BookID     int64  `json:"book_id"`
	BookTitle  string `json:"book_title"`
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	IssueDate  string `json:"issue_date"`
	ReturnDate string `json:"return_date,omitempty"`
	IsReturned bool   `json:"is_returned"`
}

// PaymentItem 支付流水项
type PaymentItem struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	PaymentType   string  `json:"payment_type"`
	PaymentMethod string  `json:"payment_method"`
}
