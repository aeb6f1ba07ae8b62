package model

import (
	"time"
)

// Rent 租借记录，只开放阅读权限，不减库存；到期时间由租期推算，不入库
type Rent struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	BookID    int64     `gorm:"not null;index" json:"book_id"`
	Book      *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	RentalFee float64   `gorm:"type:decimal(10,2);not null" json:"rental_fee"`
	PaymentID *int64    `json:"payment_id,omitempty"`
	Payment   *Payment  `gorm:"foreignKey:PaymentID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Rent) TableName() string {
	return "rents"
}

// Purchase 购买记录，始终同时携带配送地址与支付引用
type Purchase struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"not null;index" json:"user_id"`
	BookID          int64     `gorm:"not null;index" json:"book_id"`
	Book            *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	PurchaseDate    time.Time `gorm:"not null" json:"purchase_date"`
	DeliveryAddress string    `gorm:"type:text;not null" json:"delivery_address"`
	PurchasePrice   float64   `gorm:"type:decimal(10,2);not null" json:"purchase_price"`
	PaymentID       *int64    `json:"payment_id,omitempty"`
	Payment         *Payment  `gorm:"foreignKey:PaymentID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// IssuedBook 馆员借出记录，借出减库存，归还加回
type IssuedBook struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	BookID     int64      `gorm:"not null;index" json:"book_id"`
	Book       *Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IssueDate  time.Time  `gorm:"not null" json:"issue_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (IssuedBook) TableName() string {
	return "issued_books"
}

// IsReturned return_date 非空即视为已归还
func (i *IssuedBook) IsReturned() bool {
	return i.ReturnDate != nil
}
