package model

import (
	"time"
)

// 支付类型
const (
	PaymentTypeMembership = "membership"
	PaymentTypePurchase   = "purchase"
	PaymentTypeRent       = "rent"
)

// 支付方式
const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
)

// ValidPaymentMethod 校验支付方式
func ValidPaymentMethod(method string) bool {
	return method == PaymentMethodCard || method == PaymentMethodUPI
}

// Payment 只增不改的支付流水，其他记录引用它而非拥有它
type Payment struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   time.Time `gorm:"not null" json:"payment_date"`
	PaymentType   string    `gorm:"size:20;not null;index" json:"payment_type"` // membership, purchase, rent
	PaymentMethod string    `gorm:"size:20;not null" json:"payment_method"`     // card, upi
	CreatedAt     time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
