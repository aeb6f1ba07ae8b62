package repository

import (
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// CreateWithPayment 购买：条件扣减库存、写支付流水、写购买记录在同一事务内，
// 任何一步失败整体回滚。UPDATE ... WHERE quantity > 0 未命中即库存不足
func (r *PurchaseRepository) CreateWithPayment(purchase *model.Purchase, payment *model.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Book{}).
			Where("id = ? AND quantity > 0", purchase.BookID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOutOfStock
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		purchase.PaymentID = &payment.ID
		return tx.Create(purchase).Error
	})
}

// ListByUser 用户的购买记录，按时间倒序
func (r *PurchaseRepository) ListByUser(userID int64) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.Preload("Book").Where("user_id = ?", userID).
		Order("purchase_date DESC").Find(&purchases).Error
	return purchases, err
}
