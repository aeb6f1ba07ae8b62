package repository

import (
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

// PaymentRepository 支付流水，只写入和查询，不更新不删除
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByUser 用户自己的流水，按时间倒序分页
func (r *PaymentRepository) ListByUser(userID int64, page, pageSize int) ([]*model.Payment, int64, error) {
	var total int64
	var payments []*model.Payment

	query := r.db.Model(&model.Payment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("payment_date DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	return payments, total, err
}

// ListAll 全部流水（馆员台账）
func (r *PaymentRepository) ListAll(page, pageSize int) ([]*model.Payment, int64, error) {
	var total int64
	var payments []*model.Payment

	query := r.db.Model(&model.Payment{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("payment_date DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	return payments, total, err
}
