package repository

import (
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

type RentRepository struct {
	db *gorm.DB
}

func NewRentRepository(db *gorm.DB) *RentRepository {
	return &RentRepository{db: db}
}

func (r *RentRepository) Create(rent *model.Rent) error {
	return r.db.Create(rent).Error
}

func (r *RentRepository) GetByID(id int64) (*model.Rent, error) {
	var rent model.Rent
	err := r.db.Preload("Book").Where("id = ?", id).First(&rent).Error
	if err != nil {
		return nil, err
	}
	return &rent, nil
}

// ListByUser 用户的租借记录，按开始时间倒序
func (r *RentRepository) ListByUser(userID int64) ([]*model.Rent, error) {
	var rents []*model.Rent
	err := r.db.Preload("Book").Where("user_id = ?", userID).
		Order("start_date DESC").Find(&rents).Error
	return rents, err
}
