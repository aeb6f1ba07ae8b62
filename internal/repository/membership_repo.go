package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

// MembershipRepository 会员套餐与用户会员记录
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// ---------- Membership 套餐 ----------

func (r *MembershipRepository) Create(membership *model.Membership) error {
	return r.db.Create(membership).Error
}

func (r *MembershipRepository) GetByID(id int64) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.Where("id = ?", id).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepository) List() ([]*model.Membership, error) {
	var memberships []*model.Membership
	err := r.db.Order("price_per_month ASC").Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) Update(membership *model.Membership) error {
	return r.db.Save(membership).Error
}

func (r *MembershipRepository) Delete(id int64) error {
	return r.db.Delete(&model.Membership{}, id).Error
}

func (r *MembershipRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Membership{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// CountActiveReferences 套餐被活跃用户会员引用的数量，改价前校验
func (r *MembershipRepository) CountActiveReferences(membershipID int64, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserMembership{}).
		Where("membership_id = ? AND status = ? AND end_date > ?", membershipID, model.UserMembershipActive, now).
		Count(&count).Error
	return count, err
}

// ---------- UserMembership 用户会员 ----------

// GetByUserID 用户会员记录，以 user_id 为唯一键
func (r *MembershipRepository) GetByUserID(userID int64) (*model.UserMembership, error) {
	var um model.UserMembership
	err := r.db.Preload("Membership").Where("user_id = ?", userID).First(&um).Error
	if err != nil {
		return nil, err
	}
	return &um, nil
}

func (r *MembershipRepository) CreateUserMembership(um *model.UserMembership) error {
	return r.db.Create(um).Error
}

func (r *MembershipRepository) UpdateUserMembership(um *model.UserMembership) error {
	return r.db.Save(um).Error
}

// MarkExpired 将已到期但仍标记 active 的记录置为 expired，返回处理行数
func (r *MembershipRepository) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.UserMembership{}).
		Where("status = ? AND end_date <= ?", model.UserMembershipActive, now).
		Update("status", model.UserMembershipExpired)
	return result.RowsAffected, result.Error
}
