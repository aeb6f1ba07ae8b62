package model

import (
	"time"
)

// 固定的会员等级
const (
	MembershipGold     = "GOLD"
	MembershipPlatinum = "PLATINUM"
	MembershipDiamond  = "DIAMOND"
)

// MembershipNames 允许的会员等级集合
var MembershipNames = map[string]bool{
	MembershipGold:     true,
	MembershipPlatinum: true,
	MembershipDiamond:  true,
}

// Membership 会员套餐，被活跃的 UserMembership 引用时不可修改
type Membership struct {
	ID                   int64     `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"size:20;uniqueIndex;not null" json:"name"` // GOLD, PLATINUM, DIAMOND
	PricePerMonth        float64   `gorm:"type:decimal(10,2);not null" json:"price_per_month"`
	BookAccessPercentage int       `gorm:"not null" json:"book_access_percentage"` // 0-100
	CreatedAt            time.Time `json:"created_at"`
}

func (Membership) TableName() string {
	return "memberships"
}

// 用户会员状态
const (
	UserMembershipActive  = "active"
	UserMembershipExpired = "expired"
)

// UserMembership 每个用户至多一条记录（user_id 唯一），重复订阅覆盖而非叠加
type UserMembership struct {
	ID           int64       `gorm:"primaryKey" json:"id"`
	UserID       int64       `gorm:"not null;uniqueIndex" json:"user_id"`
	MembershipID int64       `gorm:"not null;index" json:"membership_id"`
	Membership   *Membership `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
	StartDate    time.Time   `gorm:"not null" json:"start_date"`
	EndDate      time.Time   `gorm:"not null;index" json:"end_date"`
	Status       string      `gorm:"size:20;default:active;index" json:"status"` // active, expired
	PaymentID    *int64      `json:"payment_id,omitempty"`
	Payment      *Payment    `gorm:"foreignKey:PaymentID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (UserMembership) TableName() string {
	return "user_memberships"
}

// IsActive 当前时间是否在有效期内
func (m *UserMembership) IsActive(now time.Time) bool {
	return m.Status == UserMembershipActive && now.Before(m.EndDate)
}
