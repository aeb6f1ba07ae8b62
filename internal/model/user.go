package model

import (
	"time"
)

// 用户角色
const (
	RoleLibrarian = "librarian"
	RoleStudent   = "student"
)

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:student;index" json:"role"` // librarian, student
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsLibrarian 是否为图书管理员
func (u *User) IsLibrarian() bool {
	return u.Role == RoleLibrarian
}

// IsStudent 是否为学生
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
