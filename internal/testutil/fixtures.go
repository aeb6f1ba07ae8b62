package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

var seq int64

func nextSeq() int64 {
	return atomic.AddInt64(&seq, 1)
}

// TestUser 创建测试用户，默认学生角色
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := nextSeq()
	email := fmt.Sprintf("test_%d_%d@example.com", time.Now().UnixNano(), n)
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d_%d", time.Now().UnixNano()%100000, n),
		Email:        &email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleStudent,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// TestAuthor 创建测试作者
func TestAuthor(t *testing.T, db *gorm.DB, name string) *model.Author {
	t.Helper()

	author := &model.Author{Name: name}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("Failed to create test author: %v", err)
	}
	return author
}

// TestCategory 创建测试分类
func TestCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// TestBook 创建测试图书，默认库存 1、价格 100
func TestBook(t *testing.T, db *gorm.DB, authorID, addedBy int64, opts ...func(*model.Book)) *model.Book {
	t.Helper()

	book := &model.Book{
		Title:    fmt.Sprintf("Test Book %d", nextSeq()),
		AuthorID: authorID,
		Quantity: 1,
		Price:    100.00,
		AddedBy:  addedBy,
	}

	for _, opt := range opts {
		opt(book)
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}

	return book
}

// WithTitle 设置书名
func WithTitle(title string) func(*model.Book) {
	return func(b *model.Book) {
		b.Title = title
	}
}

// WithQuantity 设置库存
func WithQuantity(quantity int) func(*model.Book) {
	return func(b *model.Book) {
		b.Quantity = quantity
	}
}

// WithPrice 设置价格
func WithPrice(price float64) func(*model.Book) {
	return func(b *model.Book) {
		b.Price = price
	}
}

// TestMembershipPlan 创建测试会员套餐
func TestMembershipPlan(t *testing.T, db *gorm.DB, name string, price float64, percentage int) *model.Membership {
	t.Helper()

	plan := &model.Membership{
		Name:                 name,
		PricePerMonth:        price,
		BookAccessPercentage: percentage,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test membership plan: %v", err)
	}
	return plan
}

// TestUserMembership 创建测试用户会员记录，默认从今天起 30 天有效
func TestUserMembership(t *testing.T, db *gorm.DB, userID, membershipID int64, opts ...func(*model.UserMembership)) *model.UserMembership {
	t.Helper()

	now := time.Now()
	um := &model.UserMembership{
		UserID:       userID,
		MembershipID: membershipID,
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, 30),
		Status:       model.UserMembershipActive,
	}

	for _, opt := range opts {
		opt(um)
	}

	if err := db.Create(um).Error; err != nil {
		t.Fatalf("Failed to create test user membership: %v", err)
	}

	return um
}

// WithEndDate 设置到期时间
func WithEndDate(endDate time.Time) func(*model.UserMembership) {
	return func(um *model.UserMembership) {
		um.EndDate = endDate
	}
}

// WithStatus 设置会员状态
func WithStatus(status string) func(*model.UserMembership) {
	return func(um *model.UserMembership) {
		um.Status = status
	}
}

// TestPayment 创建测试支付流水
func TestPayment(t *testing.T, db *gorm.DB, userID int64, amount float64, paymentType string) *model.Payment {
	t.Helper()

	payment := &model.Payment{
		UserID:        userID,
		Amount:        amount,
		PaymentDate:   time.Now(),
		PaymentType:   paymentType,
		PaymentMethod: model.PaymentMethodCard,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}
	return payment
}
