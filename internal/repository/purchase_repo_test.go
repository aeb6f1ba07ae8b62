package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/testutil"
)

func purchaseFixtures(t *testing.T, db *gorm.DB, quantity int) (*model.User, *model.Book) {
	t.Helper()

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Purchase Author")
	student := testutil.TestUser(t, db)
	book := testutil.TestBook(t, db, author.ID, librarian.ID,
		testutil.WithPrice(150), testutil.WithQuantity(quantity))
	return student, book
}

func newPurchasePair(student *model.User, book *model.Book) (*model.Purchase, *model.Payment) {
	now := time.Now()
	payment := &model.Payment{
		UserID:        student.ID,
		Amount:        book.Price,
		PaymentDate:   now,
		PaymentType:   model.PaymentTypePurchase,
		PaymentMethod: model.PaymentMethodCard,
	}
	purchase := &model.Purchase{
		UserID:          student.ID,
		BookID:          book.ID,
		PurchaseDate:    now,
		DeliveryAddress: "somewhere",
		PurchasePrice:   book.Price,
	}
	return purchase, payment
}

func TestPurchaseRepository_CreateWithPayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPurchaseRepository(db)
	student, book := purchaseFixtures(t, db, 2)

	purchase, payment := newPurchasePair(student, book)
	require.NoError(t, repo.CreateWithPayment(purchase, payment))

	require.NotNil(t, purchase.PaymentID)
	assert.Equal(t, payment.ID, *purchase.PaymentID)

	var reloaded model.Book
	require.NoError(t, db.First(&reloaded, book.ID).Error)
	assert.Equal(t, 1, reloaded.Quantity)
}

func TestPurchaseRepository_CreateWithPaymentOutOfStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPurchaseRepository(db)
	student, book := purchaseFixtures(t, db, 0)

	purchase, payment := newPurchasePair(student, book)
	assert.ErrorIs(t, repo.CreateWithPayment(purchase, payment), ErrOutOfStock)

	// 库存不足不留下任何流水或购买记录
	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&model.Purchase{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPurchaseRepository_CreateWithPaymentRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPurchaseRepository(db)
	student, book := purchaseFixtures(t, db, 2)

	// 人为让最后一步写入失败，验证扣减和流水一并回滚
	require.NoError(t, db.Migrator().DropTable(&model.Purchase{}))

	purchase, payment := newPurchasePair(student, book)
	assert.Error(t, repo.CreateWithPayment(purchase, payment))

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var reloaded model.Book
	require.NoError(t, db.First(&reloaded, book.ID).Error)
	assert.Equal(t, 2, reloaded.Quantity)
}
