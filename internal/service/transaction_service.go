package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/config"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/pubsub"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
)

var (
	ErrNotStudent    = errors.New("只能借给学生账号")
	ErrIssueNotFound = errors.New("借出记录不存在")
)

// TransactionService 租借、购买、借出归还与支付流水。
// 购买和借出扣减库存，租借只开放阅读权限不动库存。
type TransactionService struct {
	bookRepo     *repository.BookRepository
	rentRepo     *repository.RentRepository
	purchaseRepo *repository.PurchaseRepository
	issuedRepo   *repository.IssuedBookRepository
	paymentRepo  *repository.PaymentRepository
	userRepo     *repository.UserRepository
	publisher    *pubsub.Publisher
	access       *AccessService
	cfg          *config.Config
}

func NewTransactionService(
	bookRepo *repository.BookRepository,
	rentRepo *repository.RentRepository,
	purchaseRepo *repository.PurchaseRepository,
	issuedRepo *repository.IssuedBookRepository,
	paymentRepo *repository.PaymentRepository,
	userRepo *repository.UserRepository,
	publisher *pubsub.Publisher,
	access *AccessService,
	cfg *config.Config,
) *TransactionService {
	return &TransactionService{
		bookRepo:     bookRepo,
		rentRepo:     rentRepo,
		purchaseRepo: purchaseRepo,
		issuedRepo:   issuedRepo,
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		access:       access,
		cfg:          cfg,
	}
}

// Rent 学生租借图书，租金按书价比例计，先落支付流水再落租借记录
func (s *TransactionService) Rent(userID, bookID int64, paymentMethod string) (*dto.RentItem, error) {
	if !model.ValidPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	now := time.Now()
	fee := roundMoney(book.Price * s.cfg.Rent.FeeRate)

	payment := &model.Payment{
		UserID:        userID,
		Amount:        fee,
		PaymentDate:   now,
		PaymentType:   model.PaymentTypeRent,
		PaymentMethod: paymentMethod,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	rent := &model.Rent{
		UserID:    userID,
		BookID:    bookID,
		StartDate: now,
		RentalFee: fee,
		PaymentID: &payment.ID,
	}
	if err := s.rentRepo.Create(rent); err != nil {
		return nil, err
	}

	s.publishPayment(payment, bookID)
	log.Printf("book rented: user=%d book=%d fee=%.2f", userID, bookID, fee)

	rent.Book = book
	return s.buildRentItem(rent), nil
}

// Purchase 学生购买图书：扣库存、支付流水、购买记录在同一事务内落库，
// 库存不足或任何一步失败都不留任何痕迹
func (s *TransactionService) Purchase(userID, bookID int64, paymentMethod, deliveryAddress string) (*dto.PurchaseItem, error) {
	if !model.ValidPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	now := time.Now()
	payment := &model.Payment{
		UserID:        userID,
		Amount:        book.Price,
		PaymentDate:   now,
		PaymentType:   model.PaymentTypePurchase,
		PaymentMethod: paymentMethod,
	}
	purchase := &model.Purchase{
		UserID:          userID,
		BookID:          bookID,
		PurchaseDate:    now,
		DeliveryAddress: deliveryAddress,
		PurchasePrice:   book.Price,
	}
	if err := s.purchaseRepo.CreateWithPayment(purchase, payment); err != nil {
		return nil, err
	}

	s.access.InvalidateCatalog(context.Background())
	s.publishPayment(payment, bookID)
	log.Printf("book purchased: user=%d book=%d price=%.2f", userID, bookID, book.Price)

	purchase.Book = book
	return buildPurchaseItem(purchase), nil
}

// Issue 馆员借出图书给学生，扣库存与写记录在同一事务里完成
func (s *TransactionService) Issue(bookID, userID int64) (*dto.IssuedBookItem, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsStudent() {
		return nil, ErrNotStudent
	}

	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	issued, err := s.issuedRepo.Issue(bookID, userID, time.Now())
	if err != nil {
		return nil, err
	}

	s.access.InvalidateCatalog(context.Background())
	log.Printf("book issued: book=%d user=%d record=%d", bookID, userID, issued.ID)

	full, err := s.issuedRepo.GetByID(issued.ID)
	if err != nil {
		return nil, err
	}
	return buildIssuedBookItem(full), nil
}

// Return 归还借出的图书并加回库存，重复归还会被拒绝
func (s *TransactionService) Return(issuedID int64) (*dto.IssuedBookItem, error) {
	issued, err := s.issuedRepo.Return(issuedID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	s.access.InvalidateCatalog(context.Background())
	log.Printf("book returned: record=%d book=%d", issued.ID, issued.BookID)

	full, err := s.issuedRepo.GetByID(issued.ID)
	if err != nil {
		return nil, err
	}
	return buildIssuedBookItem(full), nil
}

// ListIssued 馆员看全部，学生只看自己的
func (s *TransactionService) ListIssued(userID int64, isLibrarian bool) ([]*dto.IssuedBookItem, error) {
	var (
		records []*model.IssuedBook
		err     error
	)
	if isLibrarian {
		records, err = s.issuedRepo.ListAll()
	} else {
		records, err = s.issuedRepo.ListByUser(userID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]*dto.IssuedBookItem, 0, len(records))
	for _, record := range records {
		items = append(items, buildIssuedBookItem(record))
	}
	return items, nil
}

func (s *TransactionService) ListRents(userID int64) ([]*dto.RentItem, error) {
	rents, err := s.rentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.RentItem, 0, len(rents))
	for _, rent := range rents {
		items = append(items, s.buildRentItem(rent))
	}
	return items, nil
}

func (s *TransactionService) ListPurchases(userID int64) ([]*dto.PurchaseItem, error) {
	purchases, err := s.purchaseRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PurchaseItem, 0, len(purchases))
	for _, purchase := range purchases {
		items = append(items, buildPurchaseItem(purchase))
	}
	return items, nil
}

// ListPayments 馆员看全部台账，学生只看自己的流水
func (s *TransactionService) ListPayments(userID int64, isLibrarian bool, page, pageSize int) ([]*dto.PaymentItem, int64, error) {
	var (
		payments []*model.Payment
		total    int64
		err      error
	)
	if isLibrarian {
		payments, total, err = s.paymentRepo.ListAll(page, pageSize)
	} else {
		payments, total, err = s.paymentRepo.ListByUser(userID, page, pageSize)
	}
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.PaymentItem, 0, len(payments))
	for _, payment := range payments {
		items = append(items, &dto.PaymentItem{
			ID:            payment.ID,
			UserID:        payment.UserID,
			Amount:        payment.Amount,
			PaymentDate:   payment.PaymentDate.Format(datetimeLayout),
			PaymentType:   payment.PaymentType,
			PaymentMethod: payment.PaymentMethod,
		})
	}
	return items, total, nil
}

func (s *TransactionService) publishPayment(payment *model.Payment, bookID int64) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishPayment(context.Background(), &pubsub.PaymentMessage{
		UserID:        payment.UserID,
		PaymentID:     payment.ID,
		PaymentType:   payment.PaymentType,
		PaymentMethod: payment.PaymentMethod,
		Amount:        payment.Amount,
		BookID:        bookID,
	})
	if err != nil {
		log.Printf("failed to publish payment event: %v", err)
	}
}

func (s *TransactionService) buildRentItem(rent *model.Rent) *dto.RentItem {
	item := &dto.RentItem{
		ID:        rent.ID,
		BookID:    rent.BookID,
		StartDate: rent.StartDate.Format(dateLayout),
		EndDate:   rent.StartDate.AddDate(0, 0, s.cfg.Rent.DurationDays).Format(dateLayout),
		RentalFee: rent.RentalFee,
		PaymentID: rent.PaymentID,
	}
	if rent.Book != nil {
		item.BookTitle = rent.Book.Title
	}
	return item
}

func buildPurchaseItem(purchase *model.Purchase) *dto.PurchaseItem {
	item := &dto.PurchaseItem{
		ID:              purchase.ID,
		BookID:          purchase.BookID,
		PurchaseDate:    purchase.PurchaseDate.Format(datetimeLayout),
		DeliveryAddress: purchase.DeliveryAddress,
		PurchasePrice:   purchase.PurchasePrice,
		PaymentID:       purchase.PaymentID,
	}
	if purchase.Book != nil {
		item.BookTitle = purchase.Book.Title
	}
	return item
}

func buildIssuedBookItem(issued *model.IssuedBook) *dto.IssuedBookItem {
	item := &dto.IssuedBookItem{
		ID:         issued.ID,
		BookID:     issued.BookID,
		UserID:     issued.UserID,
		IssueDate:  issued.IssueDate.Format(dateLayout),
		IsReturned: issued.IsReturned(),
	}
	if issued.Book != nil {
		item.BookTitle = issued.Book.Title
	}
	if issued.User != nil {
		item.Username = issued.User.Username
	}
	if issued.ReturnDate != nil {
		item.ReturnDate = issued.ReturnDate.Format(dateLayout)
	}
	return item
}

// roundMoney 金额保留两位小数
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
