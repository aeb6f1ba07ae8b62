package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

// ErrOutOfStock 条件递减未命中任何行，说明库存已为 0
var ErrOutOfStock = errors.New("库存不足")

// ErrAlreadyReturned 重复归还
var ErrAlreadyReturned = errors.New("该书已归还")

type IssuedBookRepository struct {
	db *gorm.DB
}

func NewIssuedBookRepository(db *gorm.DB) *IssuedBookRepository {
	return &IssuedBookRepository{db: db}
}

// Issue 借出：条件递减库存与写入借出记录在同一事务内完成，
// UPDATE ... WHERE quantity > 0 未命中即库存不足，不产生任何写入
func (r *IssuedBookRepository) Issue(bookID, userID int64, issueDate time.Time) (*model.IssuedBook, error) {
	issued := &model.IssuedBook{
		BookID:    bookID,
		UserID:    userID,
		IssueDate: issueDate,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Book{}).
			Where("id = ? AND quantity > 0", bookID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOutOfStock
		}

		return tx.Create(issued).Error
	})
	if err != nil {
		return nil, err
	}

	return issued, nil
}

// Return 归还：写回 return_date 并加回库存，同一事务
func (r *IssuedBookRepository) Return(id int64, returnDate time.Time) (*model.IssuedBook, error) {
	var issued model.IssuedBook

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&issued).Error; err != nil {
			return err
		}
		if issued.ReturnDate != nil {
			return ErrAlreadyReturned
		}

		issued.ReturnDate = &returnDate
		if err := tx.Save(&issued).Error; err != nil {
			return err
		}

		return tx.Model(&model.Book{}).Where("id = ?", issued.BookID).
			Update("quantity", gorm.Expr("quantity + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return &issued, nil
}

func (r *IssuedBookRepository) GetByID(id int64) (*model.IssuedBook, error) {
	var issued model.IssuedBook
	err := r.db.Preload("Book").Preload("User").Where("id = ?", id).First(&issued).Error
	if err != nil {
		return nil, err
	}
	return &issued, nil
}

// ListAll 全部借出记录（馆员）
func (r *IssuedBookRepository) ListAll() ([]*model.IssuedBook, error) {
	var issued []*model.IssuedBook
	err := r.db.Preload("Book").Preload("User").Order("issue_date DESC").Find(&issued).Error
	return issued, err
}

// ListByUser 某学生的借出记录
func (r *IssuedBookRepository) ListByUser(userID int64) ([]*model.IssuedBook, error) {
	var issued []*model.IssuedBook
	err := r.db.Preload("Book").Preload("User").Where("user_id = ?", userID).
		Order("issue_date DESC").Find(&issued).Error
	return issued, err
}
