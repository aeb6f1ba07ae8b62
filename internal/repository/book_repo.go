package repository

import (
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(book *model.Book) error {
	return r.db.Create(book).Error
}

func (r *BookRepository) GetByID(id int64) (*model.Book, error) {
	var book model.Book
	err := r.db.Preload("Author").Preload("Category").Preload("Language").Preload("ISBN").
		Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List 分页列出图书
func (r *BookRepository) List(page, pageSize int) ([]*model.Book, int64, error) {
	var total int64
	var books []*model.Book

	query := r.db.Model(&model.Book{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Preload("Author").Preload("Category").Preload("Language").Preload("ISBN").
		Order("id ASC").Offset(offset).Limit(pageSize).Find(&books).Error
	return books, total, err
}

// ListAll 按 id 升序列出全部图书，目录划分依赖该顺序
func (r *BookRepository) ListAll() ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.Preload("Author").Preload("Category").Preload("Language").Preload("ISBN").
		Order("id ASC").Find(&books).Error
	return books, err
}

func (r *BookRepository) Update(book *model.Book) error {
	return r.db.Save(book).Error
}

func (r *BookRepository) Delete(id int64) error {
	return r.db.Delete(&model.Book{}, id).Error
}

func (r *BookRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Book{}).Count(&count).Error
	return count, err
}

func (r *BookRepository) ExistsByTitleAndAuthor(title string, authorID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Book{}).
		Where("title = ? AND author_id = ?", title, authorID).Count(&count).Error
	return count > 0, err
}
