package repository

import (
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

// CatalogRepository 作者、分类、语言、ISBN 等目录基础数据
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ---------- Author ----------

func (r *CatalogRepository) CreateAuthor(author *model.Author) error {
	return r.db.Create(author).Error
}

func (r *CatalogRepository) GetAuthorByID(id int64) (*model.Author, error) {
	var author model.Author
	err := r.db.Where("id = ?", id).First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *CatalogRepository) ListAuthors() ([]*model.Author, error) {
	var authors []*model.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}

func (r *CatalogRepository) UpdateAuthor(author *model.Author) error {
	return r.db.Save(author).Error
}

func (r *CatalogRepository) DeleteAuthor(id int64) error {
	return r.db.Delete(&model.Author{}, id).Error
}

// CountBooksByAuthor 作者名下图书数，删除前校验引用
func (r *CatalogRepository) CountBooksByAuthor(authorID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Book{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// ---------- Category ----------

func (r *CatalogRepository) CreateCategory(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *CatalogRepository) GetCategoryByID(id int64) (*model.Category, error) {
	var category model.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) ListCategories() ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) UpdateCategory(category *model.Category) error {
	return r.db.Save(category).Error
}

// DeleteCategory 删除分类并置空图书上的引用，同一事务
func (r *CatalogRepository) DeleteCategory(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Book{}).Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}

func (r *CatalogRepository) ExistsCategoryByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// ---------- Language ----------

func (r *CatalogRepository) ListLanguages() ([]*model.Language, error) {
	var languages []*model.Language
	err := r.db.Order("name ASC").Find(&languages).Error
	return languages, err
}

func (r *CatalogRepository) GetLanguageByID(id int64) (*model.Language, error) {
	var language model.Language
	err := r.db.Where("id = ?", id).First(&language).Error
	if err != nil {
		return nil, err
	}
	return &language, nil
}

// ---------- ISBN ----------

func (r *CatalogRepository) CreateISBN(isbn *model.ISBN) error {
	return r.db.Create(isbn).Error
}

func (r *CatalogRepository) GetISBNByCode(code string) (*model.ISBN, error) {
	var isbn model.ISBN
	err := r.db.Where("code = ?", code).First(&isbn).Error
	if err != nil {
		return nil, err
	}
	return &isbn, nil
}

func (r *CatalogRepository) ExistsISBNByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ISBN{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}
