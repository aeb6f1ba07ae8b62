package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
)

// 统一的时间展示格式
const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

var (
	ErrAuthorNotFound   = errors.New("作者不存在")
	ErrAuthorHasBooks   = errors.New("作者名下仍有图书，不能删除")
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrCategoryExists   = errors.New("分类名称已存在")
	ErrInvalidDate      = errors.New("日期格式应为 YYYY-MM-DD")
)

// CatalogService 作者、分类与语言的维护
type CatalogService struct {
	catalogRepo *repository.CatalogRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// ---------- 作者 ----------

func (s *CatalogService) CreateAuthor(req *dto.CreateAuthorRequest) (*dto.AuthorItem, error) {
	birth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	death, err := parseOptionalDate(req.DateOfDeath)
	if err != nil {
		return nil, err
	}

	author := &model.Author{
		Name:        req.Name,
		Biography:   req.Biography,
		DateOfBirth: birth,
		DateOfDeath: death,
	}
	if err := s.catalogRepo.CreateAuthor(author); err != nil {
		return nil, err
	}

	return buildAuthorItem(author), nil
}

func (s *CatalogService) UpdateAuthor(id int64, req *dto.UpdateAuthorRequest) (*dto.AuthorItem, error) {
	author, err := s.catalogRepo.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		author.Name = *req.Name
	}
	if req.Biography != nil {
		author.Biography = *req.Biography
	}
	if req.DateOfBirth != nil {
		birth, err := parseOptionalDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		author.DateOfBirth = birth
	}
	if req.DateOfDeath != nil {
		death, err := parseOptionalDate(*req.DateOfDeath)
		if err != nil {
			return nil, err
		}
		author.DateOfDeath = death
	}

	if err := s.catalogRepo.UpdateAuthor(author); err != nil {
		return nil, err
	}
	return buildAuthorItem(author), nil
}

// DeleteAuthor 名下还有图书时拒绝删除，避免目录悬空
func (s *CatalogService) DeleteAuthor(id int64) error {
	if _, err := s.catalogRepo.GetAuthorByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}

	count, err := s.catalogRepo.CountBooksByAuthor(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAuthorHasBooks
	}

	return s.catalogRepo.DeleteAuthor(id)
}

func (s *CatalogService) GetAuthor(id int64) (*dto.AuthorItem, error) {
	author, err := s.catalogRepo.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return buildAuthorItem(author), nil
}

func (s *CatalogService) ListAuthors() ([]*dto.AuthorItem, error) {
	authors, err := s.catalogRepo.ListAuthors()
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AuthorItem, 0, len(authors))
	for _, author := range authors {
		items = append(items, buildAuthorItem(author))
	}
	return items, nil
}

// ---------- 分类 ----------

func (s *CatalogService) CreateCategory(req *dto.CreateCategoryRequest) (*dto.CategoryItem, error) {
	exists, err := s.catalogRepo.ExistsCategoryByName(req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.catalogRepo.CreateCategory(category); err != nil {
		return nil, err
	}

	return buildCategoryItem(category), nil
}

func (s *CatalogService) UpdateCategory(id int64, req *dto.UpdateCategoryRequest) (*dto.CategoryItem, error) {
	category, err := s.catalogRepo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		exists, err := s.catalogRepo.ExistsCategoryByName(*req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCategoryExists
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.catalogRepo.UpdateCategory(category); err != nil {
		return nil, err
	}
	return buildCategoryItem(category), nil
}

// DeleteCategory 图书上的分类外键置空，分类本身可以直接删
func (s *CatalogService) DeleteCategory(id int64) error {
	if _, err := s.catalogRepo.GetCategoryByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.catalogRepo.DeleteCategory(id)
}

func (s *CatalogService) ListCategories() ([]*dto.CategoryItem, error) {
	categories, err := s.catalogRepo.ListCategories()
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CategoryItem, 0, len(categories))
	for _, category := range categories {
		items = append(items, buildCategoryItem(category))
	}
	return items, nil
}

// ---------- 语言 ----------

func (s *CatalogService) ListLanguages() ([]*dto.LanguageItem, error) {
	languages, err := s.catalogRepo.ListLanguages()
	if err != nil {
		return nil, err
	}

	items := make([]*dto.LanguageItem, 0, len(languages))
	for _, lang := range languages {
		items = append(items, &dto.LanguageItem{ID: lang.ID, Name: lang.Name})
	}
	return items, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func buildAuthorItem(author *model.Author) *dto.AuthorItem {
	item := &dto.AuthorItem{
		ID:        author.ID,
		Name:      author.Name,
		Biography: author.Biography,
	}
	if author.DateOfBirth != nil {
		item.DateOfBirth = author.DateOfBirth.Format(dateLayout)
	}
	if author.DateOfDeath != nil {
		item.DateOfDeath = author.DateOfDeath.Format(dateLayout)
	}
	return item
}

func buildCategoryItem(category *model.Category) *dto.CategoryItem {
	return &dto.CategoryItem{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}
