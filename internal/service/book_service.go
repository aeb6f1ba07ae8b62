package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
)

var (
	ErrBookNotFound     = errors.New("图书不存在")
	ErrBookExists       = errors.New("同一作者的同名图书已存在")
	ErrLanguageNotFound = errors.New("语言不存在")
)

// BookService 图书维护；(title, author) 组合唯一，ISBN 缺省时自动生成
type BookService struct {
	bookRepo    *repository.BookRepository
	catalogRepo *repository.CatalogRepository
	access      *AccessService
}

func NewBookService(
	bookRepo *repository.BookRepository,
	catalogRepo *repository.CatalogRepository,
	access *AccessService,
) *BookService {
	return &BookService{
		bookRepo:    bookRepo,
		catalogRepo: catalogRepo,
		access:      access,
	}
}

// Create 馆员上架图书
func (s *BookService) Create(userID int64, req *dto.CreateBookRequest) (*dto.BookItem, error) {
	if _, err := s.catalogRepo.GetAuthorByID(req.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.catalogRepo.GetCategoryByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}
	if req.LanguageID != nil {
		if _, err := s.catalogRepo.GetLanguageByID(*req.LanguageID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLanguageNotFound
			}
			return nil, err
		}
	}

	exists, err := s.bookRepo.ExistsByTitleAndAuthor(req.Title, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBookExists
	}

	isbnID, err := s.resolveISBN(req.ISBNCode)
	if err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:       req.Title,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		LanguageID:  req.LanguageID,
		ISBNID:      isbnID,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		AddedBy:     userID,
	}
	if err := s.bookRepo.Create(book); err != nil {
		return nil, err
	}

	s.access.InvalidateCatalog(context.Background())
	log.Printf("book created: id=%d title=%s by=%d", book.ID, book.Title, userID)

	return s.Get(book.ID)
}

// Update 编辑图书，改标题或作者时重新校验唯一性
func (s *BookService) Update(id int64, req *dto.UpdateBookRequest) (*dto.BookItem, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	title := book.Title
	authorID := book.AuthorID
	if req.Title != nil {
		title = *req.Title
	}
	if req.AuthorID != nil {
		authorID = *req.AuthorID
	}

	if title != book.Title || authorID != book.AuthorID {
		if authorID != book.AuthorID {
			if _, err := s.catalogRepo.GetAuthorByID(authorID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrAuthorNotFound
				}
				return nil, err
			}
		}

		exists, err := s.bookRepo.ExistsByTitleAndAuthor(title, authorID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrBookExists
		}
	}

	book.Title = title
	book.AuthorID = authorID
	if req.CategoryID != nil {
		if _, err := s.catalogRepo.GetCategoryByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		book.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Quantity != nil {
		book.Quantity = *req.Quantity
	}
	if req.Price != nil {
		book.Price = *req.Price
	}

	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}

	s.access.InvalidateCatalog(context.Background())
	return s.Get(book.ID)
}

func (s *BookService) Delete(id int64) error {
	if _, err := s.bookRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	if err := s.bookRepo.Delete(id); err != nil {
		return err
	}

	s.access.InvalidateCatalog(context.Background())
	return nil
}

func (s *BookService) Get(id int64) (*dto.BookItem, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return buildBookItem(book), nil
}

// List 全量目录分页（馆员视角，不做访问划分）
func (s *BookService) List(page, pageSize int) ([]*dto.BookItem, int64, error) {
	books, total, err := s.bookRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.BookItem, 0, len(books))
	for _, book := range books {
		items = append(items, buildBookItem(book))
	}
	return items, total, nil
}

// resolveISBN 指定编号时查找或登记，未指定时生成一个不冲突的编号
func (s *BookService) resolveISBN(code string) (*int64, error) {
	if code != "" {
		existing, err := s.catalogRepo.GetISBNByCode(code)
		if err == nil {
			return &existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		isbn := &model.ISBN{Code: code}
		if err := s.catalogRepo.CreateISBN(isbn); err != nil {
			return nil, err
		}
		return &isbn.ID, nil
	}

	for i := 0; i < 5; i++ {
		generated := fmt.Sprintf("978%010d", rand.Int63n(1e10))
		exists, err := s.catalogRepo.ExistsISBNByCode(generated)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		isbn := &model.ISBN{Code: generated}
		if err := s.catalogRepo.CreateISBN(isbn); err != nil {
			return nil, err
		}
		return &isbn.ID, nil
	}

	return nil, errors.New("生成 ISBN 失败")
}
