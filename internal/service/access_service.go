package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
)

const (
	accessCacheTTL        = 5 * time.Minute
	accessCatalogVerKey   = "access:catalog:ver"
	accessUserKeyTemplate = "access:user:%d:v%d"
)

// AccessService 按会员等级划分目录：前 floor(n*p/100) 本（按图书 id 升序）免费可读，
// 其余需租借；无会员或会员已到期视为 0% 访问，不报错
type AccessService struct {
	bookRepo       *repository.BookRepository
	membershipRepo *repository.MembershipRepository
	rdb            *redis.Client
}

func NewAccessService(
	bookRepo *repository.BookRepository,
	membershipRepo *repository.MembershipRepository,
	rdb *redis.Client,
) *AccessService {
	return &AccessService{
		bookRepo:       bookRepo,
		membershipRepo: membershipRepo,
		rdb:            rdb,
	}
}

// GetAvailableBooks 学生可见的目录划分，结果按用户缓存
func (s *AccessService) GetAvailableBooks(ctx context.Context, userID int64) (*dto.AvailableBooksResponse, error) {
	if cached := s.getCached(ctx, userID); cached != nil {
		return cached, nil
	}

	books, err := s.bookRepo.ListAll()
	if err != nil {
		return nil, err
	}

	percentage := s.accessPercentage(userID, time.Now())

	// 整数除法向零截断
	accessibleCount := len(books) * percentage / 100

	resp := &dto.AvailableBooksResponse{
		AccessibleCount: accessibleCount,
		Accessible:      make([]*dto.BookItem, 0, accessibleCount),
		RentRequired:    make([]*dto.BookItem, 0, len(books)-accessibleCount),
	}

	for i, book := range books {
		item := buildBookItem(book)
		if i < accessibleCount {
			resp.Accessible = append(resp.Accessible, item)
		} else {
			resp.RentRequired = append(resp.RentRequired, item)
		}
	}

	s.setCached(ctx, userID, resp)
	return resp, nil
}

// accessPercentage 用户当前可访问比例，无会员/已到期返回 0
func (s *AccessService) accessPercentage(userID int64, now time.Time) int {
	// 无会员或查询失败按 0% 处理，划分逻辑不因此报错
	um, err := s.membershipRepo.GetByUserID(userID)
	if err != nil {
		return 0
	}

	if !um.IsActive(now) {
		return 0
	}
	if um.Membership == nil {
		return 0
	}

	p := um.Membership.BookAccessPercentage
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// InvalidateUser 会员变化后失效该用户的缓存
func (s *AccessService) InvalidateUser(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	ver := s.catalogVersion(ctx)
	s.rdb.Del(ctx, fmt.Sprintf(accessUserKeyTemplate, userID, ver))
}

// InvalidateCatalog 目录变化后推进版本号，旧版本缓存全部失效
func (s *AccessService) InvalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	s.rdb.Incr(ctx, accessCatalogVerKey)
}

func (s *AccessService) catalogVersion(ctx context.Context) int64 {
	ver, err := s.rdb.Get(ctx, accessCatalogVerKey).Int64()
	if err != nil {
		return 0
	}
	return ver
}

func (s *AccessService) getCached(ctx context.Context, userID int64) *dto.AvailableBooksResponse {
	if s.rdb == nil {
		return nil
	}

	key := fmt.Sprintf(accessUserKeyTemplate, userID, s.catalogVersion(ctx))
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}

	var resp dto.AvailableBooksResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *AccessService) setCached(ctx context.Context, userID int64, resp *dto.AvailableBooksResponse) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}

	key := fmt.Sprintf(accessUserKeyTemplate, userID, s.catalogVersion(ctx))
	s.rdb.Set(ctx, key, data, accessCacheTTL)
}

// buildBookItem 图书展示项，book/access/transaction 服务共用
func buildBookItem(book *model.Book) *dto.BookItem {
	item := &dto.BookItem{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Quantity:    book.Quantity,
		Price:       book.Price,
	}

	if book.Author != nil {
		item.Author = book.Author.Name
	}
	if book.Category != nil {
		item.Category = book.Category.Name
	}
	if book.Language != nil {
		item.Language = book.Language.Name
	}
	if book.ISBN != nil {
		item.ISBN = book.ISBN.Code
	}

	return item
}
