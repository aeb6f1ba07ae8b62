package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
	"github.com/MidhunThomas45/LMSv2024Project/internal/testutil"
)

func setupAccessService(t *testing.T, rdb *redis.Client) (*gorm.DB, *AccessService) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	svc := NewAccessService(
		repository.NewBookRepository(db),
		repository.NewMembershipRepository(db),
		rdb,
	)
	return db, svc
}

func seedBooks(t *testing.T, db *gorm.DB, n int) []*model.Book {
	t.Helper()

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Partition Author")

	books := make([]*model.Book, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, testutil.TestBook(t, db, author.ID, librarian.ID))
	}
	return books
}

func TestAccessService_NoMembership(t *testing.T) {
	db, svc := setupAccessService(t, nil)

	seedBooks(t, db, 4)
	student := testutil.TestUser(t, db)

	resp, err := svc.GetAvailableBooks(context.Background(), student.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.AccessibleCount)
	assert.Len(t, resp.Accessible, 0)
	assert.Len(t, resp.RentRequired, 4)
}

func TestAccessService_PartitionByPercentage(t *testing.T) {
	tests := []struct {
		name       string
		books      int
		percentage int
		accessible int
	}{
		{"zero percent", 4, 0, 0},
		{"half of five floors down", 5, 50, 2},
		{"half of three floors down", 3, 50, 1},
		{"full access", 4, 100, 4},
		{"quarter of ten", 10, 25, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, svc := setupAccessService(t, nil)

			seedBooks(t, db, tt.books)
			student := testutil.TestUser(t, db)
			plan := testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, tt.percentage)
			testutil.TestUserMembership(t, db, student.ID, plan.ID)

			resp, err := svc.GetAvailableBooks(context.Background(), student.ID)
			require.NoError(t, err)

			assert.Equal(t, tt.accessible, resp.AccessibleCount)
			assert.Len(t, resp.Accessible, tt.accessible)
			assert.Len(t, resp.RentRequired, tt.books-tt.accessible)
		})
	}
}

func TestAccessService_PartitionOrderIsStable(t *testing.T) {
	db, svc := setupAccessService(t, nil)

	books := seedBooks(t, db, 4)
	student := testutil.TestUser(t, db)
	plan := testutil.TestMembershipPlan(t, db, model.MembershipPlatinum, 299, 50)
	testutil.TestUserMembership(t, db, student.ID, plan.ID)

	resp, err := svc.GetAvailableBooks(context.Background(), student.ID)
	require.NoError(t, err)

	// 免费区永远是 id 最小的前几本
	require.Len(t, resp.Accessible, 2)
	assert.Equal(t, books[0].ID, resp.Accessible[0].ID)
	assert.Equal(t, books[1].ID, resp.Accessible[1].ID)
	assert.Equal(t, books[2].ID, resp.RentRequired[0].ID)
	assert.Equal(t, books[3].ID, resp.RentRequired[1].ID)
}

func TestAccessService_ExpiredMembership(t *testing.T) {
	db, svc := setupAccessService(t, nil)

	seedBooks(t, db, 4)
	student := testutil.TestUser(t, db)
	plan := testutil.TestMembershipPlan(t, db, model.MembershipDiamond, 399, 100)
	testutil.TestUserMembership(t, db, student.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, -1)))

	resp, err := svc.GetAvailableBooks(context.Background(), student.ID)
	require.NoError(t, err)

	// 过期会员等同无会员，全部进入需租借区
	assert.Equal(t, 0, resp.AccessibleCount)
	assert.Len(t, resp.RentRequired, 4)
}

func TestAccessService_CacheInvalidation(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db, svc := setupAccessService(t, rdb)
	ctx := context.Background()

	books := seedBooks(t, db, 2)
	student := testutil.TestUser(t, db)

	resp, err := svc.GetAvailableBooks(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, resp.RentRequired, 2)

	// 绕过服务直接加书，缓存未失效前结果不变
	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	testutil.TestBook(t, db, books[0].AuthorID, librarian.ID)

	resp, err = svc.GetAvailableBooks(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, resp.RentRequired, 2)

	svc.InvalidateCatalog(ctx)

	resp, err = svc.GetAvailableBooks(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, resp.RentRequired, 3)
}

func TestAccessService_InvalidateUser(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db, svc := setupAccessService(t, rdb)
	ctx := context.Background()

	seedBooks(t, db, 4)
	student := testutil.TestUser(t, db)

	resp, err := svc.GetAvailableBooks(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, 0, resp.AccessibleCount)

	// 订阅会员后需要失效该用户缓存才能看到新划分
	plan := testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, 100)
	testutil.TestUserMembership(t, db, student.ID, plan.ID)

	resp, err = svc.GetAvailableBooks(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AccessibleCount)

	svc.InvalidateUser(ctx, student.ID)

	resp, err = svc.GetAvailableBooks(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.AccessibleCount)
}
