package handler

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/response"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
	"github.com/MidhunThomas45/LMSv2024Project/internal/service"
	"github.com/MidhunThomas45/LMSv2024Project/internal/testutil"
)

func setupBookHandler(t *testing.T) (*gorm.DB, *BookHandler) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	bookRepo := repository.NewBookRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	accessService := service.NewAccessService(bookRepo, repository.NewMembershipRepository(db), nil)
	bookService := service.NewBookService(bookRepo, catalogRepo, accessService)

	return db, NewBookHandler(bookService, accessService)
}

func TestBookHandler_Create(t *testing.T) {
	db, handler := setupBookHandler(t)

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Handler Author")

	router := gin.New()
	router.POST("/books", asUser(librarian.ID, model.RoleLibrarian), handler.Create)

	req := dto.CreateBookRequest{
		Title:    "New Arrival",
		AuthorID: author.ID,
		Quantity: 5,
		Price:    49.90,
	}

	w := performRequest(router, "POST", "/books", req)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	// 重复上架同一本书
	w = performRequest(router, "POST", "/books", req)
	resp = parseResponse(t, w)
	assert.Equal(t, response.CodeDuplicateAction, resp.Code)
}

func TestBookHandler_CreateUnknownAuthor(t *testing.T) {
	db, handler := setupBookHandler(t)

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))

	router := gin.New()
	router.POST("/books", asUser(librarian.ID, model.RoleLibrarian), handler.Create)

	w := performRequest(router, "POST", "/books", dto.CreateBookRequest{
		Title:    "Orphan",
		AuthorID: 99999,
		Quantity: 1,
		Price:    10,
	})
	assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)
}

func TestBookHandler_GetNotFound(t *testing.T) {
	_, handler := setupBookHandler(t)

	router := gin.New()
	router.GET("/books/:id", handler.Get)

	w := performRequest(router, "GET", "/books/99999", nil)
	assert.Equal(t, response.CodeResourceNotFound, parseResponse(t, w).Code)
}

func TestBookHandler_Available(t *testing.T) {
	db, handler := setupBookHandler(t)

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Available Author")
	for i := 0; i < 4; i++ {
		testutil.TestBook(t, db, author.ID, librarian.ID)
	}

	student := testutil.TestUser(t, db)
	plan := testutil.TestMembershipPlan(t, db, model.MembershipGold, 199, 50)
	testutil.TestUserMembership(t, db, student.ID, plan.ID)

	router := gin.New()
	router.GET("/books/available", asUser(student.ID, model.RoleStudent), handler.Available)

	w := performRequest(router, "GET", "/books/available", nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["accessible_count"])
	assert.Len(t, data["accessible"], 2)
	assert.Len(t, data["rent_required"], 2)
}

func TestBookHandler_List(t *testing.T) {
	db, handler := setupBookHandler(t)

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Paging Author")
	for i := 0; i < 3; i++ {
		testutil.TestBook(t, db, author.ID, librarian.ID)
	}

	router := gin.New()
	router.GET("/books", handler.List)

	w := performRequest(router, "GET", fmt.Sprintf("/books?page=%d&page_size=%d", 1, 2), nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), data["total"])
	assert.Len(t, data["items"], 2)
}
