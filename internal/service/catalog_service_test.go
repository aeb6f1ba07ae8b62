package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
	"github.com/MidhunThomas45/LMSv2024Project/internal/testutil"
)

func setupCatalogService(t *testing.T) (*gorm.DB, *CatalogService) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return db, NewCatalogService(repository.NewCatalogRepository(db))
}

func TestCatalogService_CreateAuthor(t *testing.T) {
	_, svc := setupCatalogService(t)

	item, err := svc.CreateAuthor(&dto.CreateAuthorRequest{
		Name:        "Leo Tolstoy",
		Biography:   "Russian writer",
		DateOfBirth: "1828-09-09",
		DateOfDeath: "1910-11-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "Leo Tolstoy", item.Name)
	assert.Equal(t, "1828-09-09", item.DateOfBirth)
	assert.Equal(t, "1910-11-20", item.DateOfDeath)
}

func TestCatalogService_CreateAuthorInvalidDate(t *testing.T) {
	_, svc := setupCatalogService(t)

	_, err := svc.CreateAuthor(&dto.CreateAuthorRequest{
		Name:        "Bad Date",
		DateOfBirth: "09/09/1828",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCatalogService_UpdateAuthor(t *testing.T) {
	db, svc := setupCatalogService(t)

	author := testutil.TestAuthor(t, db, "Old Name")

	newName := "New Name"
	bio := "updated bio"
	item, err := svc.UpdateAuthor(author.ID, &dto.UpdateAuthorRequest{
		Name:      &newName,
		Biography: &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", item.Name)
	assert.Equal(t, "updated bio", item.Biography)

	_, err = svc.UpdateAuthor(99999, &dto.UpdateAuthorRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestCatalogService_DeleteAuthorWithBooks(t *testing.T) {
	db, svc := setupCatalogService(t)

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Busy Author")
	testutil.TestBook(t, db, author.ID, librarian.ID)

	// 名下有书的作者不能删
	err := svc.DeleteAuthor(author.ID)
	assert.ErrorIs(t, err, ErrAuthorHasBooks)

	empty := testutil.TestAuthor(t, db, "Idle Author")
	assert.NoError(t, svc.DeleteAuthor(empty.ID))
}

func TestCatalogService_CreateCategoryDuplicate(t *testing.T) {
	_, svc := setupCatalogService(t)

	_, err := svc.CreateCategory(&dto.CreateCategoryRequest{Name: "Fiction"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(&dto.CreateCategoryRequest{Name: "Fiction"})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCatalogService_UpdateCategoryRenameConflict(t *testing.T) {
	db, svc := setupCatalogService(t)

	testutil.TestCategory(t, db, "History")
	science := testutil.TestCategory(t, db, "Science")

	taken := "History"
	_, err := svc.UpdateCategory(science.ID, &dto.UpdateCategoryRequest{Name: &taken})
	assert.ErrorIs(t, err, ErrCategoryExists)

	free := "Natural Science"
	item, err := svc.UpdateCategory(science.ID, &dto.UpdateCategoryRequest{Name: &free})
	require.NoError(t, err)
	assert.Equal(t, "Natural Science", item.Name)
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	db, svc := setupCatalogService(t)

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Any Author")
	category := testutil.TestCategory(t, db, "Doomed")

	book := testutil.TestBook(t, db, author.ID, librarian.ID)
	require.NoError(t, db.Model(book).Update("category_id", category.ID).Error)

	// 分类可以删，图书上的外键置空
	require.NoError(t, svc.DeleteCategory(category.ID))

	var reloaded model.Book
	require.NoError(t, db.First(&reloaded, book.ID).Error)
	assert.Nil(t, reloaded.CategoryID)

	assert.ErrorIs(t, svc.DeleteCategory(99999), ErrCategoryNotFound)
}

func TestCatalogService_ListLanguages(t *testing.T) {
	db, svc := setupCatalogService(t)

	require.NoError(t, db.Create(&model.Language{Name: "English"}).Error)
	require.NoError(t, db.Create(&model.Language{Name: "Hindi"}).Error)

	items, err := svc.ListLanguages()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
