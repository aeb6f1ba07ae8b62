package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/testutil"
)

func seedBookFixtures(t *testing.T, db *gorm.DB) (*model.User, *model.Author) {
	t.Helper()

	librarian := testutil.TestUser(t, db, testutil.WithRole(model.RoleLibrarian))
	author := testutil.TestAuthor(t, db, "Repo Author")
	return librarian, author
}

func TestBookRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookRepository(db)
	librarian, author := seedBookFixtures(t, db)

	book := testutil.TestBook(t, db, author.ID, librarian.ID, testutil.WithTitle("Findable"))

	found, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Findable", found.Title)
	require.NotNil(t, found.Author)
	assert.Equal(t, author.Name, found.Author.Name)

	_, err = repo.GetByID(99999)
	assert.Error(t, err)
}

func TestBookRepository_ListAllOrdersByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookRepository(db)
	librarian, author := seedBookFixtures(t, db)

	first := testutil.TestBook(t, db, author.ID, librarian.ID)
	second := testutil.TestBook(t, db, author.ID, librarian.ID)
	third := testutil.TestBook(t, db, author.ID, librarian.ID)

	books, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, first.ID, books[0].ID)
	assert.Equal(t, second.ID, books[1].ID)
	assert.Equal(t, third.ID, books[2].ID)
}

func TestBookRepository_ExistsByTitleAndAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookRepository(db)
	librarian, author := seedBookFixtures(t, db)
	other := testutil.TestAuthor(t, db, "Other Repo Author")

	testutil.TestBook(t, db, author.ID, librarian.ID, testutil.WithTitle("Unique Pair"))

	exists, err := repo.ExistsByTitleAndAuthor("Unique Pair", author.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// 同名不同作者不算重复
	exists, err = repo.ExistsByTitleAndAuthor("Unique Pair", other.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBookRepository_ListPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookRepository(db)
	librarian, author := seedBookFixtures(t, db)

	for i := 0; i < 5; i++ {
		testutil.TestBook(t, db, author.ID, librarian.ID)
	}

	books, total, err := repo.List(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, books, 2)

	books, _, err = repo.List(3, 2)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
