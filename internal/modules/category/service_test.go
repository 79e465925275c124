package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillblog/core/internal/database"
	"github.com/quillblog/core/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestListCountsOnlyPublishedPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := models.UserModel{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	cat := models.CategoryModel{Name: "Go", Slug: "go"}
	require.NoError(t, db.Create(&cat).Error)
	empty := models.CategoryModel{Name: "Zsh", Slug: "zsh"}
	require.NoError(t, db.Create(&empty).Error)

	mk := func(slug, status string) {
		p := models.PostModel{Title: slug, Slug: slug, AuthorID: user.ID, CategoryID: &cat.ID, Content: "c", Status: status}
		require.NoError(t, db.Create(&p).Error)
	}
	mk("one", models.StatusPublished)
	mk("two", models.StatusPublished)
	mk("three", models.StatusDraft)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)

	// ordered by name
	assert.Equal(t, "Go", list[0].Name)
	assert.Equal(t, int64(2), list[0].PostCount)
	assert.Equal(t, "Zsh", list[1].Name)
	assert.Zero(t, list[1].PostCount)
}

func TestGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	require.NoError(t, db.Create(&models.CategoryModel{Name: "Go", Slug: "go"}).Error)

	cat, err := svc.GetBySlug("go")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Go", cat.Name)

	cat, err = svc.GetBySlug("missing")
	require.NoError(t, err)
	assert.Nil(t, cat)
}
