package post

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillblog/core/internal/database"
	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/pkg/pagination"
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

func createUser(t *testing.T, db *gorm.DB, username string) *models.UserModel {
	t.Helper()
	user := models.UserModel{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCategory(t *testing.T, db *gorm.DB, name, slug string) *models.CategoryModel {
	t.Helper()
	cat := models.CategoryModel{Name: name, Slug: slug}
	require.NoError(t, db.Create(&cat).Error)
	return &cat
}

func TestCreateGeneratesSlugFromTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	post, err := svc.Create(author.ID, &CreatePostDTO{
		Title:   "Hello World, Again",
		Content: "body",
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-again", post.Slug)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.NotEmpty(t, post.ID)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	_, err := svc.Create(author.ID, &CreatePostDTO{Title: "t", Content: "c", Slug: "no spaces!"})
	assert.ErrorIs(t, err, errBadSlug)

	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "t", Content: "c", Status: "pending"})
	assert.ErrorIs(t, err, errBadStatus)

	long := make([]byte, maxExcerptLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "t", Content: "c", Excerpt: string(long)})
	assert.ErrorIs(t, err, errExcerptTooLong)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "t", Content: "c", CategoryID: &missing})
	assert.ErrorIs(t, err, errCategoryNotFound)
}

func TestSlugUniquePerPublishDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day1Later := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(author.ID, &CreatePostDTO{Title: "a", Content: "c", Slug: "my-post", PublishAt: &day1})
	require.NoError(t, err)

	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "b", Content: "c", Slug: "my-post", PublishAt: &day1Later})
	assert.ErrorIs(t, err, errSlugTaken)

	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "b", Content: "c", Slug: "my-post", PublishAt: &day2})
	assert.NoError(t, err)
}

func TestListReturnsOnlyPublished(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	_, err := svc.Create(author.ID, &CreatePostDTO{Title: "draft one", Content: "c"})
	require.NoError(t, err)
	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "live one", Content: "c", Status: models.StatusPublished})
	require.NoError(t, err)

	posts, page, err := svc.List(pagination.Query{Page: 1, Size: 10}, ListFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "live one", posts[0].Title)
	assert.Equal(t, int64(1), page.Total)
}

func TestListFiltersByCategoryAndTag(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")
	cat := createCategory(t, db, "Go", "go")

	_, err := svc.Create(author.ID, &CreatePostDTO{
		Title: "tagged", Content: "c", Status: models.StatusPublished,
		CategoryID: &cat.ID, Tags: []string{"testing", "tips"},
	})
	require.NoError(t, err)
	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "plain", Content: "c", Status: models.StatusPublished})
	require.NoError(t, err)

	q := pagination.Query{Page: 1, Size: 10}

	posts, _, err := svc.List(q, ListFilter{CategorySlug: "go"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "tagged", posts[0].Title)

	posts, _, err = svc.List(q, ListFilter{TagSlug: "testing"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "tagged", posts[0].Title)

	posts, _, err = svc.List(q, ListFilter{TagSlug: "nope"})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSearchMatchesTitleContentExcerpt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	mk := func(title, excerpt, content, status string) {
		_, err := svc.Create(author.ID, &CreatePostDTO{Title: title, Excerpt: excerpt, Content: content, Status: status})
		require.NoError(t, err)
	}
	mk("Needle in title", "", "body", models.StatusPublished)
	mk("second", "the needle hides here", "body", models.StatusPublished)
	mk("third", "", "content with NEEDLE inside", models.StatusPublished)
	mk("needle draft", "", "body", models.StatusDraft)

	posts, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, ListFilter{Search: "needle"})
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestGetForDate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	at := time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)
	_, err := svc.Create(author.ID, &CreatePostDTO{
		Title: "july post", Content: "c", Slug: "july-post",
		Status: models.StatusPublished, PublishAt: &at,
	})
	require.NoError(t, err)

	post, err := svc.GetForDate(2026, 7, 4, "july-post", false)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "july post", post.Title)

	post, err = svc.GetForDate(2026, 7, 5, "july-post", false)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestGetForDateHidesDrafts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	at := time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)
	_, err := svc.Create(author.ID, &CreatePostDTO{Title: "wip", Content: "c", Slug: "wip", PublishAt: &at})
	require.NoError(t, err)

	post, err := svc.GetForDate(2026, 7, 4, "wip", false)
	require.NoError(t, err)
	assert.Nil(t, post)

	post, err = svc.GetForDate(2026, 7, 4, "wip", true)
	require.NoError(t, err)
	assert.NotNil(t, post)
}

func TestIncrementViews(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	post, err := svc.Create(author.ID, &CreatePostDTO{Title: "v", Content: "c", Status: models.StatusPublished})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.IncrementViews(post.ID))
	}

	got, err := svc.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Views)
}

func TestUpdatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	post, err := svc.Create(author.ID, &CreatePostDTO{Title: "old", Content: "c", Tags: []string{"a"}})
	require.NoError(t, err)

	title := "new title"
	status := models.StatusPublished
	tags := []string{"b", "c"}
	updated, err := svc.Update(post, &UpdatePostDTO{Title: &title, Status: &status, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.True(t, updated.IsPublished())
	require.Len(t, updated.Tags, 2)
}

func TestDeleteCascadesCommentsAndTagLinks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	author := createUser(t, db, "alice")

	post, err := svc.Create(author.ID, &CreatePostDTO{
		Title: "doomed", Content: "c", Status: models.StatusPublished, Tags: []string{"x"},
	})
	require.NoError(t, err)

	comment := models.CommentModel{PostID: post.ID, AuthorID: author.ID, Content: "nice post", IsApproved: true}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, svc.Delete(post.ID))

	var count int64
	require.NoError(t, db.Model(&models.PostModel{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.CommentModel{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Table("post_tags").Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)

	// tags themselves survive
	require.NoError(t, db.Model(&models.TagModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
