package comment

import (
	"strings"
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

func createUser(t *testing.T, db *gorm.DB, username string) *models.UserModel {
	t.Helper()
	user := models.UserModel{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPost(t *testing.T, db *gorm.DB, authorID, status string) *models.PostModel {
	t.Helper()
	post := models.PostModel{Title: "t", Slug: "t-" + status, AuthorID: authorID, Content: "c", Status: status}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func TestAddValidatesContentLength(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice")
	post := createPost(t, db, user.ID, models.StatusPublished)

	_, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "hey"})
	assert.ErrorIs(t, err, errContentLength)

	_, err = svc.Add(post.ID, user.ID, &AddCommentDTO{Content: strings.Repeat("a", 1001)})
	assert.ErrorIs(t, err, errContentLength)

	created, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "valid comment"})
	require.NoError(t, err)
	assert.True(t, created.IsApproved)
}

func TestAddRequiresPublishedPost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice")
	draft := createPost(t, db, user.ID, models.StatusDraft)

	_, err := svc.Add(draft.ID, user.ID, &AddCommentDTO{Content: "valid comment"})
	assert.ErrorIs(t, err, errPostNotFound)

	_, err = svc.Add("missing-id", user.ID, &AddCommentDTO{Content: "valid comment"})
	assert.ErrorIs(t, err, errPostNotFound)
}

func TestAddParentMustBelongToSamePost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice")
	postA := createPost(t, db, user.ID, models.StatusPublished)
	postB := models.PostModel{Title: "b", Slug: "b", AuthorID: user.ID, Content: "c", Status: models.StatusPublished}
	require.NoError(t, db.Create(&postB).Error)

	parent, err := svc.Add(postA.ID, user.ID, &AddCommentDTO{Content: "root comment"})
	require.NoError(t, err)

	_, err = svc.Add(postB.ID, user.ID, &AddCommentDTO{Content: "cross reply", ParentID: &parent.ID})
	assert.ErrorIs(t, err, errParentMismatch)

	missing := "does-not-exist"
	_, err = svc.Add(postA.ID, user.ID, &AddCommentDTO{Content: "orphan reply", ParentID: &missing})
	assert.ErrorIs(t, err, errParentNotFound)

	reply, err := svc.Add(postA.ID, user.ID, &AddCommentDTO{Content: "real reply", ParentID: &parent.ID})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *reply.ParentID)
}

func TestTreeForPostNestsAndFiltersApproval(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice")
	post := createPost(t, db, user.ID, models.StatusPublished)

	root, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "root comment"})
	require.NoError(t, err)
	reply, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "first reply", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "nested reply", ParentID: &reply.ID})
	require.NoError(t, err)
	hidden, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "spam comment"})
	require.NoError(t, err)
	_, err = svc.SetApproved(hidden.ID, false)
	require.NoError(t, err)

	tree, err := svc.TreeForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "root comment", tree[0].Content)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, "nested reply", tree[0].Replies[0].Replies[0].Content)
}

func TestDeleteCascadesDescendants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice")
	post := createPost(t, db, user.ID, models.StatusPublished)

	root, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "root comment"})
	require.NoError(t, err)
	reply, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "first reply", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "nested reply", ParentID: &reply.ID})
	require.NoError(t, err)
	other, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "unrelated comment"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(root.ID))

	var count int64
	require.NoError(t, db.Model(&models.CommentModel{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	survivor, err := svc.GetByID(other.ID)
	require.NoError(t, err)
	assert.NotNil(t, survivor)
}

func TestSetApproved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice")
	post := createPost(t, db, user.ID, models.StatusPublished)

	c, err := svc.Add(post.ID, user.ID, &AddCommentDTO{Content: "moderate me"})
	require.NoError(t, err)

	c, err = svc.SetApproved(c.ID, false)
	require.NoError(t, err)
	assert.False(t, c.IsApproved)

	c, err = svc.SetApproved(c.ID, true)
	require.NoError(t, err)
	assert.True(t, c.IsApproved)

	_, err = svc.SetApproved("missing", true)
	assert.ErrorIs(t, err, errNotFound)
}
