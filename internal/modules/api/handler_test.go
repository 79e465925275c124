package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillblog/core/internal/database"
	"github.com/quillblog/core/internal/models"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(db).RegisterRoutes(r.Group(""))
	return r, db
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, db *gorm.DB) (*models.UserModel, *models.PostModel, *models.PostModel) {
	t.Helper()
	user := models.UserModel{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	published := models.PostModel{Title: "live", Slug: "live", AuthorID: user.ID, Content: "c", Status: models.StatusPublished}
	require.NoError(t, db.Create(&published).Error)
	draft := models.PostModel{Title: "wip", Slug: "wip", AuthorID: user.ID, Content: "c", Status: models.StatusDraft}
	require.NoError(t, db.Create(&draft).Error)
	return &user, &published, &draft
}

func TestListPostsExcludesDrafts(t *testing.T) {
	r, db := setup(t)
	seed(t, db)

	w := get(r, "/api/posts")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int `json:"count"`
		Results []struct {
			Title  string `json:"title"`
			Author string `json:"author"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "live", body.Results[0].Title)
	assert.Equal(t, "alice", body.Results[0].Author)
}

func TestPostDetail(t *testing.T) {
	r, db := setup(t)
	_, published, draft := seed(t, db)

	w := get(r, "/api/posts/"+published.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "live", body["title"])
	assert.Contains(t, body, "content")
	assert.Contains(t, body, "tags")

	w = get(r, "/api/posts/"+draft.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestCategoryAndTagProjections(t *testing.T) {
	r, db := setup(t)
	require.NoError(t, db.Create(&models.CategoryModel{Name: "Go", Slug: "go", Description: "golang"}).Error)
	require.NoError(t, db.Create(&models.TagModel{Name: "tips", Slug: "tips"}).Error)

	w := get(r, "/api/categories")
	require.Equal(t, http.StatusOK, w.Code)
	var cats struct {
		Count   int                 `json:"count"`
		Results []map[string]string `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
	require.Equal(t, 1, cats.Count)
	assert.Equal(t, "go", cats.Results[0]["slug"])

	w = get(r, "/api/tags")
	require.Equal(t, http.StatusOK, w.Code)
	var tags struct {
		Count   int                 `json:"count"`
		Results []map[string]string `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Equal(t, 1, tags.Count)
	assert.Equal(t, "tips", tags.Results[0]["name"])
}
