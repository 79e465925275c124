package aggregate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillblog/core/internal/database"
	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/modules/category"
	"github.com/quillblog/core/internal/modules/post"
	"github.com/quillblog/core/internal/modules/tag"
)

func TestHomeReturnsLatestFivePublished(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := models.UserModel{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		p := models.PostModel{
			Title: fmt.Sprintf("post %d", i), Slug: fmt.Sprintf("post-%d", i),
			AuthorID: user.ID, Content: "c", Status: models.StatusPublished,
			PublishAt: base.AddDate(0, 0, i),
		}
		require.NoError(t, db.Create(&p).Error)
	}
	draft := models.PostModel{Title: "wip", Slug: "wip", AuthorID: user.ID, Content: "c",
		Status: models.StatusDraft, PublishAt: base.AddDate(0, 0, 30)}
	require.NoError(t, db.Create(&draft).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(post.NewService(db), category.NewService(db), tag.NewService(db)).RegisterRoutes(r.Group(""))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Latest []struct {
			Title string `json:"title"`
		} `json:"latest"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Latest, 5)
	assert.Equal(t, "post 6", body.Latest[0].Title)
	assert.Equal(t, "post 2", body.Latest[4].Title)
}
