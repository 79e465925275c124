// Package api exposes read-only JSON projections of published content for
// external consumers. Shapes are flat and stable: lists are wrapped in
// {count, results} and a missing post yields {"error": ...}.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/pkg/response"
)

// listCap bounds the post list projection.
const listCap = 20

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/api")

	g.GET("/posts", h.listPosts)
	g.GET("/posts/:id", h.postDetail)
	g.GET("/categories", h.listCategories)
	g.GET("/tags", h.listTags)
}

type postItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Slug     string  `json:"slug"`
	Author   string  `json:"author"`
	Category *string `json:"category"`
	Excerpt  string  `json:"excerpt"`
	Publish  string  `json:"publish"`
	Views    int     `json:"views"`
}

type postDetail struct {
	postItem
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
}

func toPostItem(p *models.PostModel) postItem {
	item := postItem{
		ID:      p.ID,
		Title:   p.Title,
		Slug:    p.Slug,
		Excerpt: p.Excerpt,
		Publish: p.PublishAt.Format(time.RFC3339),
		Views:   p.Views,
	}
	if p.Author != nil {
		item.Author = p.Author.Username
	}
	if p.Category != nil {
		item.Category = &p.Category.Name
	}
	return item
}

func (h *Handler) listPosts(c *gin.Context) {
	var posts []models.PostModel
	err := h.db.Preload("Author").Preload("Category").
		Where("status = ?", models.StatusPublished).
		Order("publish_at DESC").Limit(listCap).
		Find(&posts).Error
	if err != nil {
		response.InternalError(c, err)
		return
	}

	results := make([]postItem, len(posts))
	for i := range posts {
		results[i] = toPostItem(&posts[i])
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *Handler) postDetail(c *gin.Context) {
	var post models.PostModel
	err := h.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("id = ? AND status = ?", c.Param("id"), models.StatusPublished).
		First(&post).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	detail := postDetail{
		postItem: toPostItem(&post),
		Tags:     make([]string, len(post.Tags)),
		Content:  post.Content,
	}
	for i, t := range post.Tags {
		detail.Tags[i] = t.Name
	}
	c.JSON(http.StatusOK, detail)
}

type categoryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *Handler) listCategories(c *gin.Context) {
	var categories []models.CategoryModel
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	results := make([]categoryItem, len(categories))
	for i, cat := range categories {
		results[i] = categoryItem{ID: cat.ID, Name: cat.Name, Slug: cat.Slug, Description: cat.Description}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

type tagItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *Handler) listTags(c *gin.Context) {
	var tags []models.TagModel
	if err := h.db.Order("name ASC").Find(&tags).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	results := make([]tagItem, len(tags))
	for i, t := range tags {
		results[i] = tagItem{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}
