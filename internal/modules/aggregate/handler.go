// Package aggregate serves the home endpoint combining the latest posts
// with the category and tag overviews.
package aggregate

import (
	"github.com/gin-gonic/gin"

	"github.com/quillblog/core/internal/modules/category"
	"github.com/quillblog/core/internal/modules/post"
	"github.com/quillblog/core/internal/modules/tag"
	"github.com/quillblog/core/internal/pkg/response"
)

const homePostCount = 5

type Handler struct {
	posts      *post.Service
	categories *category.Service
	tags       *tag.Service
}

func NewHandler(posts *post.Service, categories *category.Service, tags *tag.Service) *Handler {
	return &Handler{posts: posts, categories: categories, tags: tags}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.home)
}

func (h *Handler) home(c *gin.Context) {
	posts, err := h.posts.Latest(homePostCount)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	categories, err := h.categories.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	tags, err := h.tags.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"latest":     post.ListProjections(posts),
		"categories": categories,
		"tags":       tags,
	})
}
