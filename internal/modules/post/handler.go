package post

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quillblog/core/internal/middleware"
	"github.com/quillblog/core/internal/modules/category"
	"github.com/quillblog/core/internal/modules/comment"
	"github.com/quillblog/core/internal/modules/tag"
	"github.com/quillblog/core/internal/pkg/pagination"
	"github.com/quillblog/core/internal/pkg/response"
)

type Handler struct {
	svc        *Service
	categories *category.Service
	tags       *tag.Service
	comments   *comment.Service
}

func NewHandler(svc *Service, categories *category.Service, tags *tag.Service, comments *comment.Service) *Handler {
	return &Handler{
		svc:        svc,
		categories: categories,
		tags:       tags,
		comments:   comments,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	rg.GET("/posts", h.list)
	rg.GET("/search", h.search)
	rg.GET("/category/:slug", h.listByCategory)
	rg.GET("/tag/:slug", h.listByTag)
	rg.GET("/post/:year/:month/:day/:slug", optionalAuthMW, h.detail)

	a := rg.Group("/post", authMW)
	a.POST("/create", h.create)
	a.POST("/:id/edit", h.edit)
	a.POST("/:id/delete", h.delete)
}

// list serves the main post index: a page of published posts together with
// the category and tag aggregates shown in the sidebar.
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c, pagination.DefaultSize)
	posts, page, err := h.svc.List(q, ListFilter{})
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
		"data":       ListProjections(posts),
		"pagination": page,
		"categories": categories,
		"tags":       tags,
	})
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("q")
	q := pagination.FromContext(c, pagination.DefaultSize)

	if query == "" {
		response.Paged(c, []Response{}, response.Pagination{
			CurrentPage: q.Page,
			Size:        q.Size,
		})
		return
	}

	posts, page, err := h.svc.List(q, ListFilter{Search: query})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, ListProjections(posts), page)
}

func (h *Handler) listByCategory(c *gin.Context) {
	cat, err := h.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFoundMsg(c, "category not found")
		return
	}

	q := pagination.FromContext(c, pagination.DefaultSize)
	posts, page, err := h.svc.List(q, ListFilter{CategorySlug: cat.Slug})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"category":   cat,
		"data":       ListProjections(posts),
		"pagination": page,
	})
}

func (h *Handler) listByTag(c *gin.Context) {
	t, err := h.tags.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFoundMsg(c, "tag not found")
		return
	}

	q := pagination.FromContext(c, pagination.DefaultSize)
	posts, page, err := h.svc.List(q, ListFilter{TagSlug: t.Slug})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"tag":        t,
		"data":       ListProjections(posts),
		"pagination": page,
	})
}

// detail serves a post addressed by publish date and slug. Drafts are only
// visible to their author and staff; every successful view bumps the counter.
func (h *Handler) detail(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	day, err3 := strconv.Atoi(c.Param("day"))
	if err1 != nil || err2 != nil || err3 != nil {
		response.NotFound(c)
		return
	}

	post, err := h.svc.GetForDate(year, month, day, c.Param("slug"), true)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	if !post.IsPublished() && post.AuthorID != middleware.CurrentUserID(c) && !middleware.IsStaff(c) {
		response.NotFound(c)
		return
	}

	if err := h.svc.IncrementViews(post.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	post.Views++

	comments, err := h.comments.TreeForPost(post.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"post":     toDetailResponse(post),
		"comments": comments,
	})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "title and content are required")
		return
	}

	post, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, toDetailResponse(post))
}

func (h *Handler) edit(c *gin.Context) {
	post, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	if post.AuthorID != middleware.CurrentUserID(c) && !middleware.IsStaff(c) {
		response.Forbidden(c)
		return
	}

	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.svc.Update(post, &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, toDetailResponse(updated))
}

func (h *Handler) delete(c *gin.Context) {
	post, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	if post.AuthorID != middleware.CurrentUserID(c) && !middleware.IsStaff(c) {
		response.Forbidden(c)
		return
	}

	if err := h.svc.Delete(post.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errSlugTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, errBadSlug), errors.Is(err, errBadStatus), errors.Is(err, errExcerptTooLong):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, errCategoryNotFound):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

