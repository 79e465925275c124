package comment

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/quillblog/core/internal/middleware"
	"github.com/quillblog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/comment", authMW)

	g.POST("/add/:postId", h.add)
	g.POST("/delete/:id", h.delete)
	g.POST("/approve/:id", h.approve)
}

func (h *Handler) add(c *gin.Context) {
	var dto AddCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "content is required")
		return
	}

	created, err := h.svc.Add(c.Param("postId"), middleware.CurrentUserID(c), &dto)
	switch {
	case errors.Is(err, errContentLength):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, errPostNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, errParentNotFound), errors.Is(err, errParentMismatch):
		response.BadRequest(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, toResponse(created))
	}
}

func (h *Handler) delete(c *gin.Context) {
	comment, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if comment == nil {
		response.NotFound(c)
		return
	}
	if comment.AuthorID != middleware.CurrentUserID(c) && !middleware.IsStaff(c) {
		response.Forbidden(c)
		return
	}

	if err := h.svc.Delete(comment.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) approve(c *gin.Context) {
	if !middleware.IsStaff(c) {
		response.Forbidden(c)
		return
	}

	var dto ApproveCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "approved flag is required")
		return
	}

	comment, err := h.svc.SetApproved(c.Param("id"), *dto.Approved)
	switch {
	case errors.Is(err, errNotFound):
		response.NotFound(c)
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, toResponse(comment))
	}
}
