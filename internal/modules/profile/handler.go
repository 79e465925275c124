package profile

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/quillblog/core/internal/middleware"
	"github.com/quillblog/core/internal/pkg/response"
)

// maxAvatarUpload bounds the accepted upload body, before downsizing.
const maxAvatarUpload = 5 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/profile", authMW)

	g.GET("", h.get)
	g.POST("/edit", h.edit)
	g.POST("/avatar", h.avatar)
}

func (h *Handler) get(c *gin.Context) {
	user, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, toResponse(user))
}

func (h *Handler) edit(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Update(middleware.CurrentUserID(c), &dto)
	switch {
	case errors.Is(err, errUsernameTaken), errors.Is(err, errEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, errBadBirthDate):
		response.UnprocessableEntity(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	case user == nil:
		response.Unauthorized(c)
	default:
		response.OK(c, toResponse(user))
	}
}

func (h *Handler) avatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, errNoAvatar.Error())
		return
	}
	if file.Size > maxAvatarUpload {
		response.UnprocessableEntity(c, "avatar must be at most 5 MB")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAvatarUpload))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	user, err := h.svc.SaveAvatar(middleware.CurrentUserID(c), data)
	if err != nil {
		response.UnprocessableEntity(c, "avatar must be a valid JPEG, PNG or GIF image")
		return
	}
	response.OK(c, toResponse(user))
}
