package auth

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
	g := rg.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/me", authMW, h.me)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, "username, a valid email and a password of at least 8 characters are required")
		return
	}

	user, err := h.svc.Register(&dto)
	switch {
	case errors.Is(err, errUsernameTaken), errors.Is(err, errEmailTaken):
		response.Conflict(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, ToUserResponse(user))
	}
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	token, user, err := h.svc.Login(&dto)
	switch {
	case errors.Is(err, errBadCredentials):
		response.Unauthorized(c)
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, loginResponse{Token: token, User: ToUserResponse(user)})
	}
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, ToUserResponse(user))
}
