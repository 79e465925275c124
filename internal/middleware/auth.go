package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/pkg/jwt"
	"github.com/quillblog/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID  = "user_id"
	ContextKeyIsStaff = "is_staff"
)

// Auth returns a middleware that enforces JWT authentication. The account is
// loaded so handlers can check the staff flag without another query.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := validateRequest(db, c)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyIsStaff, user.IsStaff)
		c.Next()
	}
}

// OptionalAuth sets the user identity if a valid token is present, but does
// not block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := validateRequest(db, c); err == nil {
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyIsStaff, user.IsStaff)
		}
		c.Next()
	}
}

func validateRequest(db *gorm.DB, c *gin.Context) (*models.UserModel, error) {
	token := extractToken(c)
	if token == "" {
		return nil, errors.New("token is required")
	}
	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	var user models.UserModel
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("account no longer exists")
		}
		return nil, err
	}
	return &user, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// IsStaff reports whether the authenticated account has the staff flag.
func IsStaff(c *gin.Context) bool {
	v, _ := c.Get(ContextKeyIsStaff)
	staff, _ := v.(bool)
	return staff
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
