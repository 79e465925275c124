package app

import (
	"github.com/gin-gonic/gin"

	"github.com/quillblog/core/internal/middleware"
	"github.com/quillblog/core/internal/modules/aggregate"
	"github.com/quillblog/core/internal/modules/api"
	"github.com/quillblog/core/internal/modules/auth"
	"github.com/quillblog/core/internal/modules/category"
	"github.com/quillblog/core/internal/modules/comment"
	"github.com/quillblog/core/internal/modules/post"
	"github.com/quillblog/core/internal/modules/profile"
	"github.com/quillblog/core/internal/modules/tag"
	"github.com/quillblog/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	optionalAuthMW := middleware.OptionalAuth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	if a.redis != nil {
		r.Use(middleware.RateLimit(a.redis.Raw()))
	}

	r.Static("/uploads", a.cfg.UploadDir)

	categorySvc := category.NewService(db)
	tagSvc := tag.NewService(db)
	commentSvc := comment.NewService(db)
	postSvc := post.NewService(db)
	authSvc := auth.NewService(db)
	profileSvc := profile.NewService(db, a.cfg.UploadDir)

	root := r.Group("")

	aggregate.NewHandler(postSvc, categorySvc, tagSvc).RegisterRoutes(root)
	post.NewHandler(postSvc, categorySvc, tagSvc, commentSvc).RegisterRoutes(root, authMW, optionalAuthMW)
	category.NewHandler(categorySvc).RegisterRoutes(root)
	tag.NewHandler(tagSvc).RegisterRoutes(root)
	comment.NewHandler(commentSvc).RegisterRoutes(root, authMW)
	auth.NewHandler(authSvc).RegisterRoutes(root, authMW)
	profile.NewHandler(profileSvc).RegisterRoutes(root, authMW)
	api.NewHandler(db).RegisterRoutes(root)
}
