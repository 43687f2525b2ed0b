package httptransport

import (
	"log/slog"

	"github.com/adilbekov/shopscout/internal/session"
	"github.com/adilbekov/shopscout/internal/transport/http/handler"
	"github.com/adilbekov/shopscout/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	sessions *session.Manager,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	searchHandler *handler.SearchHandler,
	compareHandler *handler.CompareHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(sessions, logger)

	user := r.Group("/user")
	user.POST("/create", userHandler.Create)
	user.POST("/login", userHandler.Login)
	user.POST("/logout", userHandler.Logout)
	user.GET("/:userId/verify/:token", userHandler.Verify)

	r.POST("/auth/verify", authMW, authHandler.Verify)

	search := r.Group("/search")
	search.POST("/create", authMW, searchHandler.Create)
	search.POST("/generate-form", searchHandler.GenerateForm)

	r.POST("/compare/product", compareHandler.Create)

	return r
}
