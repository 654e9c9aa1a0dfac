package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/customers/internal/config"
	"github.com/polkiloo/customers/internal/server/http/handlers"
	"github.com/polkiloo/customers/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CustomersFacade, logger *slog.Logger, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(cfg.MaxUploadSize + middleware.MultipartOverhead))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(facade)
	customerHandler := handlers.NewCustomerHandler(facade, cfg.MaxUploadSize)

	api := engine.Group("/api/v1")
	api.POST("/customers", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	customers := api.Group("/customers")
	customers.Use(middleware.AuthRequired(facade))
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.POST("/:id/profile-image", customerHandler.UploadProfileImage)
	customers.GET("/:id/profile-image", customerHandler.ProfileImage)

	return engine
}
