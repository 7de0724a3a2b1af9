package main

import (
	"net/http"
	"time"

	"content-server/internal/config"
	"content-server/internal/handler"
	"content-server/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

const defaultAllowedOrigin = "http://localhost:3000"

// setupRouter собирает gin.Engine со всеми middleware и маршрутами.
// Middleware подключаются до регистрации маршрутов: gin копирует цепочку
// обработчиков в момент регистрации.
func setupRouter(cfg *config.Config, generationHandler *handler.GenerationHandler, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.RequestID())
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{defaultAllowedOrigin}
		log.Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", defaultAllowedOrigin))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	generationHandler.RegisterRoutes(router)

	return router
}
