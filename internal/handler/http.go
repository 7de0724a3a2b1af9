package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"content-server/internal/models"
	"content-server/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// GenerationHandler обрабатывает HTTP-запросы к генерациям.
type GenerationHandler struct {
	service service.GenerationService
	logger  *zap.Logger
}

// NewGenerationHandler создает обработчик генераций.
func NewGenerationHandler(svc service.GenerationService, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		service: svc,
		logger:  logger.Named("GenerationHandler"),
	}
}

// RegisterRoutes регистрирует маршруты API и документации.
func (h *GenerationHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/generations", h.listGenerations)
		api.POST("/generations", h.createGeneration)
		api.GET("/generations/:id", h.getGeneration)
		api.GET("/stats/generations", h.getStats)
		api.GET("/openapi.json", serveOpenAPISpec)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/api/openapi.json")))
}

func (h *GenerationHandler) listGenerations(c *gin.Context) {
	generations, err := h.service.ListGenerations(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if generations == nil {
		generations = []models.Generation{}
	}
	c.JSON(http.StatusOK, generations)
}

func (h *GenerationHandler) createGeneration(c *gin.Context) {
	var req CreateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: invalid request body: %v", models.ErrValidation, err))
		return
	}

	gen, err := h.service.CreateGeneration(c.Request.Context(), req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gen)
}

func (h *GenerationHandler) getGeneration(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Debug("Non-numeric generation id", zap.String("id", c.Param("id")))
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Message: notFoundMessage})
		return
	}

	gen, err := h.service.GetGeneration(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if gen == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Message: notFoundMessage})
		return
	}
	c.JSON(http.StatusOK, gen)
}

func (h *GenerationHandler) getStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleServiceError переводит ошибку сервиса в ответ {message}.
// Все ошибки, кроме отсутствия записи, отдаются как 500.
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var errResp ErrorResponse
	switch {
	case errors.Is(err, models.ErrValidation):
		errResp = ErrorResponse{Message: err.Error()}
	case errors.Is(err, models.ErrPersistence):
		errResp = ErrorResponse{Message: internalErrorMessage}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		errResp = ErrorResponse{Message: internalErrorMessage}
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
}
