package http

import (
	"errors"
	"net/http"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/service"
	"hotnews-aggregator/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PlatformHandler handles HTTP requests for platforms.
type PlatformHandler struct {
	platformService service.PlatformService
	logger          *logger.Logger
}

// NewPlatformHandler creates a new PlatformHandler.
func NewPlatformHandler(platformService service.PlatformService, logger *logger.Logger) *PlatformHandler {
	return &PlatformHandler{platformService: platformService, logger: logger}
}

// RegisterRoutes registers the platform routes to the Echo group.
func (h *PlatformHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListPlatforms)
	g.GET("/:id", h.GetPlatform)
	g.PUT("/:id", h.UpdatePlatform)
}

// ListPlatforms returns all platforms; ?enabled=true restricts to enabled ones.
func (h *PlatformHandler) ListPlatforms(c echo.Context) error {
	enabledOnly := c.QueryParam("enabled") == "true"

	platforms, err := h.platformService.List(c.Request().Context(), enabledOnly)
	if err != nil {
		h.logger.Error("Failed to list platforms", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list platforms"})
	}
	return c.JSON(http.StatusOK, platforms)
}

// GetPlatform returns a single platform.
func (h *PlatformHandler) GetPlatform(c echo.Context) error {
	platform, err := h.platformService.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Platform not found"})
	}
	if err != nil {
		h.logger.Error("Failed to get platform", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get platform"})
	}
	return c.JSON(http.StatusOK, platform)
}

// UpdatePlatform applies an administrator edit to a platform.
func (h *PlatformHandler) UpdatePlatform(c echo.Context) error {
	var req dto.UpdatePlatformRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	platform, err := h.platformService.Update(c.Request().Context(), c.Param("id"), &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Platform not found"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, platform)
}
