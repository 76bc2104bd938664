package http

import (
	"net/http"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/service"
	"hotnews-aggregator/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ConfigHandler handles HTTP requests for system configuration.
type ConfigHandler struct {
	configService service.SystemConfigService
	logger        *logger.Logger
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(configService service.SystemConfigService, logger *logger.Logger) *ConfigHandler {
	return &ConfigHandler{configService: configService, logger: logger}
}

// RegisterRoutes registers the config routes to the Echo group.
func (h *ConfigHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListConfigs)
	g.PUT("/:key", h.UpdateConfig)
}

func (h *ConfigHandler) ListConfigs(c echo.Context) error {
	configs, err := h.configService.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list configs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list configs"})
	}
	return c.JSON(http.StatusOK, configs)
}

func (h *ConfigHandler) UpdateConfig(c echo.Context) error {
	var req dto.UpdateConfigRequest
	if err := c.Bind(&req); err != nil || req.Value == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	if err := h.configService.Update(c.Request().Context(), c.Param("key"), req.Value); err != nil {
		h.logger.Error("Failed to update config", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update config"})
	}
	return c.NoContent(http.StatusNoContent)
}
