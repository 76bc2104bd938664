package http

import (
	"net/http"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/service"
	"hotnews-aggregator/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RefreshHandler exposes the refresh trigger consumed by admin actions and
// external schedulers.
type RefreshHandler struct {
	aggregator service.AggregatorService
	logger     *logger.Logger
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(aggregator service.AggregatorService, logger *logger.Logger) *RefreshHandler {
	return &RefreshHandler{aggregator: aggregator, logger: logger}
}

// RegisterRoutes registers the refresh route to the Echo group.
func (h *RefreshHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/refresh", h.Refresh)
}

// Refresh runs one refresh cycle. Partial per-platform failures still yield
// 200 with the failure summary in the body; only a top-level error is a 500.
func (h *RefreshHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	report, err := h.aggregator.Refresh(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Refresh cycle failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.RefreshResponse{
			Success: false,
			Message: "refresh failed, please retry later",
		})
	}
	return c.JSON(http.StatusOK, report)
}
