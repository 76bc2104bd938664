package http

import (
	"net/http"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/service"
	"hotnews-aggregator/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PreferenceHandler handles HTTP requests for the user's platform preference.
// Saving a preference does not push anything; the client re-requests the home
// feed after a successful save.
type PreferenceHandler struct {
	preferenceService service.PreferenceService
	logger            *logger.Logger
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService service.PreferenceService, logger *logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService, logger: logger}
}

// RegisterRoutes registers the preference routes to the Echo group.
func (h *PreferenceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetPreference)
	g.PUT("", h.SavePreference)
}

func (h *PreferenceHandler) GetPreference(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing user identity"})
	}

	preference, err := h.preferenceService.Get(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get preference", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get preference"})
	}
	if preference == nil {
		return c.JSON(http.StatusOK, dto.PreferenceResponse{PlatformIDs: []string{}})
	}
	return c.JSON(http.StatusOK, preference)
}

func (h *PreferenceHandler) SavePreference(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing user identity"})
	}

	var req dto.SavePreferenceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	if err := h.preferenceService.Save(c.Request().Context(), userID, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
