package http

import (
	"errors"
	"net/http"
	"strconv"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/service"
	"hotnews-aggregator/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FavoriteHandler handles HTTP requests for user favorites.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
	logger          *logger.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService service.FavoriteService, logger *logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, logger: logger}
}

// RegisterRoutes registers the favorite routes to the Echo group.
func (h *FavoriteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListFavorites)
	g.POST("", h.AddFavorite)
	g.DELETE("/:newsID", h.RemoveFavorite)
	g.GET("/:newsID/status", h.GetFavoriteStatus)
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing user identity"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	favorites, err := h.favoriteService.List(c.Request().Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list favorites", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list favorites"})
	}
	return c.JSON(http.StatusOK, favorites)
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing user identity"})
	}

	var req dto.AddFavoriteRequest
	if err := c.Bind(&req); err != nil || req.NewsID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	err := h.favoriteService.Add(c.Request().Context(), userID, req.NewsID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "News not found"})
	}
	if err != nil {
		h.logger.Error("Failed to add favorite", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add favorite"})
	}
	return c.NoContent(http.StatusCreated)
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing user identity"})
	}

	if err := h.favoriteService.Remove(c.Request().Context(), userID, c.Param("newsID")); err != nil {
		h.logger.Error("Failed to remove favorite", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to remove favorite"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FavoriteHandler) GetFavoriteStatus(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing user identity"})
	}

	favorited, err := h.favoriteService.IsFavorited(c.Request().Context(), userID, c.Param("newsID"))
	if err != nil {
		h.logger.Error("Failed to check favorite", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to check favorite"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorited": favorited})
}
