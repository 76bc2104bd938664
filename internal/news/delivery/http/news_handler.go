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

// headerUserID carries the opaque user identity resolved by the upstream
// identity provider.
const headerUserID = "X-User-ID"

// NewsHandler handles HTTP requests for the news feed.
type NewsHandler struct {
	feedService service.FeedService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(feedService service.FeedService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{feedService: feedService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetFeed)
	g.GET("/hot", h.GetHotNews)
	g.GET("/home", h.GetHomeFeed)
	g.GET("/:id", h.GetNewsByID)
}

// GetFeed returns a filtered, sorted, paginated page of news.
func (h *NewsHandler) GetFeed(c echo.Context) error {
	var params dto.NewsQueryParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	items, err := h.feedService.GetFeed(c.Request().Context(), params)
	if err != nil {
		h.logger.Error("Failed to get feed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get news"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetHotNews returns the top items across all platforms.
func (h *NewsHandler) GetHotNews(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	items, err := h.feedService.GetHotNews(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get hot news", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get hot news"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetHomeFeed returns one column per platform, honoring the caller's saved
// platform preference when one exists.
func (h *NewsHandler) GetHomeFeed(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	category := c.QueryParam("category")

	feed, err := h.feedService.GetHomeFeed(c.Request().Context(), userID, category)
	if err != nil {
		h.logger.Error("Failed to get home feed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get home feed"})
	}
	return c.JSON(http.StatusOK, feed)
}

// GetNewsByID returns a single news item.
func (h *NewsHandler) GetNewsByID(c echo.Context) error {
	item, err := h.feedService.GetNewsByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "News not found"})
	}
	if err != nil {
		h.logger.Error("Failed to get news by id", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get news"})
	}
	return c.JSON(http.StatusOK, item)
}
