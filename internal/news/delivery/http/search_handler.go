package http

import (
	"net/http"
	"strconv"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/service"
	"hotnews-aggregator/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SearchHandler handles HTTP requests for news search.
type SearchHandler struct {
	searchService service.SearchService
	logger        *logger.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService service.SearchService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{searchService: searchService, logger: logger}
}

// RegisterRoutes registers the search routes to the Echo group.
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.Search)
	g.GET("/hot", h.HotKeywords)
	g.GET("/history", h.UserHistory)
}

// Search searches stored news by title. An anonymous caller's keyword is
// recorded against the global bucket.
func (h *SearchHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("q")
	if keyword == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing query parameter q"})
	}

	var userID *string
	if id := c.Request().Header.Get(headerUserID); id != "" {
		userID = &id
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	items, err := h.searchService.Search(c.Request().Context(), userID, keyword, limit, offset)
	if err != nil {
		h.logger.Error("Search failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Search failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// HotKeywords returns the most searched keywords.
func (h *SearchHandler) HotKeywords(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	keywords, err := h.searchService.HotKeywords(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get hot keywords", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get hot keywords"})
	}
	return c.JSON(http.StatusOK, keywords)
}

// UserHistory returns the caller's recent searches.
func (h *SearchHandler) UserHistory(c echo.Context) error {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing user identity"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	history, err := h.searchService.UserHistory(c.Request().Context(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to get search history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get search history"})
	}
	return c.JSON(http.StatusOK, history)
}
