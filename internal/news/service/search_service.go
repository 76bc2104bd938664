package service

import (
	"context"
	"strings"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/logger"
)

// SearchService searches stored news by title and keeps per-keyword history.
type SearchService interface {
	Search(ctx context.Context, userID *string, keyword string, limit, offset int) ([]dto.NewsResponse, error)
	HotKeywords(ctx context.Context, limit int) ([]dto.SearchKeywordResponse, error)
	UserHistory(ctx context.Context, userID string, limit int) ([]dto.SearchKeywordResponse, error)
}

// NewSearchService creates a new search service.
func NewSearchService(newsRepo repository.NewsRepository, historyRepo repository.SearchHistoryRepository, log *logger.Logger) SearchService {
	return &searchService{
		newsRepo:    newsRepo,
		historyRepo: historyRepo,
		logger:      log,
	}
}

type searchService struct {
	newsRepo    repository.NewsRepository
	historyRepo repository.SearchHistoryRepository
	logger      *logger.Logger
}

// Search runs a title search ordered by score and records the keyword. A
// failed history write never fails the search itself.
func (s *searchService) Search(ctx context.Context, userID *string, keyword string, limit, offset int) ([]dto.NewsResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []dto.NewsResponse{}, nil
	}

	items, err := s.newsRepo.Find(ctx, repository.NewsQuery{
		Keyword: keyword,
		Sort:    repository.SortHot,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}

	if err := s.historyRepo.Record(ctx, userID, keyword); err != nil {
		s.logger.Warn("Failed to record search history",
			logger.StringField("keyword", keyword),
			logger.ErrorField(err))
	}

	return mapNewsList(items), nil
}

// HotKeywords returns the most searched keywords across all users.
func (s *searchService) HotKeywords(ctx context.Context, limit int) ([]dto.SearchKeywordResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.historyRepo.FindTopKeywords(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapSearchRows(rows), nil
}

// UserHistory returns a user's recent searches.
func (s *searchService) UserHistory(ctx context.Context, userID string, limit int) ([]dto.SearchKeywordResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.historyRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return mapSearchRows(rows), nil
}
