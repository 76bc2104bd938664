package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/common"
	"hotnews-aggregator/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// FeedService assembles the user-facing feed from already-persisted items. It
// performs no network calls; refreshing is the aggregator's job.
type FeedService interface {
	GetFeed(ctx context.Context, params dto.NewsQueryParams) ([]dto.NewsResponse, error)
	GetNewsByID(ctx context.Context, id string) (*dto.NewsResponse, error)
	GetHotNews(ctx context.Context, limit int) ([]dto.NewsResponse, error)
	GetHomeFeed(ctx context.Context, userID, category string) ([]dto.PlatformFeed, error)
}

// NewFeedService creates a new feed service. redisClient may be nil; the hot
// feed cache is then skipped.
func NewFeedService(
	newsRepo repository.NewsRepository,
	platformRepo repository.PlatformRepository,
	preferenceRepo repository.PreferenceRepository,
	redisClient *redis.Client,
	log *logger.Logger,
	hotCacheTTL time.Duration,
) FeedService {
	if hotCacheTTL <= 0 {
		hotCacheTTL = time.Minute
	}
	return &feedService{
		newsRepo:       newsRepo,
		platformRepo:   platformRepo,
		preferenceRepo: preferenceRepo,
		redisClient:    redisClient,
		logger:         log,
		hotCacheTTL:    hotCacheTTL,
	}
}

type feedService struct {
	newsRepo       repository.NewsRepository
	platformRepo   repository.PlatformRepository
	preferenceRepo repository.PreferenceRepository
	redisClient    *redis.Client
	logger         *logger.Logger
	hotCacheTTL    time.Duration
}

const homeFeedItemsPerPlatform = 20

// GetFeed returns one page of the filtered, sorted feed.
func (s *feedService) GetFeed(ctx context.Context, params dto.NewsQueryParams) ([]dto.NewsResponse, error) {
	sortMode := repository.SortHot
	if params.Sort == string(repository.SortTime) {
		sortMode = repository.SortTime
	}

	items, err := s.newsRepo.Find(ctx, repository.NewsQuery{
		PlatformID: params.PlatformID,
		Category:   entity.PlatformCategory(params.Category),
		Keyword:    params.Keyword,
		Sort:       sortMode,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return nil, err
	}
	return mapNewsList(items), nil
}

// GetNewsByID returns a single item with its platform.
func (s *feedService) GetNewsByID(ctx context.Context, id string) (*dto.NewsResponse, error) {
	item, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapNews(*item)
	return &resp, nil
}

// GetHotNews returns the top items across all platforms, served from a short
// Redis cache when possible. Cache errors fall through to the store.
func (s *feedService) GetHotNews(ctx context.Context, limit int) ([]dto.NewsResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	cacheKey := fmt.Sprintf(common.RedisKeyHotFeed, limit)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var out []dto.NewsResponse
			if err := json.Unmarshal(cached, &out); err == nil {
				return out, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("Hot feed cache read failed", logger.ErrorField(err))
		}
	}

	items, err := s.newsRepo.FindHot(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := mapNewsList(items)

	if s.redisClient != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, payload, s.hotCacheTTL).Err(); err != nil {
				s.logger.Warn("Hot feed cache write failed", logger.ErrorField(err))
			}
		}
	}

	return out, nil
}

// GetHomeFeed returns one column per platform. With a saved preference only
// the chosen platforms appear, in exactly the saved order; otherwise all
// enabled platforms (for the category, if given) appear in name order.
func (s *feedService) GetHomeFeed(ctx context.Context, userID, category string) ([]dto.PlatformFeed, error) {
	var (
		platforms []entity.Platform
		err       error
	)
	if category != "" {
		platforms, err = s.platformRepo.FindEnabledByCategory(ctx, entity.PlatformCategory(category))
	} else {
		platforms, err = s.platformRepo.FindAll(ctx, true)
	}
	if err != nil {
		return nil, err
	}

	if userID != "" {
		preference, err := s.preferenceRepo.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if preference != nil && len(preference.PlatformIDs) > 0 {
			platforms = applyPreference(platforms, preference.PlatformIDs)
		}
	}

	feed := make([]dto.PlatformFeed, 0, len(platforms))
	for _, p := range platforms {
		items, err := s.newsRepo.FindLatestByPlatform(ctx, p.ID, homeFeedItemsPerPlatform)
		if err != nil {
			return nil, err
		}
		feed = append(feed, dto.PlatformFeed{
			Platform: mapPlatform(p),
			Items:    mapNewsList(latestBatch(items)),
		})
	}
	return feed, nil
}

// latestBatch trims a date-descending item list to the newest day's batch so
// a short column is never backfilled with the previous day's rows.
func latestBatch(items []entity.News) []entity.News {
	if len(items) == 0 {
		return items
	}
	newest := items[0].FetchedDate
	for i, it := range items {
		if it.FetchedDate != newest {
			return items[:i]
		}
	}
	return items
}

// applyPreference keeps only the preferred platforms and orders them by their
// position in the preference list.
func applyPreference(platforms []entity.Platform, preferredIDs []string) []entity.Platform {
	byID := make(map[string]entity.Platform, len(platforms))
	for _, p := range platforms {
		byID[p.ID] = p
	}

	out := make([]entity.Platform, 0, len(preferredIDs))
	for _, id := range preferredIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
