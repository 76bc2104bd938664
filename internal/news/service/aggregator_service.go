package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/provider"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/logger"
	"hotnews-aggregator/pkg/utils"
)

// HotNewsFetcher performs one bounded call against the upstream hot-news API.
// *provider.Client satisfies it; tests substitute fakes.
type HotNewsFetcher interface {
	Fetch(ctx context.Context, apiParam string, limit int) ([]provider.Item, error)
}

// AggregatorService runs refresh cycles: fan out to every selected platform,
// score the results, and reconcile each platform's day batch in the store.
type AggregatorService interface {
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error)
}

// AggregatorOptions tunes a refresh cycle.
type AggregatorOptions struct {
	MaxConcurrent int
	Score         ScoreFunc
}

// NewAggregatorService creates a new aggregator service.
func NewAggregatorService(
	platformRepo repository.PlatformRepository,
	newsRepo repository.NewsRepository,
	configSvc SystemConfigService,
	fetcher HotNewsFetcher,
	locker RefreshLocker,
	log *logger.Logger,
	opts AggregatorOptions,
) AggregatorService {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	if opts.Score == nil {
		opts.Score = RankScore
	}
	return &aggregatorService{
		platformRepo: platformRepo,
		newsRepo:     newsRepo,
		configSvc:    configSvc,
		fetcher:      fetcher,
		locker:       locker,
		logger:       log,
		opts:         opts,
	}
}

type aggregatorService struct {
	platformRepo repository.PlatformRepository
	newsRepo     repository.NewsRepository
	configSvc    SystemConfigService
	fetcher      HotNewsFetcher
	locker       RefreshLocker
	logger       *logger.Logger
	opts         AggregatorOptions
}

// platformOutcome is one platform's result within a refresh cycle.
type platformOutcome struct {
	platform entity.Platform
	inserted int
	failed   bool
	reason   string
}

// Refresh fans out to every selected platform concurrently and waits for all
// outcomes. One platform's failure or timeout never cancels or delays its
// siblings; only resolving the platform list or the fetch limit can fail the
// whole cycle.
func (s *aggregatorService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	fetchLimit, err := s.configSvc.FetchLimit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read fetch limit: %w", err)
	}

	platforms, err := s.resolvePlatforms(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve platforms: %w", err)
	}

	s.logger.Info("Starting refresh cycle",
		logger.IntField("platforms", len(platforms)),
		logger.IntField("fetch_limit", fetchLimit))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		sem      = make(chan struct{}, s.opts.MaxConcurrent)
		outcomes = make([]platformOutcome, 0, len(platforms))
	)

	for _, p := range platforms {
		p := p
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if !utils.ShouldContinue(ctx, s.logger) {
				mu.Lock()
				outcomes = append(outcomes, platformOutcome{platform: p, failed: true, reason: "cancelled"})
				mu.Unlock()
				return
			}

			outcome := s.refreshPlatform(ctx, p, fetchLimit)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
		})
	}
	wg.Wait()

	return s.buildReport(platforms, outcomes), nil
}

// refreshPlatform handles one platform end to end: map, fetch, score, and
// reconcile. All failures are converted into a tagged outcome, never an error.
func (s *aggregatorService) refreshPlatform(ctx context.Context, p entity.Platform, fetchLimit int) platformOutcome {
	apiParam, ok := provider.APIParam(p.ID)
	if !ok {
		s.logger.Warn("Platform has no API mapping, skipping",
			logger.StringField("platform", p.ID))
		return platformOutcome{platform: p, failed: true, reason: "no mapping"}
	}

	items, err := s.fetcher.Fetch(ctx, apiParam, fetchLimit)
	if err != nil {
		reason := err.Error()
		if fe, isFetchErr := err.(*provider.FetchError); isFetchErr {
			reason = fe.Reason()
		}
		s.logger.Error("Failed to fetch platform news",
			logger.StringField("platform", p.ID),
			logger.StringField("api_param", apiParam),
			logger.ErrorField(err))
		return platformOutcome{platform: p, failed: true, reason: reason}
	}

	if len(items) == 0 {
		s.logger.Info("Platform returned no items",
			logger.StringField("platform", p.ID))
		return platformOutcome{platform: p}
	}

	// Day partitions are keyed in UTC so the same moment maps to the same
	// batch regardless of where the process runs.
	now := time.Now().UTC()
	fetchedDate := utils.FormatDate(now)
	batch := s.buildBatch(p, items, now, fetchedDate)

	// Critical section keyed by (platform, date): two concurrent cycles must
	// not interleave their delete+insert pairs.
	acquired, err := s.locker.Acquire(ctx, p.ID, fetchedDate)
	if err != nil {
		s.logger.Warn("Refresh lock unavailable, proceeding without it",
			logger.StringField("platform", p.ID),
			logger.ErrorField(err))
	} else if !acquired {
		return platformOutcome{platform: p, failed: true, reason: "refresh in progress"}
	} else {
		defer s.locker.Release(ctx, p.ID, fetchedDate)
	}

	// Delete-then-insert, no incremental merge. A failed delete is only a
	// warning: duplicates are preferable to losing the fresh batch.
	if err := s.newsRepo.DeleteBatch(ctx, p.ID, fetchedDate); err != nil {
		s.logger.Warn("Failed to delete previous batch",
			logger.StringField("platform", p.ID),
			logger.StringField("fetched_date", fetchedDate),
			logger.ErrorField(err))
	}

	if err := s.newsRepo.InsertBatch(ctx, batch); err != nil {
		s.logger.Error("Failed to insert batch",
			logger.StringField("platform", p.ID),
			logger.IntField("items", len(batch)),
			logger.ErrorField(err))
		return platformOutcome{platform: p, failed: true, reason: fmt.Sprintf("insert failed: %s", err.Error())}
	}

	s.logger.Info("Platform batch stored",
		logger.StringField("platform", p.ID),
		logger.IntField("items", len(batch)))
	return platformOutcome{platform: p, inserted: len(batch)}
}

// buildBatch normalizes and scores provider items. Provider order is the
// provider's own ranking: index 0 is the hottest item.
func (s *aggregatorService) buildBatch(p entity.Platform, items []provider.Item, fetchedAt time.Time, fetchedDate string) []entity.News {
	batch := make([]entity.News, 0, len(items))
	for i, item := range items {
		rank := i + 1
		score := s.opts.Score(p, i)

		news := entity.News{
			PlatformID:  p.ID,
			Title:       utils.CleanToValidUTF8(strings.TrimSpace(item.Title)),
			URL:         item.URL,
			APIScore:    score,
			FinalScore:  score,
			HotRank:     &rank,
			PublishedAt: parsePublishTime(item.PublishTime, fetchedAt),
			FetchedAt:   fetchedAt,
			FetchedDate: fetchedDate,
		}

		if snippet := utils.SanitizeSnippet(item.Content, 1000); snippet != "" {
			news.ContentSnippet = &snippet
		}

		extra := map[string]interface{}{}
		if item.Source != "" {
			extra["source"] = item.Source
		}
		if item.MobileURL != "" {
			extra["mobile_url"] = item.MobileURL
		}
		if len(extra) > 0 {
			news.Extra = extra
		}

		batch = append(batch, news)
	}
	return batch
}

// resolvePlatforms selects the platforms for this cycle: an explicit id list,
// a category, or all enabled platforms when neither is given.
func (s *aggregatorService) resolvePlatforms(ctx context.Context, req *dto.RefreshRequest) ([]entity.Platform, error) {
	if req != nil && len(req.Platforms) > 0 {
		return s.platformRepo.FindEnabledByIDs(ctx, req.Platforms)
	}
	if req != nil && req.Category != "" {
		return s.platformRepo.FindEnabledByCategory(ctx, entity.PlatformCategory(req.Category))
	}
	return s.platformRepo.FindAll(ctx, true)
}

// buildReport aggregates per-platform outcomes into the cycle summary.
func (s *aggregatorService) buildReport(platforms []entity.Platform, outcomes []platformOutcome) *dto.RefreshResponse {
	totalInserted := 0
	totalFailed := 0
	failedPlatforms := make([]string, 0)

	for _, o := range outcomes {
		if o.failed {
			totalFailed++
			failedPlatforms = append(failedPlatforms, fmt.Sprintf("%s(%s)", o.platform.Name, o.reason))
			continue
		}
		totalInserted += o.inserted
	}
	sort.Strings(failedPlatforms)

	message := fmt.Sprintf("fetched news: inserted %d items", totalInserted)
	if totalFailed > 0 {
		message = fmt.Sprintf("fetched news: inserted %d items, %d platforms failed: %s",
			totalInserted, totalFailed, strings.Join(failedPlatforms, ", "))
	}

	s.logger.Info("Refresh cycle finished",
		logger.IntField("requested", len(platforms)),
		logger.IntField("inserted", totalInserted),
		logger.IntField("failed", totalFailed))

	return &dto.RefreshResponse{
		Success:         true,
		Message:         message,
		TotalInserted:   totalInserted,
		TotalFailed:     totalFailed,
		FailedPlatforms: failedPlatforms,
	}
}

// publishTimeLayouts are tried in order; providers are not consistent.
var publishTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parsePublishTime parses the provider's publish_time, falling back to the
// fetch time when the field is absent or unparsable.
func parsePublishTime(value string, fallback time.Time) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return &fallback
	}
	for _, layout := range publishTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return &fallback
}
