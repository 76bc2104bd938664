package service

import (
	"context"
	"fmt"
	"time"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/logger"
	"hotnews-aggregator/pkg/telegram"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler runs full refresh cycles on a cron schedule and prunes
// expired news afterwards. Each run is an independent cycle; nothing is
// carried over between runs.
type RefreshScheduler struct {
	cron          *cron.Cron
	aggregator    AggregatorService
	newsRepo      repository.NewsRepository
	notifier      telegram.Notifier
	logger        *logger.Logger
	refreshCron   string
	retentionDays int
}

// NewRefreshScheduler creates a scheduler. An empty cron expression disables
// periodic refreshes; notifier may be a noop.
func NewRefreshScheduler(
	aggregator AggregatorService,
	newsRepo repository.NewsRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
	refreshCron string,
	retentionDays int,
) *RefreshScheduler {
	return &RefreshScheduler{
		cron:          cron.New(),
		aggregator:    aggregator,
		newsRepo:      newsRepo,
		notifier:      notifier,
		logger:        log,
		refreshCron:   refreshCron,
		retentionDays: retentionDays,
	}
}

// Start registers the cron entry and starts the scheduler. Returns an error
// only for an invalid cron expression.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	if s.refreshCron == "" {
		s.logger.Info("Periodic refresh disabled, no cron expression configured")
		return nil
	}

	_, err := s.cron.AddFunc(s.refreshCron, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid refresh cron %q: %w", s.refreshCron, err)
	}

	s.cron.Start()
	s.logger.Info("Refresh scheduler started", logger.StringField("cron", s.refreshCron))
	return nil
}

// Stop stops the scheduler and waits for a running cycle to finish.
func (s *RefreshScheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Refresh scheduler stopped")
}

func (s *RefreshScheduler) runCycle(ctx context.Context) {
	report, err := s.aggregator.Refresh(ctx, &dto.RefreshRequest{})
	if err != nil {
		s.logger.Error("Scheduled refresh failed", logger.ErrorField(err))
		s.Notify(fmt.Sprintf("hot news refresh failed: %s", err.Error()))
		return
	}

	s.Notify(FormatRefreshReport(report))
	s.prune(ctx)
}

// prune removes news older than the retention window; 0 keeps rows forever.
func (s *RefreshScheduler) prune(ctx context.Context) {
	if s.retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	removed, err := s.newsRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to prune expired news", logger.ErrorField(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Pruned expired news",
			logger.Field("removed", removed),
			logger.IntField("retention_days", s.retentionDays))
	}
}

// Notify sends a message through the notifier; failures are logged, never fatal.
func (s *RefreshScheduler) Notify(text string) {
	if err := s.notifier.SendMessage(text); err != nil {
		s.logger.Warn("Failed to send refresh notification", logger.ErrorField(err))
	}
}

// FormatRefreshReport renders a refresh summary for notifications.
func FormatRefreshReport(report *dto.RefreshResponse) string {
	if report.TotalFailed == 0 {
		return fmt.Sprintf("*Hot news refresh*\nInserted: %d items, all platforms ok", report.TotalInserted)
	}
	msg := fmt.Sprintf("*Hot news refresh*\nInserted: %d items\nFailed platforms (%d):",
		report.TotalInserted, report.TotalFailed)
	for _, fp := range report.FailedPlatforms {
		msg += "\n- " + fp
	}
	return msg
}
