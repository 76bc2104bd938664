package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/common"
	"hotnews-aggregator/pkg/logger"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// SystemConfigService reads and updates administrator-owned settings. Reads
// are cached in memory; the pipeline consults FetchLimit on every cycle.
type SystemConfigService interface {
	FetchLimit(ctx context.Context) (int, error)
	GetAll(ctx context.Context) ([]dto.SystemConfigResponse, error)
	Update(ctx context.Context, key, value string) error
}

// NewSystemConfigService creates a new system config service.
func NewSystemConfigService(configRepo repository.SystemConfigRepository, log *logger.Logger) SystemConfigService {
	return &systemConfigService{
		configRepo: configRepo,
		logger:     log,
		cache:      cache.New(5*time.Minute, 10*time.Minute),
	}
}

type systemConfigService struct {
	configRepo repository.SystemConfigRepository
	logger     *logger.Logger
	cache      *cache.Cache
}

// FetchLimit returns how many items the pipeline keeps per platform per batch.
// A missing or unparsable value falls back to the default; only a store error
// propagates, failing the whole cycle.
func (s *systemConfigService) FetchLimit(ctx context.Context) (int, error) {
	if cached, found := s.cache.Get(common.ConfigKeyNewsFetchLimit); found {
		return cached.(int), nil
	}

	value, err := s.configRepo.Get(ctx, common.ConfigKeyNewsFetchLimit)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.DefaultNewsFetchLimit, nil
	}
	if err != nil {
		return 0, err
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		s.logger.Warn("Unparsable news_fetch_limit, using default",
			logger.StringField("value", value))
		return common.DefaultNewsFetchLimit, nil
	}

	s.cache.Set(common.ConfigKeyNewsFetchLimit, limit, cache.DefaultExpiration)
	return limit, nil
}

// GetAll retrieves every config entry.
func (s *systemConfigService) GetAll(ctx context.Context) ([]dto.SystemConfigResponse, error) {
	configs, err := s.configRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SystemConfigResponse, 0, len(configs))
	for _, c := range configs {
		out = append(out, dto.SystemConfigResponse{
			Key:       c.Key,
			Value:     c.Value,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return out, nil
}

// Update upserts a config entry and drops it from the cache.
func (s *systemConfigService) Update(ctx context.Context, key, value string) error {
	if err := s.configRepo.Upsert(ctx, key, value); err != nil {
		return err
	}
	s.cache.Delete(key)
	return nil
}
