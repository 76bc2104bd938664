package service

import (
	"context"
	"fmt"

	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/logger"
)

// PlatformService exposes platform reads and administrator edits.
type PlatformService interface {
	List(ctx context.Context, enabledOnly bool) ([]dto.PlatformResponse, error)
	Get(ctx context.Context, id string) (*dto.PlatformResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePlatformRequest) (*dto.PlatformResponse, error)
}

// NewPlatformService creates a new platform service.
func NewPlatformService(platformRepo repository.PlatformRepository, log *logger.Logger) PlatformService {
	return &platformService{platformRepo: platformRepo, logger: log}
}

type platformService struct {
	platformRepo repository.PlatformRepository
	logger       *logger.Logger
}

// List returns platforms ordered by name.
func (s *platformService) List(ctx context.Context, enabledOnly bool) ([]dto.PlatformResponse, error) {
	platforms, err := s.platformRepo.FindAll(ctx, enabledOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, mapPlatform(p))
	}
	return out, nil
}

// Get returns one platform.
func (s *platformService) Get(ctx context.Context, id string) (*dto.PlatformResponse, error) {
	platform, err := s.platformRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapPlatform(*platform)
	return &resp, nil
}

// Update applies an administrator edit. Disabling a platform removes it from
// fetching and the feed; its historical news stays.
func (s *platformService) Update(ctx context.Context, id string, req *dto.UpdatePlatformRequest) (*dto.PlatformResponse, error) {
	platform, err := s.platformRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		platform.Name = *req.Name
	}
	if req.Category != nil {
		if !entity.ValidCategory(*req.Category) {
			return nil, fmt.Errorf("invalid category %q", *req.Category)
		}
		platform.Category = entity.PlatformCategory(*req.Category)
	}
	if req.Weight != nil {
		if *req.Weight < 0 || *req.Weight > 10 {
			return nil, fmt.Errorf("weight must be between 0 and 10, got %v", *req.Weight)
		}
		platform.Weight = *req.Weight
	}
	if req.Enabled != nil {
		platform.Enabled = *req.Enabled
	}
	if req.IconURL != nil {
		platform.IconURL = req.IconURL
	}
	if req.Description != nil {
		platform.Description = req.Description
	}

	if err := s.platformRepo.Update(ctx, platform); err != nil {
		s.logger.Error("Failed to update platform",
			logger.StringField("platform", id),
			logger.ErrorField(err))
		return nil, err
	}

	resp := mapPlatform(*platform)
	return &resp, nil
}
