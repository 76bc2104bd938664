package service

import (
	"context"
	"fmt"

	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/repository"
)

// PreferenceService stores a user's platform subset and order. There is no
// change broadcast: callers that save a preference re-request the home feed
// themselves.
type PreferenceService interface {
	Get(ctx context.Context, userID string) (*dto.PreferenceResponse, error)
	Save(ctx context.Context, userID string, req *dto.SavePreferenceRequest) error
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(preferenceRepo repository.PreferenceRepository, platformRepo repository.PlatformRepository) PreferenceService {
	return &preferenceService{
		preferenceRepo: preferenceRepo,
		platformRepo:   platformRepo,
	}
}

type preferenceService struct {
	preferenceRepo repository.PreferenceRepository
	platformRepo   repository.PlatformRepository
}

// Get returns the saved preference; nil when the user never saved one.
func (s *preferenceService) Get(ctx context.Context, userID string) (*dto.PreferenceResponse, error) {
	preference, err := s.preferenceRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if preference == nil {
		return nil, nil
	}
	return &dto.PreferenceResponse{
		PlatformIDs: preference.PlatformIDs,
		UpdatedAt:   preference.UpdatedAt,
	}, nil
}

// Save validates that every id refers to a known platform, then replaces the
// user's preference wholesale.
func (s *preferenceService) Save(ctx context.Context, userID string, req *dto.SavePreferenceRequest) error {
	if len(req.PlatformIDs) == 0 {
		return fmt.Errorf("platform_ids must not be empty")
	}

	known, err := s.platformRepo.FindEnabledByIDs(ctx, req.PlatformIDs)
	if err != nil {
		return err
	}
	knownIDs := make(map[string]struct{}, len(known))
	for _, p := range known {
		knownIDs[p.ID] = struct{}{}
	}
	for _, id := range req.PlatformIDs {
		if _, ok := knownIDs[id]; !ok {
			return fmt.Errorf("unknown or disabled platform %q", id)
		}
	}

	return s.preferenceRepo.Save(ctx, &entity.UserPreference{
		UserID:      userID,
		PlatformIDs: req.PlatformIDs,
	})
}
