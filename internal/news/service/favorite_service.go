package service

import (
	"context"

	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/logger"
)

// FavoriteService manages a user's saved news items.
type FavoriteService interface {
	Add(ctx context.Context, userID, newsID string) error
	Remove(ctx context.Context, userID, newsID string) error
	List(ctx context.Context, userID string, limit, offset int) ([]dto.FavoriteResponse, error)
	IsFavorited(ctx context.Context, userID, newsID string) (bool, error)
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, newsRepo repository.NewsRepository, log *logger.Logger) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		newsRepo:     newsRepo,
		logger:       log,
	}
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	newsRepo     repository.NewsRepository
	logger       *logger.Logger
}

// Add saves a news item for the user. The news must exist; duplicates are a
// no-op.
func (s *favoriteService) Add(ctx context.Context, userID, newsID string) error {
	if _, err := s.newsRepo.FindByID(ctx, newsID); err != nil {
		return err
	}
	return s.favoriteRepo.Create(ctx, &entity.UserFavorite{
		UserID: userID,
		NewsID: newsID,
	})
}

// Remove deletes the favorite pair.
func (s *favoriteService) Remove(ctx context.Context, userID, newsID string) error {
	return s.favoriteRepo.Delete(ctx, userID, newsID)
}

// List returns a page of the user's favorites, newest first.
func (s *favoriteService) List(ctx context.Context, userID string, limit, offset int) ([]dto.FavoriteResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	favorites, err := s.favoriteRepo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		resp := dto.FavoriteResponse{
			ID:        f.ID,
			NewsID:    f.NewsID,
			CreatedAt: f.CreatedAt,
		}
		if f.News != nil {
			news := mapNews(*f.News)
			resp.News = &news
		}
		out = append(out, resp)
	}
	return out, nil
}

// IsFavorited reports whether the user saved the news item.
func (s *favoriteService) IsFavorited(ctx context.Context, userID, newsID string) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, newsID)
}
