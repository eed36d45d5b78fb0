package service

import (
	"context"
	"errors"

	"smartclinic-backend/internal/features/engagement/models"
	"smartclinic-backend/internal/features/engagement/repository"
)

var ErrProgressNotFound = errors.New("progress not found")

type EngagementService interface {
	UpsertProgress(ctx context.Context, userID, contentID int64, update models.ProgressUpdate) (*models.Progress, error)
	GetProgress(ctx context.Context, userID, contentID int64) (*models.Progress, error)
	ListProgress(ctx context.Context, userID int64) ([]*models.Progress, error)
	// ToggleFavorite adds or removes the relation; both directions are
	// idempotent so double-taps converge.
	ToggleFavorite(ctx context.Context, userID, contentID int64, add bool) error
	ListFavorites(ctx context.Context, userID int64) ([]*models.Favorite, error)
}

type engagementService struct {
	repo repository.EngagementRepository
}

func NewEngagementService(repo repository.EngagementRepository) EngagementService {
	return &engagementService{repo: repo}
}

func (s *engagementService) UpsertProgress(ctx context.Context, userID, contentID int64, update models.ProgressUpdate) (*models.Progress, error) {
	if update.ProgressPercent < 0 {
		update.ProgressPercent = 0
	}
	if update.ProgressPercent > 100 {
		update.ProgressPercent = 100
	}

	return s.repo.UpsertProgress(ctx, userID, contentID, update)
}

func (s *engagementService) GetProgress(ctx context.Context, userID, contentID int64) (*models.Progress, error) {
	progress, err := s.repo.GetProgress(ctx, userID, contentID)
	if err != nil {
		if errors.Is(err, repository.ErrProgressNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

func (s *engagementService) ListProgress(ctx context.Context, userID int64) ([]*models.Progress, error) {
	return s.repo.ListProgress(ctx, userID)
}

func (s *engagementService) ToggleFavorite(ctx context.Context, userID, contentID int64, add bool) error {
	if add {
		return s.repo.AddFavorite(ctx, userID, contentID)
	}
	return s.repo.RemoveFavorite(ctx, userID, contentID)
}

func (s *engagementService) ListFavorites(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	return s.repo.ListFavorites(ctx, userID)
}
