package repository

import (
	"context"
	"errors"

	"smartclinic-backend/internal/features/engagement/models"
)

var ErrProgressNotFound = errors.New("progress not found")

type EngagementRepository interface {
	// UpsertProgress inserts or updates the record for the (user, item)
	// pair. The completed timestamp is set on the first false→true flip
	// and preserved on every later write.
	UpsertProgress(ctx context.Context, userID, contentID int64, update models.ProgressUpdate) (*models.Progress, error)
	GetProgress(ctx context.Context, userID, contentID int64) (*models.Progress, error)
	ListProgress(ctx context.Context, userID int64) ([]*models.Progress, error)
	// AddFavorite is a no-op when the relation already exists.
	AddFavorite(ctx context.Context, userID, contentID int64) error
	// RemoveFavorite is a no-op when the relation does not exist.
	RemoveFavorite(ctx context.Context, userID, contentID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]*models.Favorite, error)
}
