package repository

import (
	"context"
	"errors"
	"time"

	"smartclinic-backend/internal/features/content/models"
)

var ErrContentNotFound = errors.New("content not found")

type ContentRepository interface {
	// List returns active items joined with their category, newest first.
	List(ctx context.Context, filters models.ListFilters) ([]*models.ContentItem, error)
	// GetByID returns a single active item or ErrContentNotFound.
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	// GetUpcoming returns active items of the kind scheduled within
	// [now, now+within], ordered by schedule time ascending.
	GetUpcoming(ctx context.Context, contentType string, within time.Duration) ([]*models.ContentItem, error)
}
