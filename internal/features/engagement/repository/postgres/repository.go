package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"smartclinic-backend/internal/features/engagement/models"
	"smartclinic-backend/internal/features/engagement/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.EngagementRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertProgress(ctx context.Context, userID, contentID int64, update models.ProgressUpdate) (*models.Progress, error) {
	// completed_at keeps its first value: COALESCE prefers the stored
	// timestamp, and NOW() is only supplied on a completed write.
	query := `
		INSERT INTO user_progress (user_id, content_id, progress_percent, seconds_watched, completed, last_position, last_watched_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), CASE WHEN $5 THEN NOW() END)
		ON CONFLICT (user_id, content_id) DO UPDATE SET
			progress_percent = EXCLUDED.progress_percent,
			seconds_watched = EXCLUDED.seconds_watched,
			completed = user_progress.completed OR EXCLUDED.completed,
			last_position = EXCLUDED.last_position,
			last_watched_at = NOW(),
			completed_at = COALESCE(user_progress.completed_at, CASE WHEN EXCLUDED.completed THEN NOW() END)
		RETURNING id, user_id, content_id, progress_percent, seconds_watched, completed,
			last_position, rating, review, last_watched_at, completed_at
	`

	row := r.db.QueryRowContext(ctx, query,
		userID, contentID, update.ProgressPercent, update.SecondsWatched, update.Completed, update.LastPosition)

	progress, err := scanProgress(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}
	return progress, nil
}

func (r *postgresRepository) GetProgress(ctx context.Context, userID, contentID int64) (*models.Progress, error) {
	query := `
		SELECT id, user_id, content_id, progress_percent, seconds_watched, completed,
			last_position, rating, review, last_watched_at, completed_at
		FROM user_progress
		WHERE user_id = $1 AND content_id = $2
	`

	progress, err := scanProgress(r.db.QueryRowContext(ctx, query, userID, contentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

func (r *postgresRepository) ListProgress(ctx context.Context, userID int64) ([]*models.Progress, error) {
	query := `
		SELECT up.id, up.user_id, up.content_id, up.progress_percent, up.seconds_watched,
			up.completed, up.last_position, up.rating, up.review, up.last_watched_at, up.completed_at,
			ci.title, ci.content_type, cc.name
		FROM user_progress up
		JOIN content_items ci ON up.content_id = ci.id
		JOIN content_categories cc ON ci.category_id = cc.id
		WHERE up.user_id = $1
		ORDER BY up.last_watched_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var records []*models.Progress
	for rows.Next() {
		var p models.Progress
		var completedAt sql.NullTime
		err := rows.Scan(
			&p.ID, &p.UserID, &p.ContentID, &p.ProgressPercent, &p.SecondsWatched,
			&p.Completed, &p.LastPosition, &p.Rating, &p.Review, &p.LastWatchedAt, &completedAt,
			&p.ContentTitle, &p.ContentType, &p.CategoryName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		if completedAt.Valid {
			p.CompletedAt = &completedAt.Time
		}
		records = append(records, &p)
	}

	return records, rows.Err()
}

func (r *postgresRepository) AddFavorite(ctx context.Context, userID, contentID int64) error {
	query := `
		INSERT INTO user_favorites (user_id, content_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, content_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, contentID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveFavorite(ctx context.Context, userID, contentID int64) error {
	query := `DELETE FROM user_favorites WHERE user_id = $1 AND content_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, contentID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListFavorites(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	query := `
		SELECT uf.id, uf.user_id, uf.content_id, uf.created_at,
			ci.title, ci.content_type, cc.name
		FROM user_favorites uf
		JOIN content_items ci ON uf.content_id = ci.id
		JOIN content_categories cc ON ci.category_id = cc.id
		WHERE uf.user_id = $1
		ORDER BY uf.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*models.Favorite
	for rows.Next() {
		var f models.Favorite
		err := rows.Scan(&f.ID, &f.UserID, &f.ContentID, &f.CreatedAt,
			&f.ContentTitle, &f.ContentType, &f.CategoryName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, &f)
	}

	return favorites, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProgress(row rowScanner) (*models.Progress, error) {
	var p models.Progress
	var completedAt sql.NullTime

	err := row.Scan(
		&p.ID, &p.UserID, &p.ContentID, &p.ProgressPercent, &p.SecondsWatched,
		&p.Completed, &p.LastPosition, &p.Rating, &p.Review, &p.LastWatchedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}
	return &p, nil
}
