package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"smartclinic-backend/internal/features/content/models"
	"smartclinic-backend/internal/features/content/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ContentRepository {
	return &postgresRepository{db: db}
}

const itemColumns = `ci.id, ci.category_id, ci.title, ci.description, ci.content_type,
		ci.duration_minutes, ci.price, ci.old_price, ci.is_premium, ci.is_free,
		ci.schedule_time, ci.max_participants, ci.current_participants, ci.instructor,
		ci.is_active, ci.created_at,
		cc.name, cc.icon, cc.color`

func (r *postgresRepository) List(ctx context.Context, filters models.ListFilters) ([]*models.ContentItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM content_items ci
		JOIN content_categories cc ON ci.category_id = cc.id
		WHERE ci.is_active
	`

	args := []interface{}{}
	argIndex := 1

	if filters.CategoryID != nil {
		query += fmt.Sprintf(" AND ci.category_id = $%d", argIndex)
		args = append(args, *filters.CategoryID)
		argIndex++
	}
	if filters.ContentType != "" {
		query += fmt.Sprintf(" AND ci.content_type = $%d", argIndex)
		args = append(args, filters.ContentType)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY ci.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM content_items ci
		JOIN content_categories cc ON ci.category_id = cc.id
		WHERE ci.id = $1 AND ci.is_active
	`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, content_type, icon, color, sort_order, is_active
		FROM content_categories
		WHERE is_active
		ORDER BY sort_order, name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		var icon, color sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.ContentType, &icon, &color, &c.SortOrder, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Icon = icon.String
		c.Color = color.String
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *postgresRepository) GetUpcoming(ctx context.Context, contentType string, within time.Duration) ([]*models.ContentItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM content_items ci
		JOIN content_categories cc ON ci.category_id = cc.id
		WHERE ci.is_active
			AND ci.content_type = $1
			AND ci.schedule_time BETWEEN NOW() AND NOW() + $2::interval
		ORDER BY ci.schedule_time
	`

	rows, err := r.db.QueryContext(ctx, query, contentType, fmt.Sprintf("%d seconds", int(within.Seconds())))
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming content: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.ContentItem, error) {
	var item models.ContentItem
	var description, instructor, catIcon, catColor sql.NullString
	var scheduleTime sql.NullTime

	err := row.Scan(
		&item.ID, &item.CategoryID, &item.Title, &description, &item.ContentType,
		&item.DurationMinutes, &item.Price, &item.OldPrice, &item.IsPremium, &item.IsFree,
		&scheduleTime, &item.MaxParticipants, &item.CurrentParticipants, &instructor,
		&item.IsActive, &item.CreatedAt,
		&item.CategoryName, &catIcon, &catColor)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.Instructor = instructor.String
	item.CategoryIcon = catIcon.String
	item.CategoryColor = catColor.String
	if scheduleTime.Valid {
		item.ScheduleTime = &scheduleTime.Time
	}

	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
