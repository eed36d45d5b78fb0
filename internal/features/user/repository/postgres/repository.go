package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"smartclinic-backend/internal/features/user/models"
	"smartclinic-backend/internal/features/user/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

const userColumns = `id, telegram_id, username, first_name, last_name, email, phone, city,
		specialty, experience, subscription_tier, subscription_ends_at, auto_renew,
		is_active, last_active, created_at, updated_at`

// Upsert merges the profile by telegram identity. Identity fields always
// win; survey fields keep the stored value unless a new one is provided.
func (r *postgresRepository) Upsert(ctx context.Context, id models.Identity, survey models.SurveyUpdate) (*models.User, error) {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, email, phone, city, specialty, experience, last_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (telegram_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = COALESCE(EXCLUDED.email, users.email),
			phone = COALESCE(EXCLUDED.phone, users.phone),
			city = COALESCE(EXCLUDED.city, users.city),
			specialty = COALESCE(EXCLUDED.specialty, users.specialty),
			experience = COALESCE(EXCLUDED.experience, users.experience),
			last_active = NOW(),
			updated_at = NOW()
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		id.TelegramID, id.Username, id.FirstName, id.LastName,
		survey.Email, survey.Phone, survey.City, survey.Specialty, survey.Experience)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *postgresRepository) UpdateSubscription(ctx context.Context, telegramID int64, tier string, endsAt time.Time, autoRenew bool) error {
	query := `
		UPDATE users
		SET subscription_tier = $2, subscription_ends_at = $3, auto_renew = $4, updated_at = NOW()
		WHERE telegram_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, telegramID, tier, endsAt, autoRenew)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetAutoRenew flips the flag and returns the new value.
func (r *postgresRepository) SetAutoRenew(ctx context.Context, telegramID int64, autoRenew bool) (bool, error) {
	query := `
		UPDATE users SET auto_renew = $2, updated_at = NOW()
		WHERE telegram_id = $1
		RETURNING auto_renew
	`

	var value bool
	if err := r.db.QueryRowContext(ctx, query, telegramID, autoRenew).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return false, repository.ErrUserNotFound
		}
		return false, fmt.Errorf("failed to set auto_renew: %w", err)
	}
	return value, nil
}

func (r *postgresRepository) ArchiveInactive(ctx context.Context, olderThan time.Duration) ([]int64, error) {
	query := `
		UPDATE users
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active AND last_active < NOW() - $1::interval
		RETURNING telegram_id
	`

	rows, err := r.db.QueryContext(ctx, query, fmt.Sprintf("%d seconds", int(olderThan.Seconds())))
	if err != nil {
		return nil, fmt.Errorf("failed to archive inactive users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan archived user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *postgresRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE is_active").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var username, firstName, lastName sql.NullString
	var endsAt sql.NullTime

	err := row.Scan(
		&user.ID, &user.TelegramID, &username, &firstName, &lastName,
		&user.Email, &user.Phone, &user.City, &user.Specialty, &user.Experience,
		&user.SubscriptionTier, &endsAt, &user.AutoRenew,
		&user.IsActive, &user.LastActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	user.Username = username.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	if endsAt.Valid {
		user.SubscriptionEndsAt = &endsAt.Time
	}

	return &user, nil
}
