package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema when DB_AUTO_MIGRATE is enabled. Statements
// are idempotent so restarts are safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		telegram_id BIGINT NOT NULL UNIQUE,
		username VARCHAR(64),
		first_name VARCHAR(128),
		last_name VARCHAR(128),
		email VARCHAR(255),
		phone VARCHAR(32),
		city VARCHAR(128),
		specialty VARCHAR(128),
		experience VARCHAR(64),
		subscription_tier VARCHAR(16) NOT NULL DEFAULT 'guest',
		subscription_ends_at TIMESTAMPTZ,
		auto_renew BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_active TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS content_categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		content_type VARCHAR(32) NOT NULL,
		icon VARCHAR(16),
		color VARCHAR(16),
		sort_order INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS content_items (
		id BIGSERIAL PRIMARY KEY,
		category_id BIGINT NOT NULL REFERENCES content_categories(id),
		title VARCHAR(200) NOT NULL,
		description TEXT,
		content_type VARCHAR(32) NOT NULL,
		duration_minutes INT,
		price NUMERIC(10,2),
		old_price NUMERIC(10,2),
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		is_free BOOLEAN NOT NULL DEFAULT FALSE,
		schedule_time TIMESTAMPTZ,
		max_participants INT,
		current_participants INT NOT NULL DEFAULT 0,
		instructor VARCHAR(128),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (NOT (is_free AND is_premium))
	)`,

	`CREATE TABLE IF NOT EXISTS user_progress (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(telegram_id),
		content_id BIGINT NOT NULL REFERENCES content_items(id),
		progress_percent INT NOT NULL DEFAULT 0,
		seconds_watched INT NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		last_position INT NOT NULL DEFAULT 0,
		rating INT,
		review TEXT,
		last_watched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ,
		UNIQUE (user_id, content_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_favorites (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(telegram_id),
		content_id BIGINT NOT NULL REFERENCES content_items(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, content_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_questions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(telegram_id),
		question TEXT NOT NULL,
		attachment_ref VARCHAR(255),
		topic VARCHAR(128),
		content_id BIGINT REFERENCES content_items(id),
		status VARCHAR(16) NOT NULL DEFAULT 'new',
		admin_response TEXT,
		responded_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS promo_codes (
		id BIGSERIAL PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		discount_percent INT,
		discount_amount NUMERIC(10,2),
		max_uses INT NOT NULL DEFAULT 0,
		used_count INT NOT NULL DEFAULT 0,
		valid_from TIMESTAMPTZ,
		valid_until TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK ((discount_percent IS NULL) <> (discount_amount IS NULL))
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(telegram_id),
		plan_months INT NOT NULL,
		amount NUMERIC(10,2) NOT NULL,
		promo_code VARCHAR(64),
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		paid_at TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS idx_content_items_category ON content_items(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_schedule ON content_items(schedule_time) WHERE schedule_time IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_user_questions_status ON user_questions(status)`,
	`CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active) WHERE is_active`,
}
