package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"smartclinic-backend/internal/features/billing/models"
	"smartclinic-backend/internal/features/billing/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.BillingRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetPromoByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `
		SELECT id, code, discount_percent, discount_amount, max_uses, used_count,
			valid_from, valid_until, is_active
		FROM promo_codes
		WHERE code = $1
	`

	var p models.PromoCode
	var validFrom, validUntil sql.NullTime
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&p.ID, &p.Code, &p.DiscountPercent, &p.DiscountAmount, &p.MaxUses, &p.UsedCount,
		&validFrom, &validUntil, &p.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	if validFrom.Valid {
		p.ValidFrom = &validFrom.Time
	}
	if validUntil.Valid {
		p.ValidUntil = &validUntil.Time
	}
	return &p, nil
}

// ConsumePromo relies on the WHERE guard so two concurrent applications
// of the last remaining use cannot both succeed.
func (r *postgresRepository) ConsumePromo(ctx context.Context, code string) error {
	query := `
		UPDATE promo_codes
		SET used_count = used_count + 1
		WHERE code = $1 AND (max_uses = 0 OR used_count < max_uses)
	`

	result, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to consume promo code: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrPromoExhausted
	}

	return nil
}

func (r *postgresRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, plan_months, amount, promo_code, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.UserID, payment.PlanMonths, payment.Amount, payment.PromoCode, payment.Status)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	query := `
		SELECT id, user_id, plan_months, amount, promo_code, status, created_at, paid_at
		FROM payments
		WHERE id = $1
	`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

func (r *postgresRepository) MarkPaid(ctx context.Context, id string) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $2, paid_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING id, user_id, plan_months, amount, promo_code, status, created_at, paid_at
	`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id, models.PaymentPaid, models.PaymentPending))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to mark payment paid: %w", err)
	}
	return payment, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	var paidAt sql.NullTime

	err := row.Scan(&p.ID, &p.UserID, &p.PlanMonths, &p.Amount, &p.PromoCode, &p.Status, &p.CreatedAt, &paidAt)
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	return &p, nil
}
