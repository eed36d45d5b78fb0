package repository

import (
	"context"
	"errors"

	"smartclinic-backend/internal/features/billing/models"
)

var (
	ErrPromoNotFound   = errors.New("promo code not found")
	ErrPromoExhausted  = errors.New("promo code usage cap reached")
	ErrPaymentNotFound = errors.New("payment not found")
)

type BillingRepository interface {
	GetPromoByCode(ctx context.Context, code string) (*models.PromoCode, error)
	// ConsumePromo atomically increments used_count, failing with
	// ErrPromoExhausted when the cap is already reached.
	ConsumePromo(ctx context.Context, code string) error
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	// MarkPaid flips a pending payment to paid and stamps paid_at.
	MarkPaid(ctx context.Context, id string) (*models.Payment, error)
}
