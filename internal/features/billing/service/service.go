package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartclinic-backend/internal/features/billing/models"
	"smartclinic-backend/internal/features/billing/repository"
	userservice "smartclinic-backend/internal/features/user/service"
)

var (
	ErrUnknownPlan   = errors.New("unknown subscription plan")
	ErrPromoNotFound = errors.New("promo code not found")
)

type BillingService interface {
	// ValidatePromo checks a code against an amount without consuming a
	// use. Used by the webapp's promo field.
	ValidatePromo(ctx context.Context, code string, amount float64) (*models.PromoCode, float64, error)
	// Authorize computes the amount to charge for a plan, consuming the
	// promo code if one is given, and records a pending payment. Actual
	// payment execution is external.
	Authorize(ctx context.Context, userID int64, months int, promoCode string) (*models.Payment, error)
	// ConfirmPayment is called by the external payment plumbing once a
	// charge settles; it extends the subscription window.
	ConfirmPayment(ctx context.Context, paymentID string) (time.Time, error)
}

type billingService struct {
	repo  repository.BillingRepository
	users userservice.UserService
	now   func() time.Time
}

func NewBillingService(repo repository.BillingRepository, users userservice.UserService) BillingService {
	return &billingService{repo: repo, users: users, now: time.Now}
}

func (s *billingService) ValidatePromo(ctx context.Context, code string, amount float64) (*models.PromoCode, float64, error) {
	promo, err := s.repo.GetPromoByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return nil, 0, ErrPromoNotFound
		}
		return nil, 0, err
	}

	if err := promo.Check(s.now()); err != nil {
		return nil, 0, err
	}

	return promo, promo.Discount(amount), nil
}

func (s *billingService) Authorize(ctx context.Context, userID int64, months int, promoCode string) (*models.Payment, error) {
	plan, ok := models.Plans[months]
	if !ok {
		return nil, ErrUnknownPlan
	}

	amount := plan.Price
	var appliedCode *string
	if promoCode != "" {
		promo, discounted, err := s.ValidatePromo(ctx, promoCode, amount)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ConsumePromo(ctx, promo.Code); err != nil {
			if errors.Is(err, repository.ErrPromoExhausted) {
				return nil, models.ErrPromoExhausted
			}
			return nil, err
		}
		amount = discounted
		appliedCode = &promo.Code
	}

	payment := &models.Payment{
		ID:         uuid.New().String(),
		UserID:     userID,
		PlanMonths: plan.Months,
		Amount:     amount,
		PromoCode:  appliedCode,
		Status:     models.PaymentPending,
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record authorized payment: %w", err)
	}
	return payment, nil
}

func (s *billingService) ConfirmPayment(ctx context.Context, paymentID string) (time.Time, error) {
	payment, err := s.repo.MarkPaid(ctx, paymentID)
	if err != nil {
		return time.Time{}, err
	}

	return s.users.ExtendSubscription(ctx, payment.UserID, payment.PlanMonths)
}
