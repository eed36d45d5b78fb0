package models

import (
	"errors"
	"math"
	"time"
)

var (
	ErrPromoInactive  = errors.New("promo code is not active")
	ErrPromoExpired   = errors.New("promo code is outside its validity window")
	ErrPromoExhausted = errors.New("promo code usage cap reached")
)

// Plan is a subscription duration tier at a fixed price.
type Plan struct {
	Months int
	Price  float64
	Label  string
}

// Plans are the purchasable tiers, keyed by duration in months.
var Plans = map[int]Plan{
	1:  {Months: 1, Price: 990, Label: "🔄 1 месяц - 990₽"},
	3:  {Months: 3, Price: 2490, Label: "📅 3 месяца - 2490₽"},
	12: {Months: 12, Price: 8990, Label: "🎯 12 месяцев - 8990₽"},
}

// PromoCode is a discount token. Exactly one of DiscountPercent and
// DiscountAmount is set.
type PromoCode struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	DiscountPercent *int       `json:"discount_percent,omitempty"`
	DiscountAmount  *float64   `json:"discount_amount,omitempty"`
	MaxUses         int        `json:"max_uses"`
	UsedCount       int        `json:"used_count"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	IsActive        bool       `json:"is_active"`
}

// Check reports whether the code may be applied at now. Fails closed on
// inactive codes, exhausted caps and out-of-window times.
func (p *PromoCode) Check(now time.Time) error {
	if !p.IsActive {
		return ErrPromoInactive
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return ErrPromoExhausted
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return ErrPromoExpired
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return ErrPromoExpired
	}
	return nil
}

// Discount returns the amount to charge after applying the code, never
// below zero.
func (p *PromoCode) Discount(amount float64) float64 {
	var discounted float64
	switch {
	case p.DiscountPercent != nil:
		discounted = amount * (1 - float64(*p.DiscountPercent)/100)
	case p.DiscountAmount != nil:
		discounted = amount - *p.DiscountAmount
	default:
		discounted = amount
	}
	if discounted < 0 {
		return 0
	}
	// Prices are whole rubles.
	return math.Round(discounted*100) / 100
}

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Payment is the record of an authorized charge. Execution is external;
// the core's contract ends at the authorized amount.
type Payment struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	PlanMonths int        `json:"plan_months"`
	Amount     float64    `json:"amount"`
	PromoCode  *string    `json:"promo_code,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}
