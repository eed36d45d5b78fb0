package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "smartclinic-backend/internal/common/errors"
	"smartclinic-backend/internal/common/response"
	"smartclinic-backend/internal/common/validation"
	"smartclinic-backend/internal/features/billing/models"
	"smartclinic-backend/internal/features/billing/service"
)

type BillingHandler struct {
	service service.BillingService
}

func NewBillingHandler(service service.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

func (h *BillingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/promo/validate", h.validatePromo)
}

type validatePromoRequest struct {
	Code   string  `json:"code" binding:"required" validate:"min=2,max=64"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

// @Summary Validate a promo code
// @Description Checks the code and returns the discounted amount. Does not consume a use.
// @Tags billing
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body validatePromoRequest true "Code and base amount"
// @Success 200 {object} map[string]interface{}
// @Router /promo/validate [post]
func (h *BillingHandler) validatePromo(c *gin.Context) {
	var req validatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid request body"))
		return
	}
	if err := validation.Struct(req); err != nil {
		response.Error(c, err)
		return
	}

	promo, discounted, err := h.service.ValidatePromo(c.Request.Context(), req.Code, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromoNotFound):
			response.Error(c, apperrors.New(apperrors.ErrCodePromoNotFound, "Promo code not found"))
		case errors.Is(err, models.ErrPromoExhausted):
			response.Error(c, apperrors.New(apperrors.ErrCodePromoExhausted, "Promo code usage cap reached"))
		case errors.Is(err, models.ErrPromoInactive):
			response.Error(c, apperrors.New(apperrors.ErrCodePromoInactive, "Promo code is not active"))
		case errors.Is(err, models.ErrPromoExpired):
			response.Error(c, apperrors.New(apperrors.ErrCodePromoExpired, "Promo code is outside its validity window"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.OK(c, gin.H{
		"code":              promo.Code,
		"original_amount":   req.Amount,
		"discounted_amount": discounted,
	})
}
