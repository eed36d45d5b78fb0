package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "smartclinic-backend/internal/common/errors"
	"smartclinic-backend/internal/common/response"
	"smartclinic-backend/internal/common/validation"
	"smartclinic-backend/internal/features/support/models"
	"smartclinic-backend/internal/features/support/service"
)

// NotifyFunc queues an outbound message to a user's chat. Wired to the
// notification stream publisher; nil disables delivery.
type NotifyFunc func(ctx context.Context, chatID int64, text string) error

type SupportHandler struct {
	service service.SupportService
	notify  NotifyFunc
}

func NewSupportHandler(svc service.SupportService, notify NotifyFunc) *SupportHandler {
	return &SupportHandler{service: svc, notify: notify}
}

// RegisterRoutes mounts the admin question endpoints; the router group
// is expected to carry AdminOnly.
func (h *SupportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/questions", h.listNew)
	router.POST("/questions/:id/answer", h.answer)
}

// @Summary List unanswered questions
// @Tags admin
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} map[string]interface{}
// @Router /admin/questions [get]
func (h *SupportHandler) listNew(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	questions, err := h.service.ListNew(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	if questions == nil {
		questions = []*models.Question{}
	}
	response.OK(c, gin.H{"questions": questions})
}

type answerRequest struct {
	Response string `json:"response" binding:"required" validate:"min=1"`
}

// @Summary Answer a question
// @Tags admin
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param id path int true "Question ID"
// @Param request body answerRequest true "Answer text"
// @Success 200 {object} map[string]interface{}
// @Router /admin/questions/{id}/answer [post]
func (h *SupportHandler) answer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, apperrors.NewValidationError("id", "must be a positive integer"))
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid request body"))
		return
	}
	if err := validation.Struct(req); err != nil {
		response.Error(c, err)
		return
	}

	question, err := h.service.Answer(c.Request.Context(), id, req.Response)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.notify != nil {
		text := fmt.Sprintf("💬 <b>Ответ на твой вопрос:</b>\n\n%s", req.Response)
		if err := h.notify(c.Request.Context(), question.UserID, text); err != nil {
			// The answer is saved; delivery will be retried manually.
			response.OK(c, gin.H{"question": question, "delivered": false})
			return
		}
	}
	response.OK(c, gin.H{"question": question, "delivered": true})
}
