package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "smartclinic-backend/internal/common/errors"
	"smartclinic-backend/internal/common/middleware"
	"smartclinic-backend/internal/common/response"
	"smartclinic-backend/internal/common/validation"
	"smartclinic-backend/internal/features/engagement/models"
	"smartclinic-backend/internal/features/engagement/service"
)

type EngagementHandler struct {
	service service.EngagementService
}

func NewEngagementHandler(service service.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/favorites", h.listFavorites)
	router.POST("/favorites", h.addFavorite)
	router.DELETE("/favorites/:contentID", h.removeFavorite)

	router.GET("/progress", h.listProgress)
	router.GET("/progress/:contentID", h.getProgress)
	router.PUT("/progress/:contentID", h.updateProgress)
}

// @Summary List favorites
// @Tags engagement
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} map[string]interface{}
// @Router /favorites [get]
func (h *EngagementHandler) listFavorites(c *gin.Context) {
	user, ok := middleware.TelegramUser(c)
	if !ok {
		response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram Init Data required"))
		return
	}

	favorites, err := h.service.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if favorites == nil {
		favorites = []*models.Favorite{}
	}
	response.OK(c, gin.H{"favorites": favorites})
}

type addFavoriteRequest struct {
	ContentID int64 `json:"content_id" binding:"required" validate:"gt=0"`
}

// @Summary Add favorite
// @Tags engagement
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body addFavoriteRequest true "Content to favorite"
// @Success 200 {object} map[string]interface{}
// @Router /favorites [post]
func (h *EngagementHandler) addFavorite(c *gin.Context) {
	user, ok := middleware.TelegramUser(c)
	if !ok {
		response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram Init Data required"))
		return
	}

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid request body"))
		return
	}
	if err := validation.Struct(req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.ToggleFavorite(c.Request.Context(), user.ID, req.ContentID, true); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{})
}

// @Summary Remove favorite
// @Tags engagement
// @Produce json
// @Security TelegramInitData
// @Param contentID path int true "Content ID"
// @Success 200 {object} map[string]interface{}
// @Router /favorites/{contentID} [delete]
func (h *EngagementHandler) removeFavorite(c *gin.Context) {
	user, ok := middleware.TelegramUser(c)
	if !ok {
		response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram Init Data required"))
		return
	}

	contentID, err := strconv.ParseInt(c.Param("contentID"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.NewValidationError("contentID", "must be an integer"))
		return
	}

	if err := h.service.ToggleFavorite(c.Request.Context(), user.ID, contentID, false); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{})
}

// @Summary List progress
// @Tags engagement
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} map[string]interface{}
// @Router /progress [get]
func (h *EngagementHandler) listProgress(c *gin.Context) {
	user, ok := middleware.TelegramUser(c)
	if !ok {
		response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram Init Data required"))
		return
	}

	records, err := h.service.ListProgress(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if records == nil {
		records = []*models.Progress{}
	}
	response.OK(c, gin.H{"progress": records})
}

// @Summary Get progress for an item
// @Tags engagement
// @Produce json
// @Security TelegramInitData
// @Param contentID path int true "Content ID"
// @Success 200 {object} map[string]interface{}
// @Router /progress/{contentID} [get]
func (h *EngagementHandler) getProgress(c *gin.Context) {
	user, ok := middleware.TelegramUser(c)
	if !ok {
		response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram Init Data required"))
		return
	}

	contentID, err := strconv.ParseInt(c.Param("contentID"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.NewValidationError("contentID", "must be an integer"))
		return
	}

	progress, err := h.service.GetProgress(c.Request.Context(), user.ID, contentID)
	if err != nil {
		if err == service.ErrProgressNotFound {
			response.Error(c, apperrors.NewNotFoundError("Progress"))
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"progress": progress})
}

type progressUpdateRequest struct {
	ProgressPercent int  `json:"progress_percent" validate:"gte=0,lte=100"`
	SecondsWatched  int  `json:"seconds_watched" validate:"gte=0"`
	Completed       bool `json:"completed"`
	LastPosition    int  `json:"last_position" validate:"gte=0"`
}

// @Summary Update progress for an item
// @Tags engagement
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param contentID path int true "Content ID"
// @Param request body progressUpdateRequest true "Progress fields"
// @Success 200 {object} map[string]interface{}
// @Router /progress/{contentID} [put]
func (h *EngagementHandler) updateProgress(c *gin.Context) {
	user, ok := middleware.TelegramUser(c)
	if !ok {
		response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram Init Data required"))
		return
	}

	contentID, err := strconv.ParseInt(c.Param("contentID"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.NewValidationError("contentID", "must be an integer"))
		return
	}

	var req progressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid request body"))
		return
	}
	if err := validation.Struct(req); err != nil {
		response.Error(c, err)
		return
	}

	progress, err := h.service.UpsertProgress(c.Request.Context(), user.ID, contentID, models.ProgressUpdate{
		ProgressPercent: req.ProgressPercent,
		SecondsWatched:  req.SecondsWatched,
		Completed:       req.Completed,
		LastPosition:    req.LastPosition,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"progress": progress})
}
