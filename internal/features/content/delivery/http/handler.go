package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "smartclinic-backend/internal/common/errors"
	"smartclinic-backend/internal/common/response"
	"smartclinic-backend/internal/features/content/models"
	"smartclinic-backend/internal/features/content/service"
)

type ContentHandler struct {
	service service.ContentService
}

func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/content", h.list)
	router.GET("/content/:id", h.getByID)
	router.GET("/categories", h.listCategories)
}

// @Summary List content
// @Description List active content items joined with their category, newest first
// @Tags content
// @Produce json
// @Security TelegramInitData
// @Param category_id query int false "Category filter"
// @Param content_type query string false "Kind filter (course, webinar, case-review, material)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /content [get]
func (h *ContentHandler) list(c *gin.Context) {
	filters := models.ListFilters{
		ContentType: c.Query("content_type"),
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, apperrors.NewValidationError("category_id", "must be an integer"))
			return
		}
		filters.CategoryID = &id
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	if items == nil {
		items = []*models.ContentItem{}
	}
	response.OK(c, gin.H{"content": items})
}

// @Summary Get content item
// @Tags content
// @Produce json
// @Security TelegramInitData
// @Param id path int true "Content ID"
// @Success 200 {object} map[string]interface{}
// @Router /content/{id} [get]
func (h *ContentHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.NewValidationError("id", "must be an integer"))
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrContentNotFound {
			response.Error(c, apperrors.New(apperrors.ErrCodeContentNotFound, "Content not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"content": item})
}

// @Summary List categories
// @Tags content
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} map[string]interface{}
// @Router /categories [get]
func (h *ContentHandler) listCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if categories == nil {
		categories = []*models.Category{}
	}
	response.OK(c, gin.H{"categories": categories})
}
