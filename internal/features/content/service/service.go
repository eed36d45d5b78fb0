package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartclinic-backend/internal/common/cache"
	"smartclinic-backend/internal/common/logger"
	"smartclinic-backend/internal/features/content/models"
	"smartclinic-backend/internal/features/content/repository"
)

var ErrContentNotFound = errors.New("content not found")

const upcomingWindow = 7 * 24 * time.Hour

type ContentService interface {
	List(ctx context.Context, filters models.ListFilters) ([]*models.ContentItem, error)
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	// Announcements returns upcoming webinars within seven days, or the
	// static fallback list when the store is unavailable.
	Announcements(ctx context.Context) []models.Announcement
}

type contentService struct {
	repo     repository.ContentRepository
	cache    *cache.Service
	cacheTTL time.Duration
}

// NewContentService builds the catalog service. cache may be nil, in
// which case every read goes to the store.
func NewContentService(repo repository.ContentRepository, cacheService *cache.Service, cacheTTL time.Duration) ContentService {
	return &contentService{repo: repo, cache: cacheService, cacheTTL: cacheTTL}
}

func (s *contentService) List(ctx context.Context, filters models.ListFilters) ([]*models.ContentItem, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	key := listCacheKey(filters)
	var cached []*models.ContentItem
	if s.cache != nil && s.cache.Get(ctx, key, &cached) == nil {
		return cached, nil
	}

	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache catalog page")
		}
	}
	return items, nil
}

func (s *contentService) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *contentService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const key = "catalog:categories"
	var cached []*models.Category
	if s.cache != nil && s.cache.Get(ctx, key, &cached) == nil {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, categories, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache categories")
		}
	}
	return categories, nil
}

func (s *contentService) Announcements(ctx context.Context) []models.Announcement {
	webinars, err := s.repo.GetUpcoming(ctx, models.TypeWebinar, upcomingWindow)
	if err != nil {
		// Graceful degradation: the announcements view never fails, a
		// static list is shown instead.
		logger.Error().Err(err).Msg("Upcoming webinars query failed, serving fallback announcements")
		return fallbackAnnouncements()
	}

	announcements := make([]models.Announcement, 0, len(webinars))
	for _, w := range webinars {
		a := models.Announcement{
			Title:        w.Title,
			Instructor:   w.Instructor,
			ScheduleTime: w.ScheduleTime,
		}
		if w.ScheduleTime != nil {
			a.ScheduleText = w.ScheduleTime.Format("02.01 15:04")
		}
		if w.DurationMinutes != nil {
			a.Duration = fmt.Sprintf("%d минут", *w.DurationMinutes)
		}
		announcements = append(announcements, a)
	}
	return announcements
}

func fallbackAnnouncements() []models.Announcement {
	return []models.Announcement{
		{Title: "🎤 Вебинар: Новые методики лечения", ScheduleText: "15 декабря, 19:00 МСК"},
		{Title: "📚 Курс: Профессиональный рост", ScheduleText: "Старт 20 декабря"},
		{Title: "👥 Разбор кейсов", ScheduleText: "Каждую среду, 18:00 МСК"},
	}
}

func listCacheKey(f models.ListFilters) string {
	category := int64(0)
	if f.CategoryID != nil {
		category = *f.CategoryID
	}
	return fmt.Sprintf("catalog:list:%d:%s:%d:%d", category, f.ContentType, f.Limit, f.Offset)
}
