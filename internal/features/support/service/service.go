package service

import (
	"context"
	"errors"
	"strings"

	"smartclinic-backend/internal/features/support/models"
	"smartclinic-backend/internal/features/support/repository"
)

var (
	ErrEmptyQuestion    = errors.New("question body is empty")
	ErrQuestionNotFound = errors.New("question not found")
)

// Intake carries everything a captured message can contribute to a
// question: body text, an attachment reference and an optional topic.
type Intake struct {
	UserID        int64
	Body          string
	AttachmentRef string
	Topic         string
}

type SupportService interface {
	// Submit records a question with status new. A message that is only
	// an attachment is accepted; a fully empty one is not.
	Submit(ctx context.Context, intake Intake) (*models.Question, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	ListNew(ctx context.Context, limit, offset int) ([]*models.Question, error)
	Answer(ctx context.Context, id int64, responseText string) (*models.Question, error)
}

type supportService struct {
	repo repository.SupportRepository
}

func NewSupportService(repo repository.SupportRepository) SupportService {
	return &supportService{repo: repo}
}

func (s *supportService) Submit(ctx context.Context, intake Intake) (*models.Question, error) {
	body := strings.TrimSpace(intake.Body)
	if body == "" && intake.AttachmentRef == "" {
		return nil, ErrEmptyQuestion
	}
	if body == "" {
		body = "(вложение)"
	}

	question := &models.Question{
		UserID:   intake.UserID,
		Question: body,
		Status:   models.StatusNew,
	}
	if intake.AttachmentRef != "" {
		question.AttachmentRef = &intake.AttachmentRef
	}
	if intake.Topic != "" {
		question.Topic = &intake.Topic
	}

	return s.repo.Create(ctx, question)
}

func (s *supportService) Get(ctx context.Context, id int64) (*models.Question, error) {
	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *supportService) ListNew(ctx context.Context, limit, offset int) ([]*models.Question, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByStatus(ctx, models.StatusNew, limit, offset)
}

func (s *supportService) Answer(ctx context.Context, id int64, responseText string) (*models.Question, error) {
	question, err := s.repo.Answer(ctx, id, responseText)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}
