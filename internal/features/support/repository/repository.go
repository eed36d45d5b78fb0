package repository

import (
	"context"
	"errors"

	"smartclinic-backend/internal/features/support/models"
)

var ErrQuestionNotFound = errors.New("question not found")

type SupportRepository interface {
	Create(ctx context.Context, question *models.Question) (*models.Question, error)
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Question, error)
	// Answer records the admin response and flips status to answered.
	Answer(ctx context.Context, id int64, responseText string) (*models.Question, error)
}
