package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"smartclinic-backend/internal/features/support/models"
	"smartclinic-backend/internal/features/support/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.SupportRepository {
	return &postgresRepository{db: db}
}

const questionColumns = `id, user_id, question, attachment_ref, topic, content_id,
		status, admin_response, responded_at, created_at`

func (r *postgresRepository) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	query := `
		INSERT INTO user_questions (user_id, question, attachment_ref, topic, content_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + questionColumns

	status := question.Status
	if status == "" {
		status = models.StatusNew
	}

	row := r.db.QueryRowContext(ctx, query,
		question.UserID, question.Question, question.AttachmentRef, question.Topic, question.ContentID, status)

	created, err := scanQuestion(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM user_questions WHERE id = $1`

	question, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM user_questions
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

func (r *postgresRepository) Answer(ctx context.Context, id int64, responseText string) (*models.Question, error) {
	query := `
		UPDATE user_questions
		SET status = $2, admin_response = $3, responded_at = NOW()
		WHERE id = $1
		RETURNING ` + questionColumns

	question, err := scanQuestion(r.db.QueryRowContext(ctx, query, id, models.StatusAnswered, responseText))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}
	return question, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var respondedAt sql.NullTime

	err := row.Scan(
		&q.ID, &q.UserID, &q.Question, &q.AttachmentRef, &q.Topic, &q.ContentID,
		&q.Status, &q.AdminResponse, &respondedAt, &q.CreatedAt)
	if err != nil {
		return nil, err
	}

	if respondedAt.Valid {
		q.RespondedAt = &respondedAt.Time
	}
	return &q, nil
}
