package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartclinic-backend/internal/features/support/models"
	"smartclinic-backend/internal/features/support/repository"
)

type fakeSupportRepo struct {
	questions map[int64]*models.Question
	nextID    int64
}

func newFakeSupportRepo() *fakeSupportRepo {
	return &fakeSupportRepo{questions: make(map[int64]*models.Question), nextID: 1}
}

func (f *fakeSupportRepo) Create(_ context.Context, q *models.Question) (*models.Question, error) {
	copied := *q
	copied.ID = f.nextID
	copied.CreatedAt = time.Now()
	f.questions[copied.ID] = &copied
	f.nextID++
	return &copied, nil
}

func (f *fakeSupportRepo) GetByID(_ context.Context, id int64) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeSupportRepo) ListByStatus(_ context.Context, status string, _, _ int) ([]*models.Question, error) {
	var out []*models.Question
	for _, q := range f.questions {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeSupportRepo) Answer(_ context.Context, id int64, responseText string) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}
	q.AdminResponse = &responseText
	at := time.Now()
	q.RespondedAt = &at
	q.Status = models.StatusAnswered
	return q, nil
}

func TestSubmitRecordsNewQuestion(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())

	q, err := svc.Submit(context.Background(), Intake{UserID: 9, Body: "  Как продлить подписку?  "})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if q.Status != models.StatusNew {
		t.Fatalf("status = %q, want new", q.Status)
	}
	if q.Question != "Как продлить подписку?" {
		t.Fatalf("body not trimmed: %q", q.Question)
	}
	if q.AttachmentRef != nil || q.Topic != nil {
		t.Fatalf("optional fields set without input: %+v", q)
	}
}

func TestSubmitAttachmentOnly(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())

	q, err := svc.Submit(context.Background(), Intake{UserID: 9, AttachmentRef: "file_123"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if q.Question != "(вложение)" {
		t.Fatalf("placeholder body = %q", q.Question)
	}
	if q.AttachmentRef == nil || *q.AttachmentRef != "file_123" {
		t.Fatalf("attachment ref = %v", q.AttachmentRef)
	}
}

func TestSubmitRejectsEmpty(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())

	if _, err := svc.Submit(context.Background(), Intake{UserID: 9, Body: "   "}); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("empty submit error = %v, want ErrEmptyQuestion", err)
	}
}

func TestAnswerFlipsStatus(t *testing.T) {
	repo := newFakeSupportRepo()
	svc := NewSupportService(repo)

	q, err := svc.Submit(context.Background(), Intake{UserID: 9, Body: "Вопрос"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	answered, err := svc.Answer(context.Background(), q.ID, "Ответ")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answered.Status != models.StatusAnswered {
		t.Fatalf("status = %q, want answered", answered.Status)
	}
	if answered.AdminResponse == nil || *answered.AdminResponse != "Ответ" {
		t.Fatalf("admin response = %v", answered.AdminResponse)
	}
	if answered.RespondedAt == nil {
		t.Fatal("responded_at not stamped")
	}

	listed, _ := svc.ListNew(context.Background(), 10, 0)
	if len(listed) != 0 {
		t.Fatalf("answered question still listed as new: %d", len(listed))
	}
}

func TestAnswerUnknownQuestion(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())
	if _, err := svc.Answer(context.Background(), 404, "Ответ"); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("unknown question error = %v, want ErrQuestionNotFound", err)
	}
}
