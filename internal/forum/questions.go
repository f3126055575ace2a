package forum

import (
	"context"
	"strings"
	"time"

	"github.com/askhub/askhub/internal/models"
)

type QuestionService struct {
	store Store
}

func NewQuestionService(store Store) *QuestionService {
	return &QuestionService{store: store}
}

func (svc *QuestionService) PostQuestion(ctx context.Context, actorID, topicID int, title, content string) (*models.Question, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > LimitMaxTitleLen {
		return nil, models.ErrBadContentLen
	}
	if err := checkContentLen(content); err != nil {
		return nil, err
	}

	now := time.Now()
	question := &models.Question{
		UserID:    actorID,
		TopicID:   topicID,
		Title:     title,
		Content:   content,
		Status:    models.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.store.Questions().Insert(ctx, question); err != nil {
		return nil, opFailed(err)
	}
	return question, nil
}

// GetQuestion reads a question and bumps its view counter. The bump is a
// fire-and-forget delta; a failed bump does not fail the read.
func (svc *QuestionService) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	question, err := svc.store.Questions().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.store.Questions().IncrementViewCount(ctx, id); err == nil {
		question.ViewCount++
	}
	return question, nil
}

func (svc *QuestionService) ListRecent(ctx context.Context, limit, offset int) ([]models.Question, error) {
	questions, err := svc.store.Questions().ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, opFailed(err)
	}
	return questions, nil
}

func (svc *QuestionService) Search(ctx context.Context, query string, limit, offset int) ([]models.Question, error) {
	questions, err := svc.store.Questions().Search(ctx, query, limit, offset)
	if err != nil {
		return nil, opFailed(err)
	}
	return questions, nil
}
