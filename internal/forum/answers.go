package forum

import (
	"context"
	"time"

	"github.com/askhub/askhub/internal/models"
)

const (
	LimitMinContentLen = 1
	LimitMaxContentLen = 30000 // 30K
	LimitMaxTitleLen   = 255
)

// AnswerService owns the answer lifecycle: the insert and the question's
// answerCount move together, then the question author is notified.
type AnswerService struct {
	store      Store
	dispatcher *NotificationDispatcher
}

func NewAnswerService(store Store, dispatcher *NotificationDispatcher) *AnswerService {
	return &AnswerService{store: store, dispatcher: dispatcher}
}

func (svc *AnswerService) PostAnswer(ctx context.Context, actorID, questionID int, content string) (*models.Answer, error) {
	if err := checkContentLen(content); err != nil {
		return nil, err
	}
	question, err := svc.store.Questions().Get(ctx, questionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	answer := &models.Answer{
		QuestionID: questionID,
		UserID:     actorID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = svc.store.Tx(ctx, func(s Store) error {
		if err := s.Answers().Insert(ctx, answer); err != nil {
			return err
		}
		return s.Questions().AdjustAnswerCount(ctx, questionID, 1)
	})
	if err != nil {
		return nil, opFailed(err)
	}

	svc.dispatcher.Dispatch(Event{
		Type:    models.NotifNewAnswer,
		ActorID: actorID,
		OwnerID: question.UserID,
		Target:  models.QuestionTarget(questionID),
	})
	return answer, nil
}

func (svc *AnswerService) ListByQuestion(ctx context.Context, questionID int) ([]models.Answer, error) {
	if _, err := svc.store.Questions().Get(ctx, questionID); err != nil {
		return nil, err
	}
	answers, err := svc.store.Answers().ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, opFailed(err)
	}
	return answers, nil
}

func (svc *AnswerService) UpdateAnswer(ctx context.Context, actorID, answerID int, content string) error {
	if err := checkContentLen(content); err != nil {
		return err
	}
	answer, err := svc.store.Answers().Get(ctx, answerID)
	if err != nil {
		return err
	}
	if answer.UserID != actorID {
		return models.ErrForbidden
	}
	if err := svc.store.Answers().UpdateContent(ctx, answerID, content); err != nil {
		return opFailed(err)
	}
	return nil
}

func (svc *AnswerService) DeleteAnswer(ctx context.Context, actorID, answerID int) error {
	answer, err := svc.store.Answers().Get(ctx, answerID)
	if err != nil {
		return err
	}
	if answer.UserID != actorID {
		return models.ErrForbidden
	}
	err = svc.store.Tx(ctx, func(s Store) error {
		if err := s.Answers().Delete(ctx, answerID); err != nil {
			return err
		}
		return s.Questions().AdjustAnswerCount(ctx, answer.QuestionID, -1)
	})
	return opFailed(err)
}

func checkContentLen(content string) error {
	if len(content) < LimitMinContentLen || len(content) > LimitMaxContentLen {
		return models.ErrBadContentLen
	}
	return nil
}
