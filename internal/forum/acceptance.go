package forum

import (
	"context"
	"fmt"

	"github.com/askhub/askhub/internal/models"
)

// AcceptanceCoordinator owns the invariant "at most one accepted answer
// per question" and the linked question-status transition.
type AcceptanceCoordinator struct {
	store      Store
	dispatcher *NotificationDispatcher
}

func NewAcceptanceCoordinator(store Store, dispatcher *NotificationDispatcher) *AcceptanceCoordinator {
	return &AcceptanceCoordinator{store: store, dispatcher: dispatcher}
}

// AcceptAnswer marks answerID as the chosen solution of questionID.
// Accepting a different answer later re-targets the acceptance; accepting
// the already-accepted answer is a no-op returning success. The question's
// status moves to ANSWERED and never regresses here.
func (c *AcceptanceCoordinator) AcceptAnswer(ctx context.Context, questionID, answerID, actorID int) error {
	question, err := c.store.Questions().Get(ctx, questionID)
	if err != nil {
		return err
	}
	answer, err := c.store.Answers().Get(ctx, answerID)
	if err != nil {
		return err
	}
	if answer.QuestionID != questionID {
		return fmt.Errorf("%w: answer %d does not belong to question %d",
			models.ErrNotFound, answerID, questionID)
	}
	if question.UserID != actorID {
		return models.ErrForbidden
	}
	if answer.IsAccepted {
		return nil
	}

	err = c.store.Tx(ctx, func(s Store) error {
		// Unconditional clear keeps this idempotent whatever was
		// accepted before.
		if err := s.Answers().ClearAccepted(ctx, questionID); err != nil {
			return err
		}
		if err := s.Answers().SetAccepted(ctx, answerID, true); err != nil {
			return err
		}
		return s.Questions().SetStatus(ctx, questionID, models.StatusAnswered)
	})
	if err != nil {
		return opFailed(err)
	}

	c.dispatcher.Dispatch(Event{
		Type:    models.NotifAcceptedAnswer,
		ActorID: actorID,
		OwnerID: answer.UserID,
		Target:  models.AnswerTarget(answerID),
	})
	return nil
}
