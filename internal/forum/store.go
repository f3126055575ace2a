package forum

import (
	"context"
	"errors"
	"fmt"

	"github.com/askhub/askhub/internal/models"
)

// QuestionStore is the persistence contract for questions. Implementations
// return models.ErrNotFound for missing rows and apply counter updates as
// atomic deltas, never read-compute-write.
type QuestionStore interface {
	Get(ctx context.Context, id int) (*models.Question, error)
	Insert(ctx context.Context, q *models.Question) error
	SetStatus(ctx context.Context, id int, status string) error
	AdjustVoteCount(ctx context.Context, id int, delta int) (int, error)
	AdjustAnswerCount(ctx context.Context, id int, delta int) error
	IncrementViewCount(ctx context.Context, id int) error
	ListRecent(ctx context.Context, limit, offset int) ([]models.Question, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Question, error)
}

type AnswerStore interface {
	Get(ctx context.Context, id int) (*models.Answer, error)
	Insert(ctx context.Context, a *models.Answer) error
	ListByQuestion(ctx context.Context, questionID int) ([]models.Answer, error)
	SetAccepted(ctx context.Context, id int, accepted bool) error
	// ClearAccepted unsets isAccepted on every answer of the question.
	ClearAccepted(ctx context.Context, questionID int) error
	AdjustVoteCount(ctx context.Context, id int, delta int) (int, error)
	UpdateContent(ctx context.Context, id int, content string) error
	Delete(ctx context.Context, id int) error
}

type VoteStore interface {
	// Find returns models.ErrNotFound when the user holds no vote on the target.
	Find(ctx context.Context, userID int, target models.Target) (*models.Vote, error)
	Insert(ctx context.Context, v *models.Vote) error
	UpdatePolarity(ctx context.Context, userID int, target models.Target, p models.Polarity) error
	Delete(ctx context.Context, userID int, target models.Target) error
	// SumByTarget recomputes the counter from the vote set itself.
	SumByTarget(ctx context.Context, target models.Target) (int, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c *models.Comment) error
	ListByTarget(ctx context.Context, target models.Target) ([]models.Comment, error)
}

type TopicStore interface {
	Insert(ctx context.Context, t *models.Topic) error
	List(ctx context.Context) ([]models.Topic, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	// ListByUser returns the newest notifications first. A limit <= 0
	// means no limit.
	ListByUser(ctx context.Context, userID int, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID int) (int, error)
	// MarkRead returns models.ErrNotFound unless the notification exists
	// and belongs to userID.
	MarkRead(ctx context.Context, id int, userID int) error
	MarkAllRead(ctx context.Context, userID int) error
}

// Store bundles the entity stores behind a single transactional boundary.
// Tx runs fn against a store view whose writes commit together or not at
// all; the view passed to fn must not escape it.
type Store interface {
	Questions() QuestionStore
	Answers() AnswerStore
	Votes() VoteStore
	Comments() CommentStore
	Topics() TopicStore
	Notifications() NotificationStore
	Tx(ctx context.Context, fn func(Store) error) error
}

// targetOwner resolves the author of the referenced entity, validating its
// existence along the way.
func targetOwner(ctx context.Context, s Store, t models.Target) (int, error) {
	switch t.Kind {
	case models.KindQuestion:
		q, err := s.Questions().Get(ctx, t.ID)
		if err != nil {
			return 0, err
		}
		return q.UserID, nil
	case models.KindAnswer:
		a, err := s.Answers().Get(ctx, t.ID)
		if err != nil {
			return 0, err
		}
		return a.UserID, nil
	}
	return 0, fmt.Errorf("%w: target kind %q", models.ErrInvalidFormat, t.Kind)
}

// opFailed wraps storage failures as ErrOperationFailed while letting
// validation sentinels pass through untouched.
func opFailed(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrForbidden) ||
		errors.Is(err, models.ErrInvalidFormat) ||
		errors.Is(err, models.ErrBadContentLen) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrOperationFailed, err)
}
