package forum

import (
	"context"
	"time"

	"github.com/askhub/askhub/internal/models"
)

type CommentService struct {
	store      Store
	dispatcher *NotificationDispatcher
}

func NewCommentService(store Store, dispatcher *NotificationDispatcher) *CommentService {
	return &CommentService{store: store, dispatcher: dispatcher}
}

func (svc *CommentService) PostComment(ctx context.Context, actorID int, target models.Target, content string) (*models.Comment, error) {
	if err := checkContentLen(content); err != nil {
		return nil, err
	}
	owner, err := targetOwner(ctx, svc.store, target)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:    actorID,
		Target:    target,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := svc.store.Comments().Insert(ctx, comment); err != nil {
		return nil, opFailed(err)
	}

	svc.dispatcher.Dispatch(Event{
		Type:    models.NotifNewComment,
		ActorID: actorID,
		OwnerID: owner,
		Target:  target,
	})
	return comment, nil
}

func (svc *CommentService) ListByTarget(ctx context.Context, target models.Target) ([]models.Comment, error) {
	if _, err := targetOwner(ctx, svc.store, target); err != nil {
		return nil, err
	}
	comments, err := svc.store.Comments().ListByTarget(ctx, target)
	if err != nil {
		return nil, opFailed(err)
	}
	return comments, nil
}
