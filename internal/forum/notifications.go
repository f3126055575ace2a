package forum

import (
	"context"

	"github.com/askhub/askhub/internal/models"
)

// NotificationInbox is the recipient-facing read side of notifications.
type NotificationInbox struct {
	store Store
}

func NewNotificationInbox(store Store) *NotificationInbox {
	return &NotificationInbox{store: store}
}

func (inbox *NotificationInbox) List(ctx context.Context, userID, limit int) ([]models.Notification, error) {
	notifs, err := inbox.store.Notifications().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, opFailed(err)
	}
	return notifs, nil
}

func (inbox *NotificationInbox) UnreadCount(ctx context.Context, userID int) (int, error) {
	count, err := inbox.store.Notifications().CountUnread(ctx, userID)
	if err != nil {
		return 0, opFailed(err)
	}
	return count, nil
}

// MarkRead flips isRead on one notification, only for its recipient.
func (inbox *NotificationInbox) MarkRead(ctx context.Context, userID, notifID int) error {
	err := inbox.store.Notifications().MarkRead(ctx, notifID, userID)
	return opFailed(err)
}

func (inbox *NotificationInbox) MarkAllRead(ctx context.Context, userID int) error {
	return opFailed(inbox.store.Notifications().MarkAllRead(ctx, userID))
}
