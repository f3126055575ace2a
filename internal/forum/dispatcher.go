package forum

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/askhub/askhub/internal/models"
)

type Event struct {
	Type    models.NotifType
	ActorID int
	OwnerID int
	Target  models.Target
}

func (ev Event) content() string {
	switch ev.Type {
	case models.NotifNewAnswer:
		return "Your question has a new answer."
	case models.NotifNewComment:
		return "New comment on your post."
	case models.NotifAcceptedAnswer:
		return "Your answer was accepted."
	case models.NotifVote:
		return "Someone voted on your post."
	}
	return ""
}

// NotificationDispatcher turns domain events into notification records.
// Delivery is best effort: it happens on a background worker, decoupled
// from the transaction that produced the event, and a failed insert is
// retried once and then logged, never surfaced to the triggering caller.
type NotificationDispatcher struct {
	notifs    NotificationStore
	logger    zerolog.Logger
	queue     chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewNotificationDispatcher(notifs NotificationStore, logger zerolog.Logger) *NotificationDispatcher {
	d := &NotificationDispatcher{
		notifs: notifs,
		logger: logger,
		queue:  make(chan Event, 64),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch enqueues ev for delivery. Events where the actor owns the
// target are suppressed.
func (d *NotificationDispatcher) Dispatch(ev Event) {
	if ev.OwnerID == ev.ActorID {
		// Don't notify to self
		return
	}
	select {
	case d.queue <- ev:
	default:
		// Queue is full; deliver inline instead of dropping the event.
		d.deliver(ev)
	}
}

// Close drains pending events and stops the worker. Call only after all
// dispatching operations have returned.
func (d *NotificationDispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

func (d *NotificationDispatcher) run() {
	for ev := range d.queue {
		d.deliver(ev)
	}
	close(d.done)
}

func (d *NotificationDispatcher) deliver(ev Event) {
	// Delivery outlives the request that triggered it.
	ctx := context.Background()
	n := &models.Notification{
		UserID:    ev.OwnerID,
		Type:      ev.Type,
		Content:   ev.content(),
		Target:    ev.Target,
		CreatedAt: time.Now(),
	}
	err := d.notifs.Insert(ctx, n)
	if err == nil {
		return
	}
	d.logger.Warn().
		Err(err).
		Int("recipient", ev.OwnerID).
		Str("notif_type", string(ev.Type)).
		Msg("Notification insert failed, retrying")
	if err := d.notifs.Insert(ctx, n); err != nil {
		d.logger.Error().
			Err(err).
			Int("recipient", ev.OwnerID).
			Str("notif_type", string(ev.Type)).
			Stringer("target", ev.Target).
			Msg("Notification dropped")
	}
}
