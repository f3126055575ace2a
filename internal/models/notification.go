package models

import "time"

type NotifType string

const (
	NotifNewAnswer      NotifType = "NEW_ANSWER"
	NotifNewComment     NotifType = "NEW_COMMENT"
	NotifAcceptedAnswer NotifType = "ACCEPTED_ANSWER"
	NotifVote           NotifType = "VOTE"
)

// Notification is an immutable fact addressed to a single recipient.
// Only IsRead is ever mutated after creation.
type Notification struct {
	ID      int       `json:"id"`
	UserID  int       `db:"user_id" json:"user_id"`
	Type    NotifType `db:"notif_type" json:"notif_type"`
	Content string    `json:"content"`
	Target
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
