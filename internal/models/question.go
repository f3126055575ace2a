package models

import "time"

const (
	StatusOpen     = "OPEN"
	StatusAnswered = "ANSWERED"
	StatusClosed   = "CLOSED"
)

type Question struct {
	ID          int       `json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	TopicID     int       `db:"topic_id" json:"topic_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	ViewCount   int       `db:"view_count" json:"view_count"`
	VoteCount   int       `db:"vote_count" json:"vote_count"`
	AnswerCount int       `db:"answer_count" json:"answer_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
