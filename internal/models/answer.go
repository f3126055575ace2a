package models

import "time"

type Answer struct {
	ID         int       `json:"id"`
	QuestionID int       `db:"question_id" json:"question_id"`
	UserID     int       `db:"user_id" json:"user_id"`
	Content    string    `json:"content"`
	VoteCount  int       `db:"vote_count" json:"vote_count"`
	IsAccepted bool      `db:"is_accepted" json:"is_accepted"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
