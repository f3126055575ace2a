package models

import "time"

type Comment struct {
	ID     int `json:"id"`
	UserID int `db:"user_id" json:"user_id"`
	Target
	Content   string    `json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
