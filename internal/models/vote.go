package models

import (
	"fmt"
	"time"
)

type Polarity string

const (
	PolarityUp   Polarity = "UPVOTE"
	PolarityDown Polarity = "DOWNVOTE"
)

func ParsePolarity(s string) (Polarity, error) {
	switch Polarity(s) {
	case PolarityUp, PolarityDown:
		return Polarity(s), nil
	}
	return "", fmt.Errorf("%w: polarity %q", ErrInvalidFormat, s)
}

// Delta is the contribution of a single vote to the target's counter.
func (p Polarity) Delta() int {
	if p == PolarityUp {
		return 1
	}
	return -1
}

// Vote records one user's standing vote on a target.
// At most one vote exists per (user, target); absence means "no vote".
type Vote struct {
	UserID int `db:"user_id" json:"user_id"`
	Target
	Polarity  Polarity  `json:"polarity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
