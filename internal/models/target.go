package models

import "fmt"

// TargetKind discriminates the entity a vote, comment or notification
// attaches to.
type TargetKind string

const (
	KindQuestion TargetKind = "QUESTION"
	KindAnswer   TargetKind = "ANSWER"
)

var AvailableTargetKinds = []TargetKind{
	KindQuestion,
	KindAnswer,
}

// Target is a tagged reference to a Question or an Answer.
type Target struct {
	Kind TargetKind `db:"target_kind" json:"target_kind"`
	ID   int        `db:"target_id" json:"target_id"`
}

func NewTarget(kind TargetKind, id int) (Target, error) {
	for _, k := range AvailableTargetKinds {
		if kind == k {
			return Target{Kind: kind, ID: id}, nil
		}
	}
	return Target{}, fmt.Errorf("%w: target kind %q", ErrInvalidFormat, kind)
}

func QuestionTarget(id int) Target {
	return Target{Kind: KindQuestion, ID: id}
}

func AnswerTarget(id int) Target {
	return Target{Kind: KindAnswer, ID: id}
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%d", t.Kind, t.ID)
}
