package forum_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/askhub/askhub/internal/forum"
	"github.com/askhub/askhub/internal/models"
)

func TestPostAnswer(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	answer, err := f.Answers.PostAnswer(ctx, 2, q.ID, "Use the frob lever.")
	if err != nil {
		t.Fatalf("PostAnswer: %v", err)
	}
	if answer.ID == 0 {
		t.Fatal("answer has no id")
	}

	question, err := store.Questions().Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("Get question: %v", err)
	}
	if question.AnswerCount != 1 {
		t.Fatalf("answerCount: got %d, want 1", question.AnswerCount)
	}

	notifs := notifsFor(t, f, store, 1)
	if len(notifs) != 1 {
		t.Fatalf("notifications: got %d, want 1", len(notifs))
	}
	if notifs[0].Type != models.NotifNewAnswer {
		t.Fatalf("type: got %s, want %s", notifs[0].Type, models.NotifNewAnswer)
	}
	if notifs[0].Content != "Your question has a new answer." {
		t.Fatalf("content: got %q", notifs[0].Content)
	}
}

func TestPostAnswerOwnQuestionNoNotification(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	if _, err := f.Answers.PostAnswer(ctx, 1, q.ID, "Answering myself."); err != nil {
		t.Fatalf("PostAnswer: %v", err)
	}
	if notifs := notifsFor(t, f, store, 1); len(notifs) != 0 {
		t.Fatalf("self answer notified: got %d notifications", len(notifs))
	}
}

func TestPostAnswerContentBounds(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	if _, err := f.Answers.PostAnswer(ctx, 2, q.ID, ""); !errors.Is(err, models.ErrBadContentLen) {
		t.Fatalf("empty content: got %v, want ErrBadContentLen", err)
	}
	long := strings.Repeat("a", forum.LimitMaxContentLen+1)
	if _, err := f.Answers.PostAnswer(ctx, 2, q.ID, long); !errors.Is(err, models.ErrBadContentLen) {
		t.Fatalf("oversized content: got %v, want ErrBadContentLen", err)
	}
}

func TestPostAnswerMissingQuestion(t *testing.T) {
	f, _ := newTestForum(t)

	_, err := f.Answers.PostAnswer(context.Background(), 2, 999, "Into the void.")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPostAnswerRollback(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	store.FailNext("questions.adjust_answer_count", errors.New("disk on fire"))
	_, err := f.Answers.PostAnswer(ctx, 2, q.ID, "Doomed answer.")
	if !errors.Is(err, models.ErrOperationFailed) {
		t.Fatalf("got %v, want ErrOperationFailed", err)
	}
	answers, err := store.Answers().ListByQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("ListByQuestion: %v", err)
	}
	if len(answers) != 0 {
		t.Fatalf("orphan answer left behind: got %d answers", len(answers))
	}
}

func TestUpdateAnswerForbidden(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	a := mockAnswer(t, store, q.ID, 2)

	err := f.Answers.UpdateAnswer(ctx, 3, a.ID, "Mine now.")
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestDeleteAnswer(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	answer, err := f.Answers.PostAnswer(ctx, 2, q.ID, "Short lived.")
	if err != nil {
		t.Fatalf("PostAnswer: %v", err)
	}
	if err := f.Answers.DeleteAnswer(ctx, 2, answer.ID); err != nil {
		t.Fatalf("DeleteAnswer: %v", err)
	}
	question, err := store.Questions().Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("Get question: %v", err)
	}
	if question.AnswerCount != 0 {
		t.Fatalf("answerCount after delete: got %d, want 0", question.AnswerCount)
	}
}

func TestListByQuestionOrder(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	a1 := mockAnswer(t, store, q.ID, 2)
	a2 := mockAnswer(t, store, q.ID, 3)
	a3 := mockAnswer(t, store, q.ID, 4)

	if _, err := f.Votes.CastVote(ctx, 5, models.AnswerTarget(a1.ID), models.PolarityUp); err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if err := f.Acceptance.AcceptAnswer(ctx, q.ID, a3.ID, 1); err != nil {
		t.Fatalf("AcceptAnswer: %v", err)
	}

	answers, err := f.Answers.ListByQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("ListByQuestion: %v", err)
	}
	got := []int{answers[0].ID, answers[1].ID, answers[2].ID}
	want := []int{a3.ID, a1.ID, a2.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}
