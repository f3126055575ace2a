package forum_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/askhub/askhub/internal/forum"
	"github.com/askhub/askhub/internal/memory"
	"github.com/askhub/askhub/internal/models"
)

func newTestForum(t *testing.T) (*forum.Forum, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return forum.New(store, zerolog.Nop()), store
}

func mockQuestion(t *testing.T, store *memory.Store, userID int) *models.Question {
	t.Helper()
	q := &models.Question{
		UserID:    userID,
		Title:     "How do I frobnicate?",
		Content:   "I tried turning it off and on again.",
		Status:    models.StatusOpen,
		CreatedAt: time.Now(),
	}
	if err := store.Questions().Insert(context.Background(), q); err != nil {
		t.Fatalf("inserting question: %v", err)
	}
	return q
}

func mockAnswer(t *testing.T, store *memory.Store, questionID, userID int) *models.Answer {
	t.Helper()
	a := &models.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    "Have you tried frobnicating harder?",
		CreatedAt:  time.Now(),
	}
	if err := store.Answers().Insert(context.Background(), a); err != nil {
		t.Fatalf("inserting answer: %v", err)
	}
	return a
}

// notifsFor drains the dispatcher and returns userID's notifications.
// The forum can't be used after this.
func notifsFor(t *testing.T, f *forum.Forum, store *memory.Store, userID int) []models.Notification {
	t.Helper()
	f.Close()
	notifs, err := store.Notifications().ListByUser(context.Background(), userID, 0)
	if err != nil {
		t.Fatalf("listing notifications: %v", err)
	}
	return notifs
}
