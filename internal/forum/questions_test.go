package forum_test

import (
	"context"
	"errors"
	"testing"

	"github.com/askhub/askhub/internal/models"
)

func TestPostQuestion(t *testing.T) {
	f, _ := newTestForum(t)
	ctx := context.Background()

	q, err := f.Questions.PostQuestion(ctx, 1, 0, "  How do I frobnicate?  ", "Details inside.")
	if err != nil {
		t.Fatalf("PostQuestion: %v", err)
	}
	if q.Title != "How do I frobnicate?" {
		t.Fatalf("title not trimmed: %q", q.Title)
	}
	if q.Status != models.StatusOpen {
		t.Fatalf("status: got %s, want %s", q.Status, models.StatusOpen)
	}
}

func TestPostQuestionEmptyTitle(t *testing.T) {
	f, _ := newTestForum(t)

	_, err := f.Questions.PostQuestion(context.Background(), 1, 0, "   ", "Content.")
	if !errors.Is(err, models.ErrBadContentLen) {
		t.Fatalf("got %v, want ErrBadContentLen", err)
	}
}

func TestGetQuestionBumpsViewCount(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	got, err := f.Questions.GetQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.ViewCount != 1 {
		t.Fatalf("viewCount: got %d, want 1", got.ViewCount)
	}
	got, err = f.Questions.GetQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.ViewCount != 2 {
		t.Fatalf("viewCount: got %d, want 2", got.ViewCount)
	}
}

func TestSearchQuestions(t *testing.T) {
	f, _ := newTestForum(t)
	ctx := context.Background()

	if _, err := f.Questions.PostQuestion(ctx, 1, 0, "Postgres indexing", "How do btree indexes work?"); err != nil {
		t.Fatalf("PostQuestion: %v", err)
	}
	if _, err := f.Questions.PostQuestion(ctx, 1, 0, "Go channels", "Unbuffered vs buffered."); err != nil {
		t.Fatalf("PostQuestion: %v", err)
	}

	hits, err := f.Questions.Search(ctx, "POSTGRES", 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits: got %d, want 1", len(hits))
	}
	if hits[0].Title != "Postgres indexing" {
		t.Fatalf("hit: got %q", hits[0].Title)
	}
}
