package forum_test

import (
	"context"
	"errors"
	"testing"

	"github.com/askhub/askhub/internal/models"
)

func TestPostCommentOnQuestion(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	comment, err := f.Comments.PostComment(ctx, 2, target, "Could you share the error output?")
	if err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if comment.ID == 0 {
		t.Fatal("comment has no id")
	}

	comments, err := f.Comments.ListByTarget(ctx, target)
	if err != nil {
		t.Fatalf("ListByTarget: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("comments: got %d, want 1", len(comments))
	}

	notifs := notifsFor(t, f, store, 1)
	if len(notifs) != 1 {
		t.Fatalf("notifications: got %d, want 1", len(notifs))
	}
	if notifs[0].Type != models.NotifNewComment {
		t.Fatalf("type: got %s, want %s", notifs[0].Type, models.NotifNewComment)
	}
	if notifs[0].Content != "New comment on your post." {
		t.Fatalf("content: got %q", notifs[0].Content)
	}
}

func TestPostCommentOnAnswer(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	a := mockAnswer(t, store, q.ID, 2)

	if _, err := f.Comments.PostComment(ctx, 3, models.AnswerTarget(a.ID), "Nice one."); err != nil {
		t.Fatalf("PostComment: %v", err)
	}

	// The answer author gets notified, not the question author.
	notifs := notifsFor(t, f, store, 2)
	if len(notifs) != 1 {
		t.Fatalf("notifications for answer author: got %d, want 1", len(notifs))
	}
}

func TestPostCommentOwnPostNoNotification(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	if _, err := f.Comments.PostComment(ctx, 1, models.QuestionTarget(q.ID), "Note to self."); err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if notifs := notifsFor(t, f, store, 1); len(notifs) != 0 {
		t.Fatalf("self comment notified: got %d notifications", len(notifs))
	}
}

func TestPostCommentUnknownTarget(t *testing.T) {
	f, _ := newTestForum(t)

	_, err := f.Comments.PostComment(context.Background(), 2, models.AnswerTarget(999), "Hello?")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
