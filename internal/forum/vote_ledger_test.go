package forum_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/askhub/askhub/internal/models"
)

func TestCastVoteCreate(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	count, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after upvote: got %d, want 1", count)
	}

	vote, err := store.Votes().Find(ctx, 2, target)
	if err != nil {
		t.Fatalf("vote row missing: %v", err)
	}
	if vote.Polarity != models.PolarityUp {
		t.Fatalf("polarity: got %s, want %s", vote.Polarity, models.PolarityUp)
	}
}

func TestCastVoteToggleOff(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	if _, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp); err != nil {
		t.Fatalf("first CastVote: %v", err)
	}
	count, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp)
	if err != nil {
		t.Fatalf("second CastVote: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after toggle off: got %d, want 0", count)
	}
	if _, err := store.Votes().Find(ctx, 2, target); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("vote row should be gone, got err %v", err)
	}
}

func TestCastVoteSwitch(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	if _, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp); err != nil {
		t.Fatalf("upvote: %v", err)
	}
	count, err := f.Votes.CastVote(ctx, 2, target, models.PolarityDown)
	if err != nil {
		t.Fatalf("downvote: %v", err)
	}
	if count != -1 {
		t.Fatalf("count after switch: got %d, want -1", count)
	}
	vote, err := store.Votes().Find(ctx, 2, target)
	if err != nil {
		t.Fatalf("vote row missing after switch: %v", err)
	}
	if vote.Polarity != models.PolarityDown {
		t.Fatalf("polarity after switch: got %s, want %s", vote.Polarity, models.PolarityDown)
	}
}

func TestCastVoteSequences(t *testing.T) {
	up := models.PolarityUp
	down := models.PolarityDown
	cases := []struct {
		name string
		seq  []models.Polarity
		want int
	}{
		{"up", []models.Polarity{up}, 1},
		{"down", []models.Polarity{down}, -1},
		{"up up", []models.Polarity{up, up}, 0},
		{"down down", []models.Polarity{down, down}, 0},
		{"up down", []models.Polarity{up, down}, -1},
		{"down up", []models.Polarity{down, up}, 1},
		{"up up up", []models.Polarity{up, up, up}, 1},
		{"up down up", []models.Polarity{up, down, up}, 1},
		{"up down down", []models.Polarity{up, down, down}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, store := newTestForum(t)
			ctx := context.Background()
			q := mockQuestion(t, store, 1)
			target := models.QuestionTarget(q.ID)

			var count int
			var err error
			for _, p := range tc.seq {
				count, err = f.Votes.CastVote(ctx, 2, target, p)
				if err != nil {
					t.Fatalf("CastVote(%s): %v", p, err)
				}
			}
			if count != tc.want {
				t.Errorf("final count: got %d, want %d", count, tc.want)
			}
			sum, err := f.Votes.GetVoteCount(ctx, target)
			if err != nil {
				t.Fatalf("GetVoteCount: %v", err)
			}
			if sum != tc.want {
				t.Errorf("vote set sum: got %d, want %d", sum, tc.want)
			}
		})
	}
}

func TestCastVoteOnAnswer(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	a := mockAnswer(t, store, q.ID, 2)

	count, err := f.Votes.CastVote(ctx, 3, models.AnswerTarget(a.ID), models.PolarityDown)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if count != -1 {
		t.Fatalf("answer count: got %d, want -1", count)
	}
	stored, err := store.Answers().Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get answer: %v", err)
	}
	if stored.VoteCount != -1 {
		t.Fatalf("stored answer voteCount: got %d, want -1", stored.VoteCount)
	}
}

func TestCastVoteUnknownTarget(t *testing.T) {
	f, _ := newTestForum(t)
	ctx := context.Background()

	_, err := f.Votes.CastVote(ctx, 2, models.QuestionTarget(999), models.PolarityUp)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRemoveVote(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	if _, err := f.Votes.CastVote(ctx, 2, target, models.PolarityDown); err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	count, err := f.Votes.RemoveVote(ctx, 2, target)
	if err != nil {
		t.Fatalf("RemoveVote: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after remove: got %d, want 0", count)
	}
}

func TestRemoveVoteWithoutVote(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	_, err := f.Votes.RemoveVote(ctx, 2, models.QuestionTarget(q.ID))
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCastVoteRollback(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	store.FailNext("questions.adjust_vote_count", errors.New("disk on fire"))
	_, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp)
	if !errors.Is(err, models.ErrOperationFailed) {
		t.Fatalf("got %v, want ErrOperationFailed", err)
	}

	// The vote insert must have been rolled back with the counter.
	if _, err := store.Votes().Find(ctx, 2, target); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("orphan vote row left behind, err %v", err)
	}
	stored, err := store.Questions().Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("Get question: %v", err)
	}
	if stored.VoteCount != 0 {
		t.Fatalf("voteCount after rollback: got %d, want 0", stored.VoteCount)
	}
}

func TestVoteNotifications(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	// Create notifies, toggle off doesn't, switch does.
	if _, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if _, err := f.Votes.CastVote(ctx, 2, target, models.PolarityDown); err != nil {
		t.Fatalf("create again: %v", err)
	}
	if _, err := f.Votes.CastVote(ctx, 2, target, models.PolarityUp); err != nil {
		t.Fatalf("switch: %v", err)
	}

	notifs := notifsFor(t, f, store, 1)
	if len(notifs) != 3 {
		t.Fatalf("notifications: got %d, want 3", len(notifs))
	}
	for _, n := range notifs {
		if n.Type != models.NotifVote {
			t.Errorf("type: got %s, want %s", n.Type, models.NotifVote)
		}
		if n.Content != "Someone voted on your post." {
			t.Errorf("content: got %q", n.Content)
		}
	}
}

func TestVoteOwnPostNoNotification(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)

	if _, err := f.Votes.CastVote(ctx, 1, models.QuestionTarget(q.ID), models.PolarityUp); err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if notifs := notifsFor(t, f, store, 1); len(notifs) != 0 {
		t.Fatalf("self vote notified: got %d notifications", len(notifs))
	}
}

func TestConcurrentVoting(t *testing.T) {
	f, store := newTestForum(t)
	ctx := context.Background()
	q := mockQuestion(t, store, 1)
	target := models.QuestionTarget(q.ID)

	const voters = 24
	var wg sync.WaitGroup
	wg.Add(voters)
	for i := 0; i < voters; i++ {
		userID := i + 100
		polarity := models.PolarityUp
		if i%3 == 0 {
			polarity = models.PolarityDown
		}
		go func() {
			defer wg.Done()
			if _, err := f.Votes.CastVote(ctx, userID, target, polarity); err != nil {
				t.Errorf("CastVote: %v", err)
			}
		}()
	}
	wg.Wait()

	// 8 of 24 voters downvote.
	want := 16 - 8
	stored, err := store.Questions().Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("Get question: %v", err)
	}
	if stored.VoteCount != want {
		t.Fatalf("counter: got %d, want %d", stored.VoteCount, want)
	}
	sum, err := f.Votes.GetVoteCount(ctx, target)
	if err != nil {
		t.Fatalf("GetVoteCount: %v", err)
	}
	if sum != stored.VoteCount {
		t.Fatalf("counter %d disagrees with vote set sum %d", stored.VoteCount, sum)
	}
}
