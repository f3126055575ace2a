package forum_test

import (
	"context"
	"errors"
	"testing"

	"github.com/askhub/askhub/internal/models"
)

func TestCreateTopic(t *testing.T) {
	f, _ := newTestForum(t)
	ctx := context.Background()

	topic, err := f.Topics.CreateTopic(ctx, "  databases ", "Schema design and queries.")
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	if topic.ID == 0 {
		t.Fatalf("topic ID not assigned")
	}
	if topic.Name != "databases" {
		t.Errorf("name: got %q, want %q", topic.Name, "databases")
	}
}

func TestCreateTopicBadName(t *testing.T) {
	f, _ := newTestForum(t)
	ctx := context.Background()

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	for _, name := range []string{"", "   ", string(long)} {
		_, err := f.Topics.CreateTopic(ctx, name, "")
		if !errors.Is(err, models.ErrBadContentLen) {
			t.Errorf("CreateTopic(%q): got %v, want ErrBadContentLen", name, err)
		}
	}
}

func TestListTopicsSorted(t *testing.T) {
	f, _ := newTestForum(t)
	ctx := context.Background()

	for _, name := range []string{"networking", "algorithms", "databases"} {
		if _, err := f.Topics.CreateTopic(ctx, name, ""); err != nil {
			t.Fatalf("CreateTopic(%q): %v", name, err)
		}
	}
	topics, err := f.Topics.ListTopics(ctx)
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	want := []string{"algorithms", "databases", "networking"}
	if len(topics) != len(want) {
		t.Fatalf("topics: got %d, want %d", len(topics), len(want))
	}
	for i, name := range want {
		if topics[i].Name != name {
			t.Errorf("topics[%d].Name = %q, want %q", i, topics[i].Name, name)
		}
	}
}
