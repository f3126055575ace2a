package forum

import (
	"context"
	"strings"

	"github.com/askhub/askhub/internal/models"
)

// TopicService manages the flat topic list questions are filed under.
type TopicService struct {
	store Store
}

func NewTopicService(store Store) *TopicService {
	return &TopicService{store: store}
}

func (svc *TopicService) CreateTopic(ctx context.Context, name, description string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > LimitMaxTitleLen {
		return nil, models.ErrBadContentLen
	}
	topic := &models.Topic{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := svc.store.Topics().Insert(ctx, topic); err != nil {
		return nil, opFailed(err)
	}
	return topic, nil
}

func (svc *TopicService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	topics, err := svc.store.Topics().List(ctx)
	if err != nil {
		return nil, opFailed(err)
	}
	return topics, nil
}
