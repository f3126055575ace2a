// Package forum holds the cross-entity consistency core of the Q&A
// platform: the vote state machine and its counter bookkeeping, the
// single-accepted-answer coordination, and the notification fan-out
// triggered by both plus new answers and comments. Persistence is reached
// only through the Store contracts, so the same code runs against the
// postgres adapter in production and the memory adapter in tests.
package forum

import "github.com/rs/zerolog"

// Forum wires the services over one store and one dispatcher.
type Forum struct {
	Votes      *VoteLedger
	Acceptance *AcceptanceCoordinator
	Questions  *QuestionService
	Answers    *AnswerService
	Comments   *CommentService
	Topics     *TopicService
	Inbox      *NotificationInbox

	dispatcher *NotificationDispatcher
}

func New(store Store, logger zerolog.Logger) *Forum {
	dispatcher := NewNotificationDispatcher(store.Notifications(), logger)
	return &Forum{
		Votes:      NewVoteLedger(store, dispatcher),
		Acceptance: NewAcceptanceCoordinator(store, dispatcher),
		Questions:  NewQuestionService(store),
		Answers:    NewAnswerService(store, dispatcher),
		Comments:   NewCommentService(store, dispatcher),
		Topics:     NewTopicService(store),
		Inbox:      NewNotificationInbox(store),
		dispatcher: dispatcher,
	}
}

// Close drains pending notification deliveries.
func (f *Forum) Close() {
	f.dispatcher.Close()
}
