package db

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/askhub/askhub/internal/forum"
)

// Store implements forum.Store over postgres. Outside a transaction the
// entity stores run against the pool; Tx rebinds them to a pgx.Tx so
// every write inside the function commits or rolls back together.
type Store struct {
	db   DBTX
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

func (s *Store) Questions() forum.QuestionStore { return questionStore{s.db} }
func (s *Store) Answers() forum.AnswerStore     { return answerStore{s.db} }
func (s *Store) Votes() forum.VoteStore         { return voteStore{s.db, s.pool == nil} }
func (s *Store) Comments() forum.CommentStore   { return commentStore{s.db} }
func (s *Store) Topics() forum.TopicStore       { return topicStore{s.db} }
func (s *Store) Notifications() forum.NotificationStore {
	return notificationStore{s.db}
}

func (s *Store) Tx(ctx context.Context, fn func(forum.Store) error) error {
	if s.pool == nil {
		// Already inside a transaction; join it.
		return fn(s)
	}
	return execTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(&Store{db: tx})
	})
}
