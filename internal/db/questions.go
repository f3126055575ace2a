package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"

	"github.com/askhub/askhub/internal/models"
)

type questionStore struct {
	db DBTX
}

func (s questionStore) Get(ctx context.Context, id int) (*models.Question, error) {
	sql, args, _ := psql.
		Select("*").
		From("questions").
		Where(sq.Eq{"id": id}).
		ToSql()

	var question models.Question
	err := pgxscan.Get(ctx, s.db, &question, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: question %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s questionStore) Insert(ctx context.Context, q *models.Question) error {
	sql, args, _ := psql.
		Insert("questions").
		Columns("user_id", "topic_id", "title", "content", "status").
		Values(q.UserID, q.TopicID, q.Title, q.Content, q.Status).
		Suffix("RETURNING id").
		ToSql()

	row := s.db.QueryRow(ctx, sql, args...)
	return row.Scan(&q.ID)
}

func (s questionStore) SetStatus(ctx context.Context, id int, status string) error {
	sql, args, _ := psql.
		Update("questions").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()

	_, err := s.db.Exec(ctx, sql, args...)
	return err
}

func (s questionStore) AdjustVoteCount(ctx context.Context, id, delta int) (int, error) {
	// The delta is applied in SQL so concurrent adjustments never race.
	row := s.db.QueryRow(ctx,
		"UPDATE questions SET vote_count = vote_count + $1 WHERE id = $2 RETURNING vote_count",
		delta, id)
	var count int
	err := row.Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: question %d", models.ErrNotFound, id)
	}
	return count, err
}

func (s questionStore) AdjustAnswerCount(ctx context.Context, id, delta int) error {
	_, err := s.db.Exec(ctx,
		"UPDATE questions SET answer_count = answer_count + $1 WHERE id = $2",
		delta, id)
	return err
}

func (s questionStore) IncrementViewCount(ctx context.Context, id int) error {
	_, err := s.db.Exec(ctx,
		"UPDATE questions SET view_count = view_count + 1 WHERE id = $1", id)
	return err
}

func (s questionStore) ListRecent(ctx context.Context, limit, offset int) ([]models.Question, error) {
	sql, args, _ := psql.
		Select("*").
		From("questions").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()

	questions := []models.Question{}
	err := pgxscan.Select(ctx, s.db, &questions, sql, args...)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s questionStore) Search(ctx context.Context, query string, limit, offset int) ([]models.Question, error) {
	pattern := "%" + query + "%"
	sql, args, _ := psql.
		Select("*").
		From("questions").
		Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"content": pattern},
		}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()

	questions := []models.Question{}
	err := pgxscan.Select(ctx, s.db, &questions, sql, args...)
	if err != nil {
		return nil, err
	}
	return questions, nil
}
