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

type answerStore struct {
	db DBTX
}

func (s answerStore) Get(ctx context.Context, id int) (*models.Answer, error) {
	sql, args, _ := psql.
		Select("*").
		From("answers").
		Where(sq.Eq{"id": id}).
		ToSql()

	var answer models.Answer
	err := pgxscan.Get(ctx, s.db, &answer, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: answer %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s answerStore) Insert(ctx context.Context, a *models.Answer) error {
	sql, args, _ := psql.
		Insert("answers").
		Columns("question_id", "user_id", "content").
		Values(a.QuestionID, a.UserID, a.Content).
		Suffix("RETURNING id").
		ToSql()

	row := s.db.QueryRow(ctx, sql, args...)
	return row.Scan(&a.ID)
}

func (s answerStore) ListByQuestion(ctx context.Context, questionID int) ([]models.Answer, error) {
	sql, args, _ := psql.
		Select("*").
		From("answers").
		Where(sq.Eq{"question_id": questionID}).
		OrderBy("is_accepted DESC", "vote_count DESC", "created_at ASC").
		ToSql()

	answers := []models.Answer{}
	err := pgxscan.Select(ctx, s.db, &answers, sql, args...)
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (s answerStore) SetAccepted(ctx context.Context, id int, accepted bool) error {
	sql, args, _ := psql.
		Update("answers").
		Set("is_accepted", accepted).
		Where(sq.Eq{"id": id}).
		ToSql()

	_, err := s.db.Exec(ctx, sql, args...)
	return err
}

func (s answerStore) ClearAccepted(ctx context.Context, questionID int) error {
	sql, args, _ := psql.
		Update("answers").
		Set("is_accepted", false).
		Where(sq.Eq{"question_id": questionID}).
		ToSql()

	_, err := s.db.Exec(ctx, sql, args...)
	return err
}

func (s answerStore) AdjustVoteCount(ctx context.Context, id, delta int) (int, error) {
	row := s.db.QueryRow(ctx,
		"UPDATE answers SET vote_count = vote_count + $1 WHERE id = $2 RETURNING vote_count",
		delta, id)
	var count int
	err := row.Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: answer %d", models.ErrNotFound, id)
	}
	return count, err
}

func (s answerStore) UpdateContent(ctx context.Context, id int, content string) error {
	sql, args, _ := psql.
		Update("answers").
		Set("content", content).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}).
		ToSql()

	_, err := s.db.Exec(ctx, sql, args...)
	return err
}

func (s answerStore) Delete(ctx context.Context, id int) error {
	sql, args, _ := psql.
		Delete("answers").
		Where(sq.Eq{"id": id}).
		ToSql()

	_, err := s.db.Exec(ctx, sql, args...)
	return err
}
