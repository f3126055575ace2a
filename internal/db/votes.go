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

type voteStore struct {
	db   DBTX
	inTx bool
}

func (s voteStore) Find(ctx context.Context, userID int, target models.Target) (*models.Vote, error) {
	q := psql.
		Select("*").
		From("votes").
		Where(sq.Eq{
			"user_id":     userID,
			"target_kind": target.Kind,
			"target_id":   target.ID,
		})
	if s.inTx {
		// Lock the row so concurrent casts by the same user on the same
		// target serialize on it until the transaction ends.
		q = q.Suffix("FOR UPDATE")
	}
	sql, args, _ := q.ToSql()

	var vote models.Vote
	err := pgxscan.Get(ctx, s.db, &vote, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: vote by %d on %s", models.ErrNotFound, userID, target)
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s voteStore) Insert(ctx context.Context, v *models.Vote) error {
	sql, args, _ := psql.
		Insert("votes").
		Columns("user_id", "target_kind", "target_id", "polarity").
		Values(v.UserID, v.Target.Kind, v.Target.ID, v.Polarity).
		ToSql()

	_, err := s.db.Exec(ctx, sql, args...)
	return err
}

func (s voteStore) UpdatePolarity(ctx context.Context, userID int, target models.Target, p models.Polarity) error {
	sql, args, _ := psql.
		Update("votes").
		Set("polarity", p).
		Where(sq.Eq{
			"user_id":     userID,
			"target_kind": target.Kind,
			"target_id":   target.ID,
		}).
		ToSql()

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vote by %d on %s", models.ErrNotFound, userID, target)
	}
	return nil
}

func (s voteStore) Delete(ctx context.Context, userID int, target models.Target) error {
	sql, args, _ := psql.
		Delete("votes").
		Where(sq.Eq{
			"user_id":     userID,
			"target_kind": target.Kind,
			"target_id":   target.ID,
		}).
		ToSql()

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// A delete that matched nothing must not report success, or a
		// racing toggle-off would still apply its counter delta.
		return fmt.Errorf("%w: vote by %d on %s", models.ErrNotFound, userID, target)
	}
	return nil
}

func (s voteStore) SumByTarget(ctx context.Context, target models.Target) (int, error) {
	sql, args, _ := psql.
		Select("COALESCE(SUM(CASE polarity WHEN 'UPVOTE' THEN 1 ELSE -1 END), 0)").
		From("votes").
		Where(sq.Eq{
			"target_kind": target.Kind,
			"target_id":   target.ID,
		}).
		ToSql()

	row := s.db.QueryRow(ctx, sql, args...)
	var sum int
	err := row.Scan(&sum)
	return sum, err
}
