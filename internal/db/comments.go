package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"

	"github.com/askhub/askhub/internal/models"
)

type commentStore struct {
	db DBTX
}

func (s commentStore) Insert(ctx context.Context, c *models.Comment) error {
	sql, args, _ := psql.
		Insert("comments").
		Columns("user_id", "target_kind", "target_id", "content").
		Values(c.UserID, c.Target.Kind, c.Target.ID, c.Content).
		Suffix("RETURNING id").
		ToSql()

	row := s.db.QueryRow(ctx, sql, args...)
	return row.Scan(&c.ID)
}

func (s commentStore) ListByTarget(ctx context.Context, target models.Target) ([]models.Comment, error) {
	sql, args, _ := psql.
		Select("*").
		From("comments").
		Where(sq.Eq{
			"target_kind": target.Kind,
			"target_id":   target.ID,
		}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	comments := []models.Comment{}
	err := pgxscan.Select(ctx, s.db, &comments, sql, args...)
	if err != nil {
		return nil, err
	}
	return comments, nil
}
