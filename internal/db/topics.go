package db

import (
	"context"

	"github.com/georgysavva/scany/pgxscan"

	"github.com/askhub/askhub/internal/models"
)

type topicStore struct {
	db DBTX
}

func (s topicStore) Insert(ctx context.Context, t *models.Topic) error {
	sql, args, _ := psql.
		Insert("topics").
		Columns("name", "description").
		Values(t.Name, t.Description).
		Suffix("RETURNING id").
		ToSql()

	row := s.db.QueryRow(ctx, sql, args...)
	return row.Scan(&t.ID)
}

func (s topicStore) List(ctx context.Context) ([]models.Topic, error) {
	sql, args, _ := psql.
		Select("*").
		From("topics").
		OrderBy("name ASC").
		ToSql()

	topics := []models.Topic{}
	err := pgxscan.Select(ctx, s.db, &topics, sql, args...)
	if err != nil {
		return nil, err
	}
	return topics, nil
}
