package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"

	"github.com/askhub/askhub/internal/models"
)

type notificationStore struct {
	db DBTX
}

func (s notificationStore) Insert(ctx context.Context, n *models.Notification) error {
	sql, args, _ := psql.
		Insert("notifications").
		Columns("user_id", "notif_type", "content", "target_kind", "target_id").
		Values(n.UserID, n.Type, n.Content, n.Target.Kind, n.Target.ID).
		Suffix("RETURNING id").
		ToSql()

	row := s.db.QueryRow(ctx, sql, args...)
	return row.Scan(&n.ID)
}

func (s notificationStore) ListByUser(ctx context.Context, userID int, limit int) ([]models.Notification, error) {
	q := psql.
		Select("*").
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sql, args, _ := q.ToSql()

	notifs := []models.Notification{}
	err := pgxscan.Select(ctx, s.db, &notifs, sql, args...)
	if err != nil {
		return nil, err
	}
	return notifs, nil
}

func (s notificationStore) CountUnread(ctx context.Context, userID int) (int, error) {
	sql, args, _ := psql.
		Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()

	row := s.db.QueryRow(ctx, sql, args...)
	var count int
	err := row.Scan(&count)
	return count, err
}

func (s notificationStore) MarkRead(ctx context.Context, id int, userID int) error {
	sql, args, _ := psql.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %d", models.ErrNotFound, id)
	}
	return nil
}

func (s notificationStore) MarkAllRead(ctx context.Context, userID int) error {
	sql, args, _ := psql.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()

	_, err := s.db.Exec(ctx, sql, args...)
	return err
}
