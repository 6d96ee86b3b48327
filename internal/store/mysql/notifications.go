package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"teamboard/internal/db"
	"teamboard/internal/domain"
	"teamboard/internal/model"
)

// InsertNotifications writes the batch inside one transaction.
func (s *Store) InsertNotifications(ctx context.Context, notifications []model.Notification) ([]model.Notification, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeError("begin notification batch", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.queries.WithTx(tx)
	created := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		n = prepare(n)
		if err := q.InsertNotification(ctx, insertParams(n)); err != nil {
			s.log.Error("sql insert notification batch failed",
				zap.Int("batch_size", len(notifications)),
				zap.String("user_id", n.UserID),
				zap.Error(err),
			)
			return nil, storeError("insert notification batch", err)
		}
		created = append(created, n)
	}
	if err := tx.Commit(); err != nil {
		return nil, storeError("commit notification batch", err)
	}
	return created, nil
}

func (s *Store) CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error) {
	notification = prepare(notification)
	if err := s.queries.InsertNotification(ctx, insertParams(notification)); err != nil {
		s.log.Error("sql create notification failed",
			zap.String("user_id", notification.UserID),
			zap.String("title", notification.Title),
			zap.Error(err),
		)
		return model.Notification{}, storeError("create notification", err)
	}
	return notification, nil
}

func prepare(n model.Notification) model.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.IsRead = false
	return n
}

func insertParams(n model.Notification) db.InsertNotificationParams {
	return db.InsertNotificationParams{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      nullString(n.Body),
		Url:       nullString(n.URL),
		Icon:      nullString(n.Icon),
		Image:     nullString(n.Image),
		Payload:   nullString(string(n.Payload)),
		PushID:    nullString(n.PushID),
		CreatedAt: n.CreatedAt,
	}
}

func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	rows, err := s.queries.ListNotificationsByUser(ctx, db.ListNotificationsByUserParams{
		UserID: userID,
		Limit:  sqlLimit(limit),
	})
	if err != nil {
		s.log.Error("sql list notifications failed", zap.String("user_id", userID), zap.Int("limit", limit), zap.Error(err))
		return nil, storeError("list notifications", err)
	}

	result := make([]model.Notification, 0, len(rows))
	for _, row := range rows {
		result = append(result, fromRow(row))
	}
	return result, nil
}

func fromRow(row db.Notification) model.Notification {
	n := model.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Body:      row.Body.String,
		URL:       row.Url.String,
		Icon:      row.Icon.String,
		Image:     row.Image.String,
		PushID:    row.PushID.String,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
	if row.Payload.Valid {
		n.Payload = []byte(row.Payload.String)
	}
	return n
}

func (s *Store) FindByPushID(ctx context.Context, userID, pushID string) (model.Notification, error) {
	row, err := s.queries.GetNotificationByPushID(ctx, db.GetNotificationByPushIDParams{
		UserID: userID,
		PushID: nullString(pushID),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Notification{}, domain.ErrNotFound
	}
	if err != nil {
		return model.Notification{}, storeError("find notification by push id", err)
	}
	return fromRow(row), nil
}

func (s *Store) MarkRead(ctx context.Context, userID, id string) error {
	result, err := s.queries.MarkNotificationRead(ctx, db.MarkNotificationReadParams{ID: id, UserID: userID})
	if err != nil {
		return storeError("mark notification read", err)
	}
	return affected("mark notification read", result)
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := s.queries.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, storeError("mark all notifications read", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (s *Store) DeleteNotification(ctx context.Context, userID, id string) error {
	result, err := s.queries.DeleteNotification(ctx, db.DeleteNotificationParams{ID: id, UserID: userID})
	if err != nil {
		return storeError("delete notification", err)
	}
	return affected("delete notification", result)
}
