package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/model"
)

type notificationRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	URL       string    `db:"url"`
	Icon      string    `db:"icon"`
	Image     string    `db:"image"`
	Payload   string    `db:"payload"`
	PushID    string    `db:"push_id"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

const insertNotification = `
	INSERT INTO notifications (
		id, user_id, title, body, url, icon, image, payload, push_id, is_read, created_at
	) VALUES (
		:id, :user_id, :title, :body, :url, :icon, :image, :payload, :push_id, 0, :created_at
	)`

const selectNotification = `
	SELECT id, user_id, title, body, url, icon, image, payload, push_id, is_read, created_at
	FROM notifications`

func toRow(n model.Notification) notificationRow {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return notificationRow{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      n.Body,
		URL:       n.URL,
		Icon:      n.Icon,
		Image:     n.Image,
		Payload:   string(n.Payload),
		PushID:    n.PushID,
		CreatedAt: n.CreatedAt,
	}
}

func (r notificationRow) model() model.Notification {
	n := model.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Body:      r.Body,
		URL:       r.URL,
		Icon:      r.Icon,
		Image:     r.Image,
		PushID:    r.PushID,
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt,
	}
	if r.Payload != "" {
		n.Payload = []byte(r.Payload)
	}
	return n
}

// InsertNotifications issues one multi-row INSERT, which SQLite applies atomically.
func (s *Store) InsertNotifications(ctx context.Context, notifications []model.Notification) ([]model.Notification, error) {
	if len(notifications) == 0 {
		return nil, nil
	}
	rows := make([]notificationRow, 0, len(notifications))
	for _, n := range notifications {
		rows = append(rows, toRow(n))
	}
	if _, err := s.db.NamedExecContext(ctx, insertNotification, rows); err != nil {
		s.log.Error("sqlite insert notification batch failed", zap.Int("batch_size", len(rows)), zap.Error(err))
		return nil, storeError("insert notification batch", err)
	}
	created := make([]model.Notification, 0, len(rows))
	for _, r := range rows {
		created = append(created, r.model())
	}
	return created, nil
}

func (s *Store) CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error) {
	row := toRow(notification)
	if _, err := s.db.NamedExecContext(ctx, insertNotification, row); err != nil {
		s.log.Error("sqlite create notification failed", zap.String("user_id", row.UserID), zap.Error(err))
		return model.Notification{}, storeError("create notification", err)
	}
	return row.model(), nil
}

func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []notificationRow
	err := s.db.SelectContext(ctx, &rows,
		selectNotification+" WHERE user_id = ? ORDER BY created_at DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, storeError("list notifications", err)
	}
	result := make([]model.Notification, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.model())
	}
	return result, nil
}

func (s *Store) FindByPushID(ctx context.Context, userID, pushID string) (model.Notification, error) {
	if pushID == "" {
		return model.Notification{}, domain.ErrNotFound
	}
	var row notificationRow
	err := s.db.GetContext(ctx, &row, selectNotification+" WHERE user_id = ? AND push_id = ? LIMIT 1", userID, pushID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Notification{}, domain.ErrNotFound
	}
	if err != nil {
		return model.Notification{}, storeError("find notification by push id", err)
	}
	return row.model(), nil
}

func (s *Store) MarkRead(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return storeError("mark notification read", err)
	}
	return affected(result)
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID)
	if err != nil {
		return 0, storeError("mark all notifications read", err)
	}
	return result.RowsAffected()
}

func (s *Store) DeleteNotification(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return storeError("delete notification", err)
	}
	return affected(result)
}

func affected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
