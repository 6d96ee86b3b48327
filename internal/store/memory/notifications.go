package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"teamboard/internal/domain"
	"teamboard/internal/model"
)

func (s *Store) InsertNotifications(_ context.Context, notifications []model.Notification) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(s.notifications)+len(notifications))
	for _, n := range s.notifications {
		seen[n.ID] = struct{}{}
	}
	created := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		n = prepare(n)
		if _, dup := seen[n.ID]; dup {
			return nil, &domain.StoreError{Op: "insert notification batch", Err: fmt.Errorf("duplicate id %q", n.ID)}
		}
		seen[n.ID] = struct{}{}
		created = append(created, n)
	}
	s.notifications = append(s.notifications, created...)
	return created, nil
}

func (s *Store) CreateNotification(_ context.Context, notification model.Notification) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification = prepare(notification)
	s.notifications = append(s.notifications, notification)
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

func (s *Store) ListNotifications(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		record := s.notifications[i]
		if record.UserID != userID {
			continue
		}
		result = append(result, record)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *Store) FindByPushID(_ context.Context, userID, pushID string) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.notifications {
		if record.UserID == userID && record.PushID != "" && record.PushID == pushID {
			return record, nil
		}
	}
	return model.Notification{}, domain.ErrNotFound
}

func (s *Store) MarkRead(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) MarkAllRead(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteNotification(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
