package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/repository"
	"teamboard/internal/sse"
)

const DefaultHistoryLimit = 50

// Publisher fans a stored notification out to live streams.
type Publisher interface {
	Publish(ctx context.Context, notification model.Notification) error
}

type Service struct {
	store repository.NotificationRepository
	hub   Publisher
	log   *zap.Logger
}

func NewService(store repository.NotificationRepository, hub *sse.Hub, logger *zap.Logger) *Service {
	return NewServiceWithPublisher(store, hub, logger)
}

func NewServiceWithPublisher(store repository.NotificationRepository, hub Publisher, logger *zap.Logger) *Service {
	return &Service{store: store, hub: hub, log: logger}
}

// Create stores a notification for a single user and pushes it to that user's open streams.
func (s *Service) Create(ctx context.Context, userID string, tmpl model.Template) (model.Notification, error) {
	if err := uuid.Validate(strings.TrimSpace(userID)); err != nil {
		return model.Notification{}, domain.Validationf("user_id must be a uuid")
	}
	if err := domain.ValidateTemplate(tmpl); err != nil {
		return model.Notification{}, err
	}
	created, err := s.store.CreateNotification(ctx, model.Notification{
		UserID:  strings.TrimSpace(userID),
		Title:   strings.TrimSpace(tmpl.Title),
		Body:    tmpl.Body,
		URL:     tmpl.URL,
		Icon:    tmpl.Icon,
		Image:   tmpl.Image,
		Payload: tmpl.Payload,
		PushID:  tmpl.PushID,
	})
	if err != nil {
		s.log.Error("store create notification failed",
			zap.String("user_id", userID),
			zap.String("title", tmpl.Title),
			zap.Error(err),
		)
		return model.Notification{}, err
	}
	if err := s.hub.Publish(ctx, created); err != nil {
		s.log.Warn("publish notification failed", zap.String("id", created.ID), zap.Error(err))
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	history, err := s.store.ListNotifications(ctx, userID, limit)
	if err != nil {
		s.log.Error("store list notifications failed", zap.String("user_id", userID), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	return history, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	return s.store.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.store.MarkAllRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.store.DeleteNotification(ctx, userID, id)
}

// SyncPush records a push the browser received so it shows up in the feed.
// The same push id is stored at most once per user; created reports whether
// a new row was written.
func (s *Service) SyncPush(ctx context.Context, userID string, tmpl model.Template) (n model.Notification, created bool, err error) {
	if err := domain.ValidateTemplate(tmpl); err != nil {
		return model.Notification{}, false, err
	}
	if tmpl.PushID != "" {
		existing, err := s.store.FindByPushID(ctx, userID, tmpl.PushID)
		switch {
		case err == nil:
			return existing, false, nil
		case !errors.Is(err, domain.ErrNotFound):
			return model.Notification{}, false, err
		}
	}
	n, err = s.store.CreateNotification(ctx, model.Notification{
		UserID:  userID,
		Title:   strings.TrimSpace(tmpl.Title),
		Body:    tmpl.Body,
		URL:     tmpl.URL,
		Icon:    tmpl.Icon,
		Image:   tmpl.Image,
		Payload: tmpl.Payload,
		PushID:  tmpl.PushID,
	})
	if err != nil {
		s.log.Error("store sync push failed", zap.String("user_id", userID), zap.String("push_id", tmpl.PushID), zap.Error(err))
		return model.Notification{}, false, err
	}
	return n, true, nil
}
