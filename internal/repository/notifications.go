package repository

import (
	"context"

	"teamboard/internal/model"
)

type NotificationRepository interface {
	// InsertNotifications persists one batch atomically: either every record is stored or none is.
	InsertNotifications(ctx context.Context, notifications []model.Notification) ([]model.Notification, error)
	CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error)
	ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	FindByPushID(ctx context.Context, userID, pushID string) (model.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	DeleteNotification(ctx context.Context, userID, id string) error
}

type JournalRepository interface {
	UpsertReport(ctx context.Context, report model.DailyReport) (model.DailyReport, error)
	ListReports(ctx context.Context, userID string) ([]model.DailyReport, error)
	ListAllReports(ctx context.Context, limit int) ([]model.DailyReport, error)

	CreateTodo(ctx context.Context, todo model.Todo) (model.Todo, error)
	ListTodos(ctx context.Context, userID, targetDate string) ([]model.Todo, error)
	ListAllTodos(ctx context.Context, limit int) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, todo model.Todo) error
	CompleteTodos(ctx context.Context, userID, targetDate string, completed bool) (int64, error)
	DeleteTodo(ctx context.Context, userID, id string) error
}

// RecipientRepository exposes the two user id columns the broadcast fan-out reads.
type RecipientRepository interface {
	ReportUserIDs(ctx context.Context, limit int) ([]string, error)
	TodoUserIDs(ctx context.Context, limit int) ([]string, error)
}

type AdminRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	UpsertAdmin(ctx context.Context, userID string) error
}

type Store interface {
	NotificationRepository
	JournalRepository
	RecipientRepository
	AdminRepository
	Close() error
}
