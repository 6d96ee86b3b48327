package journal

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/repository"
)

const (
	DateLayout       = "2006-01-02"
	MaxTodoTitle     = 500
	MaxReflectionLen = 10000
)

type Service struct {
	store repository.JournalRepository
	log   *zap.Logger
}

func NewService(store repository.JournalRepository, logger *zap.Logger) *Service {
	return &Service{store: store, log: logger}
}

// UpsertReport writes the caller's report for date, replacing an earlier one.
func (s *Service) UpsertReport(ctx context.Context, ident model.Identity, date, reflection, wakeUp string) (model.DailyReport, error) {
	date, err := ParseDate(date)
	if err != nil {
		return model.DailyReport{}, err
	}
	wakeUp, err = ParseWakeUp(wakeUp)
	if err != nil {
		return model.DailyReport{}, err
	}
	if utf8.RuneCountInString(reflection) > MaxReflectionLen {
		return model.DailyReport{}, domain.Validationf("reflection must be at most %d characters", MaxReflectionLen)
	}
	report, err := s.store.UpsertReport(ctx, model.DailyReport{
		UserID:     ident.UserID,
		UserEmail:  ident.Email,
		Date:       date,
		Reflection: reflection,
		WakeUpTime: wakeUp,
	})
	if err != nil {
		s.log.Error("store upsert report failed", zap.String("user_id", ident.UserID), zap.String("date", date), zap.Error(err))
		return model.DailyReport{}, err
	}
	return report, nil
}

func (s *Service) ListReports(ctx context.Context, userID string) ([]model.DailyReport, error) {
	return s.store.ListReports(ctx, userID)
}

func (s *Service) CreateTodo(ctx context.Context, ident model.Identity, title, targetDate string) (model.Todo, error) {
	title, err := todoTitle(title)
	if err != nil {
		return model.Todo{}, err
	}
	if targetDate != "" {
		if targetDate, err = ParseDate(targetDate); err != nil {
			return model.Todo{}, err
		}
	}
	todo, err := s.store.CreateTodo(ctx, model.Todo{
		UserID:     ident.UserID,
		UserEmail:  ident.Email,
		Title:      title,
		TargetDate: targetDate,
	})
	if err != nil {
		s.log.Error("store create todo failed", zap.String("user_id", ident.UserID), zap.Error(err))
		return model.Todo{}, err
	}
	return todo, nil
}

// ListTodos returns the user's todos, limited to one target date when date is set.
func (s *Service) ListTodos(ctx context.Context, userID, date string) ([]model.Todo, error) {
	if date != "" {
		var err error
		if date, err = ParseDate(date); err != nil {
			return nil, err
		}
	}
	return s.store.ListTodos(ctx, userID, date)
}

func (s *Service) SetTodoCompleted(ctx context.Context, userID, id string, completed bool) (model.Todo, error) {
	todo, err := s.find(ctx, userID, id)
	if err != nil {
		return model.Todo{}, err
	}
	todo.IsCompleted = completed
	if err := s.store.UpdateTodo(ctx, todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func (s *Service) RenameTodo(ctx context.Context, userID, id, title string) (model.Todo, error) {
	title, err := todoTitle(title)
	if err != nil {
		return model.Todo{}, err
	}
	todo, err := s.find(ctx, userID, id)
	if err != nil {
		return model.Todo{}, err
	}
	todo.Title = title
	if err := s.store.UpdateTodo(ctx, todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func (s *Service) DeleteTodo(ctx context.Context, userID, id string) error {
	return s.store.DeleteTodo(ctx, userID, id)
}

// CompleteAll marks every open todo of the user for date as done. An empty
// date covers all of the user's todos.
func (s *Service) CompleteAll(ctx context.Context, userID, date string) (int64, error) {
	if date != "" {
		var err error
		if date, err = ParseDate(date); err != nil {
			return 0, err
		}
	}
	return s.store.CompleteTodos(ctx, userID, date, true)
}

func (s *Service) find(ctx context.Context, userID, id string) (model.Todo, error) {
	todos, err := s.store.ListTodos(ctx, userID, "")
	if err != nil {
		return model.Todo{}, err
	}
	for _, t := range todos {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Todo{}, domain.ErrNotFound
}

func todoTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", domain.Validationf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTodoTitle {
		return "", domain.Validationf("title must be at most %d characters", MaxTodoTitle)
	}
	return title, nil
}

// ParseDate normalizes a YYYY-MM-DD calendar date.
func ParseDate(raw string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", domain.Validationf("date must be YYYY-MM-DD")
	}
	return d.Format(DateLayout), nil
}

// ParseWakeUp accepts HH:MM or HH:MM:SS and returns HH:MM:SS; empty stays empty.
func ParseWakeUp(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", domain.Validationf("wake_up_time must be HH:MM or HH:MM:SS")
}
