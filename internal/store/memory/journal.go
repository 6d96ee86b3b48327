package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"teamboard/internal/domain"
	"teamboard/internal/model"
)

func (s *Store) UpsertReport(_ context.Context, report model.DailyReport) (model.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for i, existing := range s.reports {
		if existing.UserID == report.UserID && existing.Date == report.Date {
			report.ID = existing.ID
			report.CreatedAt = existing.CreatedAt
			report.UpdatedAt = now
			s.reports[i] = report
			return report, nil
		}
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	report.CreatedAt = now
	report.UpdatedAt = now
	s.reports = append(s.reports, report)
	return report, nil
}

func (s *Store) ListReports(_ context.Context, userID string) ([]model.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.DailyReport
	for _, r := range s.reports {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sortReports(result)
	return result, nil
}

func (s *Store) ListAllReports(_ context.Context, limit int) ([]model.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := append([]model.DailyReport(nil), s.reports...)
	sortReports(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func sortReports(reports []model.DailyReport) {
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Date > reports[j].Date })
}

func (s *Store) CreateTodo(_ context.Context, todo model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}
	s.todos = append(s.todos, todo)
	return todo, nil
}

func (s *Store) ListTodos(_ context.Context, userID, targetDate string) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Todo
	for i := len(s.todos) - 1; i >= 0; i-- {
		t := s.todos[i]
		if t.UserID != userID {
			continue
		}
		if targetDate != "" && t.TargetDate != targetDate {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (s *Store) ListAllTodos(_ context.Context, limit int) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Todo
	for i := len(s.todos) - 1; i >= 0; i-- {
		result = append(result, s.todos[i])
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *Store) UpdateTodo(_ context.Context, todo model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == todo.ID && s.todos[i].UserID == todo.UserID {
			s.todos[i].Title = todo.Title
			s.todos[i].IsCompleted = todo.IsCompleted
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) CompleteTodos(_ context.Context, userID, targetDate string, completed bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.todos {
		t := &s.todos[i]
		if t.UserID != userID || (targetDate != "" && t.TargetDate != targetDate) {
			continue
		}
		if t.IsCompleted != completed {
			t.IsCompleted = completed
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteTodo(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id && s.todos[i].UserID == userID {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
