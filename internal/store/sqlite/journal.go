package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"teamboard/internal/model"
)

const selectReport = `
	SELECT id, user_id, user_email, report_date, reflection, wake_up_time, created_at, updated_at
	FROM daily_reports`

const selectTodo = `
	SELECT id, user_id, user_email, title, is_completed, target_date, created_at
	FROM todos`

func (s *Store) UpsertReport(ctx context.Context, report model.DailyReport) (model.DailyReport, error) {
	now := time.Now().UTC()
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	report.CreatedAt = now
	report.UpdatedAt = now
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO daily_reports (
			id, user_id, user_email, report_date, reflection, wake_up_time, created_at, updated_at
		) VALUES (
			:id, :user_id, :user_email, :report_date, :reflection, :wake_up_time, :created_at, :updated_at
		)
		ON CONFLICT (user_id, report_date) DO UPDATE SET
			user_email = excluded.user_email,
			reflection = excluded.reflection,
			wake_up_time = excluded.wake_up_time,
			updated_at = excluded.updated_at`, report)
	if err != nil {
		return model.DailyReport{}, storeError("upsert report", err)
	}

	var stored model.DailyReport
	err = s.db.GetContext(ctx, &stored, selectReport+" WHERE user_id = ? AND report_date = ?", report.UserID, report.Date)
	if err != nil {
		return model.DailyReport{}, storeError("get report", err)
	}
	return stored, nil
}

func (s *Store) ListReports(ctx context.Context, userID string) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	if err := s.db.SelectContext(ctx, &reports, selectReport+" WHERE user_id = ? ORDER BY report_date DESC", userID); err != nil {
		return nil, storeError("list reports", err)
	}
	return reports, nil
}

func (s *Store) ListAllReports(ctx context.Context, limit int) ([]model.DailyReport, error) {
	if limit <= 0 {
		limit = -1
	}
	var reports []model.DailyReport
	if err := s.db.SelectContext(ctx, &reports, selectReport+" ORDER BY report_date DESC LIMIT ?", limit); err != nil {
		return nil, storeError("list all reports", err)
	}
	return reports, nil
}

func (s *Store) CreateTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO todos (id, user_id, user_email, title, is_completed, target_date, created_at)
		VALUES (:id, :user_id, :user_email, :title, :is_completed, :target_date, :created_at)`, todo)
	if err != nil {
		return model.Todo{}, storeError("create todo", err)
	}
	return todo, nil
}

func (s *Store) ListTodos(ctx context.Context, userID, targetDate string) ([]model.Todo, error) {
	query := selectTodo + " WHERE user_id = ?"
	args := []any{userID}
	if targetDate != "" {
		query += " AND target_date = ?"
		args = append(args, targetDate)
	}
	var todos []model.Todo
	if err := s.db.SelectContext(ctx, &todos, query+" ORDER BY created_at DESC", args...); err != nil {
		return nil, storeError("list todos", err)
	}
	return todos, nil
}

func (s *Store) ListAllTodos(ctx context.Context, limit int) ([]model.Todo, error) {
	if limit <= 0 {
		limit = -1
	}
	var todos []model.Todo
	if err := s.db.SelectContext(ctx, &todos, selectTodo+" ORDER BY created_at DESC LIMIT ?", limit); err != nil {
		return nil, storeError("list all todos", err)
	}
	return todos, nil
}

func (s *Store) UpdateTodo(ctx context.Context, todo model.Todo) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET title = ?, is_completed = ? WHERE id = ? AND user_id = ?",
		todo.Title, todo.IsCompleted, todo.ID, todo.UserID)
	if err != nil {
		return storeError("update todo", err)
	}
	return affected(result)
}

func (s *Store) CompleteTodos(ctx context.Context, userID, targetDate string, completed bool) (int64, error) {
	query := "UPDATE todos SET is_completed = ? WHERE user_id = ? AND is_completed <> ?"
	args := []any{completed, userID, completed}
	if targetDate != "" {
		query += " AND target_date = ?"
		args = append(args, targetDate)
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storeError("complete todos", err)
	}
	return result.RowsAffected()
}

func (s *Store) DeleteTodo(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return storeError("delete todo", err)
	}
	return affected(result)
}
