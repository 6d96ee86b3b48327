package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"teamboard/internal/db"
	"teamboard/internal/domain"
	"teamboard/internal/model"
)

func (s *Store) UpsertReport(ctx context.Context, report model.DailyReport) (model.DailyReport, error) {
	date, err := time.Parse(dateLayout, report.Date)
	if err != nil {
		return model.DailyReport{}, domain.Validationf("invalid report date %q", report.Date)
	}
	now := time.Now().UTC()
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	err = s.queries.UpsertDailyReport(ctx, db.UpsertDailyReportParams{
		ID:         report.ID,
		UserID:     report.UserID,
		UserEmail:  report.UserEmail,
		ReportDate: date,
		Reflection: nullString(report.Reflection),
		WakeUpTime: nullString(report.WakeUpTime),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.log.Error("sql upsert report failed", zap.String("user_id", report.UserID), zap.String("date", report.Date), zap.Error(err))
		return model.DailyReport{}, storeError("upsert report", err)
	}
	row, err := s.queries.GetDailyReport(ctx, db.GetDailyReportParams{UserID: report.UserID, ReportDate: date})
	if err != nil {
		return model.DailyReport{}, storeError("get report", err)
	}
	return reportFromRow(row), nil
}

func (s *Store) ListReports(ctx context.Context, userID string) ([]model.DailyReport, error) {
	rows, err := s.queries.ListDailyReportsByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list reports", err)
	}
	return reportsFromRows(rows), nil
}

func (s *Store) ListAllReports(ctx context.Context, limit int) ([]model.DailyReport, error) {
	rows, err := s.queries.ListDailyReports(ctx, sqlLimit(limit))
	if err != nil {
		return nil, storeError("list all reports", err)
	}
	return reportsFromRows(rows), nil
}

func reportsFromRows(rows []db.DailyReport) []model.DailyReport {
	result := make([]model.DailyReport, 0, len(rows))
	for _, row := range rows {
		result = append(result, reportFromRow(row))
	}
	return result
}

func reportFromRow(row db.DailyReport) model.DailyReport {
	return model.DailyReport{
		ID:         row.ID,
		UserID:     row.UserID,
		UserEmail:  row.UserEmail,
		Date:       row.ReportDate.Format(dateLayout),
		Reflection: row.Reflection.String,
		WakeUpTime: row.WakeUpTime.String,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func nullDate(v string) (sql.NullTime, error) {
	if v == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return sql.NullTime{}, domain.Validationf("invalid date %q", v)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func (s *Store) CreateTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	target, err := nullDate(todo.TargetDate)
	if err != nil {
		return model.Todo{}, err
	}
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}
	err = s.queries.InsertTodo(ctx, db.InsertTodoParams{
		ID:          todo.ID,
		UserID:      todo.UserID,
		UserEmail:   todo.UserEmail,
		Title:       todo.Title,
		IsCompleted: todo.IsCompleted,
		TargetDate:  target,
		CreatedAt:   todo.CreatedAt,
	})
	if err != nil {
		s.log.Error("sql create todo failed", zap.String("user_id", todo.UserID), zap.Error(err))
		return model.Todo{}, storeError("create todo", err)
	}
	return todo, nil
}

func (s *Store) ListTodos(ctx context.Context, userID, targetDate string) ([]model.Todo, error) {
	var (
		rows []db.Todo
		err  error
	)
	if targetDate == "" {
		rows, err = s.queries.ListTodosByUser(ctx, userID)
	} else {
		target, dateErr := nullDate(targetDate)
		if dateErr != nil {
			return nil, dateErr
		}
		rows, err = s.queries.ListTodosByUserAndDate(ctx, db.ListTodosByUserAndDateParams{UserID: userID, TargetDate: target})
	}
	if err != nil {
		return nil, storeError("list todos", err)
	}
	return todosFromRows(rows), nil
}

func (s *Store) ListAllTodos(ctx context.Context, limit int) ([]model.Todo, error) {
	rows, err := s.queries.ListTodos(ctx, sqlLimit(limit))
	if err != nil {
		return nil, storeError("list all todos", err)
	}
	return todosFromRows(rows), nil
}

func todosFromRows(rows []db.Todo) []model.Todo {
	result := make([]model.Todo, 0, len(rows))
	for _, row := range rows {
		t := model.Todo{
			ID:          row.ID,
			UserID:      row.UserID,
			UserEmail:   row.UserEmail,
			Title:       row.Title,
			IsCompleted: row.IsCompleted,
			CreatedAt:   row.CreatedAt,
		}
		if row.TargetDate.Valid {
			t.TargetDate = row.TargetDate.Time.Format(dateLayout)
		}
		result = append(result, t)
	}
	return result
}

func (s *Store) UpdateTodo(ctx context.Context, todo model.Todo) error {
	result, err := s.queries.UpdateTodo(ctx, db.UpdateTodoParams{
		Title:       todo.Title,
		IsCompleted: todo.IsCompleted,
		ID:          todo.ID,
		UserID:      todo.UserID,
	})
	if err != nil {
		return storeError("update todo", err)
	}
	return affected("update todo", result)
}

func (s *Store) CompleteTodos(ctx context.Context, userID, targetDate string, completed bool) (int64, error) {
	var (
		result sql.Result
		err    error
	)
	if targetDate == "" {
		result, err = s.queries.SetTodosCompleted(ctx, db.SetTodosCompletedParams{
			IsCompleted:   completed,
			UserID:        userID,
			IsCompleted_2: completed,
		})
	} else {
		target, dateErr := nullDate(targetDate)
		if dateErr != nil {
			return 0, dateErr
		}
		result, err = s.queries.SetTodosCompletedByDate(ctx, db.SetTodosCompletedByDateParams{
			IsCompleted:   completed,
			UserID:        userID,
			TargetDate:    target,
			IsCompleted_2: completed,
		})
	}
	if err != nil {
		return 0, storeError("complete todos", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, storeError("complete todos", err)
	}
	return n, nil
}

func (s *Store) DeleteTodo(ctx context.Context, userID, id string) error {
	result, err := s.queries.DeleteTodo(ctx, db.DeleteTodoParams{ID: id, UserID: userID})
	if err != nil {
		return storeError("delete todo", err)
	}
	return affected("delete todo", result)
}
