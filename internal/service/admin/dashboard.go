package admin

import (
	"context"
	"sort"

	"teamboard/internal/model"
	"teamboard/internal/repository"
)

const DefaultDashboardLimit = 1000

type Dashboard struct {
	store repository.JournalRepository
	limit int
}

func NewDashboard(store repository.JournalRepository) *Dashboard {
	return &Dashboard{store: store, limit: DefaultDashboardLimit}
}

// Users summarizes every user who has written a report or a todo, most
// recently active first.
func (d *Dashboard) Users(ctx context.Context) ([]model.UserSummary, error) {
	reports, err := d.store.ListAllReports(ctx, d.limit)
	if err != nil {
		return nil, err
	}
	todos, err := d.store.ListAllTodos(ctx, d.limit)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*model.UserSummary)
	activity := make(map[string]int64)
	get := func(userID, email string) *model.UserSummary {
		s, ok := byUser[userID]
		if !ok {
			s = &model.UserSummary{UserID: userID, Reports: []model.DailyReport{}, Todos: []model.Todo{}}
			byUser[userID] = s
		}
		if s.Email == "" && email != "" {
			s.Email = email
		}
		return s
	}

	for _, r := range reports {
		s := get(r.UserID, r.UserEmail)
		s.Reports = append(s.Reports, r)
		s.DailyReportsCount++
		if r.Date > s.LatestReportDate {
			s.LatestReportDate = r.Date
		}
		activity[r.UserID] = max(activity[r.UserID], r.UpdatedAt.UnixNano())
	}
	for _, t := range todos {
		s := get(t.UserID, t.UserEmail)
		s.Todos = append(s.Todos, t)
		s.TodosCount++
		if t.IsCompleted {
			s.CompletedTodosCount++
		}
		activity[t.UserID] = max(activity[t.UserID], t.CreatedAt.UnixNano())
	}

	users := make([]model.UserSummary, 0, len(byUser))
	for _, s := range byUser {
		if s.Email == "" {
			s.Email = fallbackEmail(s.UserID)
		}
		users = append(users, *s)
	}
	sort.Slice(users, func(i, j int) bool {
		ai, aj := activity[users[i].UserID], activity[users[j].UserID]
		if ai != aj {
			return ai > aj
		}
		return users[i].UserID < users[j].UserID
	})
	return users, nil
}

func fallbackEmail(userID string) string {
	if len(userID) > 8 {
		userID = userID[:8]
	}
	return "user " + userID + "..."
}
