package model

// Identity is the caller as asserted by the upstream auth proxy.
type Identity struct {
	UserID string
	Email  string
}

func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// UserSummary is one row of the admin dashboard.
type UserSummary struct {
	UserID              string        `json:"user_id"`
	Email               string        `json:"email"`
	DailyReportsCount   int           `json:"daily_reports_count"`
	TodosCount          int           `json:"todos_count"`
	CompletedTodosCount int           `json:"completed_todos_count"`
	LatestReportDate    string        `json:"latest_report_date,omitempty"`
	Reports             []DailyReport `json:"reports"`
	Todos               []Todo        `json:"todos"`
}
