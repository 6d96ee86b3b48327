package dto

type UpsertReportRequest struct {
	Reflection string `json:"reflection" validate:"max=10000"`
	WakeUpTime string `json:"wake_up_time"`
}

type CreateTodoRequest struct {
	Title      string `json:"title" validate:"required,max=500"`
	TargetDate string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTodoRequest changes whichever fields are present.
type UpdateTodoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=500"`
	IsCompleted *bool   `json:"is_completed"`
}

type CompleteAllRequest struct {
	TargetDate string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

type CompleteAllResponse struct {
	Updated int64 `json:"updated"`
}
