package model

import "time"

// DailyReport is one user's journal entry for a calendar date.
type DailyReport struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	UserEmail string `json:"user_email,omitempty" db:"user_email"`
	// Date is formatted as YYYY-MM-DD.
	Date       string `json:"date" db:"report_date"`
	Reflection string `json:"reflection,omitempty" db:"reflection"`
	// WakeUpTime is formatted as HH:MM:SS, empty when unset.
	WakeUpTime string    `json:"wake_up_time,omitempty" db:"wake_up_time"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Todo is a to-do item, optionally pinned to a target date.
type Todo struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	UserEmail   string    `json:"user_email,omitempty" db:"user_email"`
	Title       string    `json:"title" db:"title"`
	IsCompleted bool      `json:"is_completed" db:"is_completed"`
	TargetDate  string    `json:"target_date,omitempty" db:"target_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
