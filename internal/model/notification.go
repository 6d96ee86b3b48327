package model

import (
	"encoding/json"
	"time"
)

// Template is the content shared by every notification of one broadcast.
type Template struct {
	Title   string          `json:"title"`
	Body    string          `json:"body,omitempty"`
	URL     string          `json:"url,omitempty"`
	Icon    string          `json:"icon,omitempty"`
	Image   string          `json:"image,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	// PushID is the push vendor's id when the content originated from a push.
	PushID string `json:"push_id,omitempty"`
}

type Notification struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Body      string          `json:"body,omitempty"`
	URL       string          `json:"url,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	Image     string          `json:"image,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	PushID    string          `json:"push_id,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewNotification materializes t for one user. Records are never created read.
func NewNotification(id, userID string, t Template, createdAt time.Time) Notification {
	return Notification{
		ID:        id,
		UserID:    userID,
		Title:     t.Title,
		Body:      t.Body,
		URL:       t.URL,
		Icon:      t.Icon,
		Image:     t.Image,
		Payload:   t.Payload,
		PushID:    t.PushID,
		IsRead:    false,
		CreatedAt: createdAt,
	}
}

type BatchReport struct {
	Index   int    `json:"index"`
	Size    int    `json:"size"`
	Created int    `json:"created"`
	Err     string `json:"error,omitempty"`
}

type BroadcastResult struct {
	CreatedCount   int            `json:"created_count"`
	RequestedCount int            `json:"requested_count"`
	PartialFailure bool           `json:"partial_failure"`
	Records        []Notification `json:"records"`
	Batches        []BatchReport  `json:"batches,omitempty"`
}
