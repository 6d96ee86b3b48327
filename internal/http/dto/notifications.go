package dto

import (
	"encoding/json"

	"teamboard/internal/model"
)

// TemplateRequest is the notification content shared by every create endpoint.
type TemplateRequest struct {
	Title   string          `json:"title" validate:"required"`
	Body    string          `json:"body"`
	URL     string          `json:"url"`
	Icon    string          `json:"icon"`
	Image   string          `json:"image"`
	Payload json.RawMessage `json:"payload"`
}

func (r TemplateRequest) Template() model.Template {
	return model.Template{
		Title:   r.Title,
		Body:    r.Body,
		URL:     r.URL,
		Icon:    r.Icon,
		Image:   r.Image,
		Payload: r.Payload,
	}
}

type CreateNotificationRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	TemplateRequest
}

type BroadcastRequest struct {
	TemplateRequest
	SkipPush bool `json:"skip_push"`
}

type PushSyncRequest struct {
	PushID string `json:"push_id" validate:"required,max=191"`
	TemplateRequest
}

type BroadcastResponse struct {
	Success        bool                 `json:"success"`
	CreatedCount   int                  `json:"created_count"`
	RequestedCount int                  `json:"requested_count"`
	PartialFailure bool                 `json:"partial_failure"`
	Batches        []model.BatchReport  `json:"batches,omitempty"`
	Notifications  []model.Notification `json:"notifications,omitempty"`
}

func NewBroadcastResponse(r model.BroadcastResult, withRecords bool) BroadcastResponse {
	out := BroadcastResponse{
		Success:        true,
		CreatedCount:   r.CreatedCount,
		RequestedCount: r.RequestedCount,
		PartialFailure: r.PartialFailure,
		Batches:        r.Batches,
	}
	if withRecords {
		out.Notifications = r.Records
	}
	return out
}

type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type RecipientsResponse struct {
	UserIDs []string `json:"user_ids"`
	Count   int      `json:"count"`
}
