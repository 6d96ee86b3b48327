package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"teamboard/internal/model"
)

type Consumer interface {
	Start(ctx context.Context) error
}

type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}

// BroadcastMessage is the body of a queued broadcast.
type BroadcastMessage struct {
	Title    string          `json:"title"`
	Body     string          `json:"body,omitempty"`
	URL      string          `json:"url,omitempty"`
	Icon     string          `json:"icon,omitempty"`
	Image    string          `json:"image,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	PushID   string          `json:"push_id,omitempty"`
	SkipPush bool            `json:"skip_push,omitempty"`
}

func NewBroadcastMessage(t model.Template, skipPush bool) BroadcastMessage {
	return BroadcastMessage{
		Title:    t.Title,
		Body:     t.Body,
		URL:      t.URL,
		Icon:     t.Icon,
		Image:    t.Image,
		Payload:  t.Payload,
		PushID:   t.PushID,
		SkipPush: skipPush,
	}
}

func (m BroadcastMessage) Template() model.Template {
	return model.Template{
		Title:   m.Title,
		Body:    m.Body,
		URL:     m.URL,
		Icon:    m.Icon,
		Image:   m.Image,
		Payload: m.Payload,
		PushID:  m.PushID,
	}
}

// BroadcastRoutingKey is the routing key queued broadcasts are published under.
func BroadcastRoutingKey(prefix string) string {
	if prefix == "" {
		prefix = "notification"
	}
	return prefix + ".broadcast"
}

// PublishBroadcast encodes msg and publishes it under the broadcast routing key for prefix.
func PublishBroadcast(ctx context.Context, pub Publisher, prefix string, msg BroadcastMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode broadcast message: %w", err)
	}
	return pub.Publish(ctx, payload, BroadcastRoutingKey(prefix))
}
