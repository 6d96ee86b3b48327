package pushalert

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"teamboard/internal/model"
)

const DefaultTitle = "Notification"

var ErrUnrecognizedPayload = errors.New("unrecognized pushalert payload")

const maxDataDepth = 8

// ParseWebhook extracts a notification template from a PushAlert webhook body.
// Three shapes are accepted: {"notification": {...}}, a flat object whose
// title or message is set, and {"data": ...} holding any of these shapes,
// however deeply nested. The matched object is kept as the template payload.
func ParseWebhook(body []byte) (model.Template, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return model.Template{}, fmt.Errorf("%w: %w", ErrUnrecognizedPayload, err)
	}

	fields := extract(root, 0)
	if fields == nil {
		return model.Template{}, ErrUnrecognizedPayload
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return model.Template{}, err
	}
	tmpl := model.Template{
		Title:   first(fields, "title"),
		Body:    first(fields, "body", "message"),
		URL:     first(fields, "url", "link"),
		Icon:    first(fields, "icon"),
		Image:   first(fields, "image", "large_image"),
		PushID:  first(fields, "id", "notification_id"),
		Payload: payload,
	}
	if tmpl.Title == "" {
		tmpl.Title = DefaultTitle
	}
	return tmpl, nil
}

func extract(v any, depth int) map[string]any {
	obj, ok := v.(map[string]any)
	if !ok || depth > maxDataDepth {
		return nil
	}
	if n, ok := obj["notification"].(map[string]any); ok {
		return n
	}
	if truthy(obj["title"]) || truthy(obj["message"]) {
		return obj
	}
	if data, ok := obj["data"]; ok {
		return extract(data, depth+1)
	}
	return nil
}

// truthy treats empty strings, zero, false and null as unset.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return v != 0
	case bool:
		return v
	default:
		return true
	}
}

// first returns the first non-empty value among keys, rendering numbers as text.
func first(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
