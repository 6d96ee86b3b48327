package domain

import (
	"net/url"
	"strings"

	"teamboard/internal/model"
)

// ValidateTemplate requires a title. Links may be relative or
// protocol-relative; a link that names a scheme must use http or https.
func ValidateTemplate(t model.Template) error {
	if strings.TrimSpace(t.Title) == "" {
		return Validationf("title is required")
	}
	for field, value := range map[string]string{"url": t.URL, "icon": t.Icon, "image": t.Image} {
		if value == "" {
			continue
		}
		if !isLink(value) {
			return Validationf("%s must be a relative or http(s) link", field)
		}
	}
	return nil
}

func isLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "":
		return true
	case "http", "https":
		return u.Host != ""
	default:
		return false
	}
}
