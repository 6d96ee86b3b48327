package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"teamboard/internal/push"
)

const DefaultBaseURL = "https://onesignal.com"

type Client struct {
	baseURL string
	appID   string
	apiKey  string
	http    *http.Client
}

func NewClient(appID, apiKey string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		appID:   appID,
		apiKey:  apiKey,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

func (c *Client) Name() string { return "onesignal" }

type notificationRequest struct {
	AppID            string            `json:"app_id"`
	IncludedSegments []string          `json:"included_segments"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	URL              string            `json:"url,omitempty"`
	ChromeWebIcon    string            `json:"chrome_web_icon,omitempty"`
	ChromeWebImage   string            `json:"chrome_web_image,omitempty"`
	Data             json.RawMessage   `json:"data,omitempty"`
}

type notificationResponse struct {
	ID     string          `json:"id"`
	Errors json.RawMessage `json:"errors"`
}

func (c *Client) Send(ctx context.Context, msg push.Message) error {
	content := msg.Body
	if content == "" {
		// OneSignal rejects empty contents.
		content = msg.Title
	}
	payload, err := json.Marshal(notificationRequest{
		AppID:            c.appID,
		IncludedSegments: []string{"Subscribed Users"},
		Headings:         map[string]string{"en": msg.Title},
		Contents:         map[string]string{"en": content},
		URL:              msg.URL,
		ChromeWebIcon:    msg.Icon,
		ChromeWebImage:   msg.Image,
		Data:             msg.Data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/notifications", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return err
	}
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("onesignal: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	var out notificationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("onesignal: decode response: %w", err)
	}
	if out.ID == "" {
		return fmt.Errorf("onesignal: no notification created: %s", string(out.Errors))
	}
	return nil
}
