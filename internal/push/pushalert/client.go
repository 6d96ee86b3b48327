package pushalert

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"teamboard/internal/push"
)

const DefaultBaseURL = "https://api.pushalert.co"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

// WithBaseURL points the client at another host, mainly for tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

func (c *Client) Name() string { return "pushalert" }

type sendResponse struct {
	Success bool   `json:"success"`
	ID      any    `json:"id"`
	Msg     string `json:"msg"`
}

func (c *Client) Send(ctx context.Context, msg push.Message) error {
	form := url.Values{}
	form.Set("title", msg.Title)
	form.Set("message", msg.Body)
	if msg.URL != "" {
		form.Set("url", msg.URL)
	}
	if msg.Icon != "" {
		form.Set("icon", msg.Icon)
	}
	if msg.Image != "" {
		form.Set("large_image", msg.Image)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/send", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "api_key="+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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
		return fmt.Errorf("pushalert: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	var out sendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("pushalert: decode response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("pushalert: rejected: %s", out.Msg)
	}
	return nil
}
