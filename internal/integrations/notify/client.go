package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger minimal logging interface for the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client is the HTTP client for the notification gateway. Deliveries are
// best-effort: a failed send never fails the operation that triggered it,
// it is only logged.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a notification gateway client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send posts an appointment event to the gateway. Errors are swallowed after
// logging; callers fire and forget.
func (c *Client) Send(ctx context.Context, event Event) {
	if err := c.send(ctx, event); err != nil {
		c.log.Warn("notify: failed to deliver %s for appointment %d: %v", event.Type, event.AppointmentID, err)
		return
	}

	c.log.Info("notify: delivered %s for appointment %d", event.Type, event.AppointmentID)
}

func (c *Client) send(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %v", err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return nil
}
