package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
	"github.com/tellor-io/node-storage-monitor/internal/logger"
)

const userAgent = "node-storage-monitor/1.0"

// Discord caps message content at 2000 characters and rejects anything
// longer.
const maxContentLen = 2000

// DeliveryError is a webhook delivery that did not succeed. Status is the
// HTTP status code, or zero when the request never got a response.
type DeliveryError struct {
	Status int
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("webhook delivery failed: status %d", e.Status)
	}
	return fmt.Sprintf("webhook delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Discord posts messages to a Discord webhook.
type Discord struct {
	client     *http.Client
	webhookURL string
	serverName string
	log        logger.Logger
}

func NewDiscord(webhookURL, serverName string, timeout time.Duration, log logger.Logger) *Discord {
	return &Discord{
		client:     &http.Client{Timeout: timeout},
		webhookURL: webhookURL,
		serverName: serverName,
		log:        log,
	}
}

func (d *Discord) Alert(ctx context.Context, ev domain.Event) error {
	return d.Send(ctx, formatAlert(d.serverName, ev))
}

func (d *Discord) Recovered(ctx context.Context, ev domain.Event) error {
	return d.Send(ctx, formatRecovery(d.serverName, ev))
}

// Send posts one message with a single attempt. There is no in-call retry;
// the alert controller retries on the next qualifying tick instead.
func (d *Discord) Send(ctx context.Context, content string) error {
	content = truncate(content, maxContentLen)

	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return &DeliveryError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &DeliveryError{Status: resp.StatusCode}
	}

	d.log.Debug("webhook delivered", "status", resp.StatusCode)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
