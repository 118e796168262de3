package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
	"github.com/tellor-io/node-storage-monitor/internal/logger"
)

type capturedRequest struct {
	method      string
	contentType string
	userAgent   string
	content     string
}

type webhookRecorder struct {
	mu  sync.Mutex
	got []capturedRequest
}

func (w *webhookRecorder) add(r capturedRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.got = append(w.got, r)
}

func (w *webhookRecorder) requests() []capturedRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]capturedRequest(nil), w.got...)
}

// newWebhookServer fakes the Discord webhook endpoint and records what it
// receives.
func newWebhookServer(t *testing.T, status int) (*httptest.Server, *webhookRecorder) {
	t.Helper()

	rec := &webhookRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Decode failures surface as empty content in the assertions.
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)

		rec.add(capturedRequest{
			method:      r.Method,
			contentType: r.Header.Get("Content-Type"),
			userAgent:   r.Header.Get("User-Agent"),
			content:     payload["content"],
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, rec
}

func TestSendPostsContentPayload(t *testing.T) {
	// Arrange
	srv, rec := newWebhookServer(t, http.StatusNoContent)
	d := NewDiscord(srv.URL, "tellor-node-1", 5*time.Second, logger.Nop())

	// Act
	err := d.Send(context.Background(), "hello from the monitor")

	// Assert
	require.NoError(t, err)
	reqs := rec.requests()
	require.Len(t, reqs, 1)

	req := reqs[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "application/json", req.contentType)
	assert.Equal(t, "node-storage-monitor/1.0", req.userAgent)
	assert.Equal(t, "hello from the monitor", req.content)
}

func TestSendReportsHTTPErrorStatus(t *testing.T) {
	// Arrange
	srv, _ := newWebhookServer(t, http.StatusInternalServerError)
	d := NewDiscord(srv.URL, "tellor-node-1", 5*time.Second, logger.Nop())

	// Act
	err := d.Send(context.Background(), "boom")

	// Assert
	var dErr *DeliveryError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, http.StatusInternalServerError, dErr.Status)
}

func TestSendReportsTransportError(t *testing.T) {
	// Arrange: a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := NewDiscord(url, "tellor-node-1", time.Second, logger.Nop())

	// Act
	err := d.Send(context.Background(), "unreachable")

	// Assert
	var dErr *DeliveryError
	require.ErrorAs(t, err, &dErr)
	assert.Zero(t, dErr.Status)
	assert.Error(t, errors.Unwrap(err))
}

func TestSendTruncatesOversizedContent(t *testing.T) {
	// Arrange
	srv, rec := newWebhookServer(t, http.StatusNoContent)
	d := NewDiscord(srv.URL, "tellor-node-1", 5*time.Second, logger.Nop())

	// Act
	err := d.Send(context.Background(), strings.Repeat("x", 2500))

	// Assert
	require.NoError(t, err)
	reqs := rec.requests()
	require.Len(t, reqs, 1)
	assert.Len(t, reqs[0].content, 2000)
}

func TestAlertMessageCarriesThresholdDetail(t *testing.T) {
	// Arrange
	srv, rec := newWebhookServer(t, http.StatusNoContent)
	d := NewDiscord(srv.URL, "tellor-node-1", 5*time.Second, logger.Nop())

	ev := domain.Event{
		Target:    "root",
		Kind:      domain.KindFilesystem,
		Path:      "/",
		Value:     95.5,
		Unit:      domain.UnitPercent,
		Threshold: 90,
		TotalGB:   500,
		FreeGB:    22.5,
	}

	// Act
	require.NoError(t, d.Alert(context.Background(), ev))

	// Assert
	reqs := rec.requests()
	require.Len(t, reqs, 1)
	msg := reqs[0].content
	assert.Contains(t, msg, "🚨")
	assert.Contains(t, msg, "tellor-node-1 - root")
	assert.Contains(t, msg, "Current: 95.50 %")
	assert.Contains(t, msg, "Threshold: 90.00 %")
	assert.Contains(t, msg, "Path: /")
	assert.Contains(t, msg, "Free: 22.5 GB of 500.0 GB")
}

func TestRecoveryMessageOmitsCapacityDetail(t *testing.T) {
	// Arrange
	srv, rec := newWebhookServer(t, http.StatusNoContent)
	d := NewDiscord(srv.URL, "tellor-node-1", 5*time.Second, logger.Nop())

	ev := domain.Event{
		Target:    "layer data",
		Kind:      domain.KindDirectory,
		Path:      "/home/tellor/.layer/data",
		Value:     120.25,
		Unit:      domain.UnitGB,
		Threshold: 350,
	}

	// Act
	require.NoError(t, d.Recovered(context.Background(), ev))

	// Assert
	reqs := rec.requests()
	require.Len(t, reqs, 1)
	msg := reqs[0].content
	assert.Contains(t, msg, "✅")
	assert.Contains(t, msg, "tellor-node-1 - layer data")
	assert.Contains(t, msg, "Current: 120.25 GB")
	assert.Contains(t, msg, "Threshold: 350.00 GB")
	assert.NotContains(t, msg, "Free:")
}
