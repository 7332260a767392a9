package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ecomercado/backend/internal/application/notification"
	"github.com/ecomercado/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RelayClient delivers push notifications through an external relay service.
// Delivery is best effort: failures are retried a fixed number of times and
// then logged, never surfaced to the caller's request.
type RelayClient struct {
	httpClient *http.Client
	url        string
	appID      string
	appToken   string
	attempts   int
	retryDelay time.Duration
	logger     *zap.Logger
}

type relayPayload struct {
	SubscriberID string `json:"subscriber_id"`
	AppID        string `json:"app_id"`
	AppToken     string `json:"app_token"`
	Title        string `json:"title"`
	Message      string `json:"message"`
}

// NewRelayClient creates a push relay client
func NewRelayClient(cfg config.PushConfig, logger *zap.Logger) *RelayClient {
	return &RelayClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		appID:      cfg.AppID,
		appToken:   cfg.AppToken,
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// Send posts one notification to the relay, retrying on failure
func (c *RelayClient) Send(ctx context.Context, subscriberID, title, message string) {
	body, err := json.Marshal(relayPayload{
		SubscriberID: subscriberID,
		AppID:        c.appID,
		AppToken:     c.appToken,
		Title:        title,
		Message:      message,
	})
	if err != nil {
		c.logger.Error("Failed to encode push payload", zap.Error(err))
		return
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				c.logger.Warn("Push delivery abandoned",
					zap.String("subscriber_id", subscriberID),
					zap.Error(ctx.Err()))
				return
			case <-time.After(c.retryDelay):
			}
		}

		if lastErr = c.post(ctx, body); lastErr == nil {
			return
		}
		c.logger.Warn("Push delivery attempt failed",
			zap.String("subscriber_id", subscriberID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
	}

	c.logger.Error("Push delivery failed",
		zap.String("subscriber_id", subscriberID),
		zap.Int("attempts", c.attempts),
		zap.Error(lastErr))
}

func (c *RelayClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay responded with status %d", resp.StatusCode)
	}
	return nil
}

// Ensure RelayClient implements the dispatcher's push sender
var _ notification.PushSender = (*RelayClient)(nil)
