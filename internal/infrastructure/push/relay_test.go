package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecomercado/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func relayConfig(url string) config.PushConfig {
	return config.PushConfig{
		Enabled:    true,
		URL:        url,
		AppID:      "app-1",
		AppToken:   "token-1",
		Attempts:   3,
		RetryDelay: 10 * time.Millisecond,
		Timeout:    time.Second,
	}
}

func TestRelaySend(t *testing.T) {
	t.Run("posts the payload once on success", func(t *testing.T) {
		var calls int32
		var got relayPayload

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewRelayClient(relayConfig(srv.URL), zap.NewNop())
		client.Send(context.Background(), "sub-42", "Order approved", "Your order is on its way")

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, "sub-42", got.SubscriberID)
		assert.Equal(t, "app-1", got.AppID)
		assert.Equal(t, "token-1", got.AppToken)
		assert.Equal(t, "Order approved", got.Title)
		assert.Equal(t, "Your order is on its way", got.Message)
	})

	t.Run("retries on server errors until success", func(t *testing.T) {
		var calls int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewRelayClient(relayConfig(srv.URL), zap.NewNop())
		client.Send(context.Background(), "sub-42", "t", "m")

		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		var calls int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewRelayClient(relayConfig(srv.URL), zap.NewNop())
		client.Send(context.Background(), "sub-42", "t", "m")

		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("stops retrying when the context is cancelled", func(t *testing.T) {
		var calls int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		cfg := relayConfig(srv.URL)
		cfg.RetryDelay = time.Second

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			client := NewRelayClient(cfg, zap.NewNop())
			client.Send(ctx, "sub-42", "t", "m")
			close(done)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("send did not stop after context cancellation")
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
