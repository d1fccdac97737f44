package webhook_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/domain"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/messaging"
	"github.com/feral-file/ff-rental-indexer/internal/webhook"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newPublisher(t *testing.T, url string, maxRetries uint64) messaging.Publisher {
	t.Helper()
	p, err := webhook.NewPublisher(webhook.Config{
		URL:           url,
		Secret:        testSecret,
		MaxRetries:    maxRetries,
		RetryInterval: time.Millisecond,
	}, adapter.NewHTTPClient(2*time.Second), adapter.NewJSON(), adapter.NewClock())
	require.NoError(t, err)
	return p
}

func TestNewPublisher_Validation(t *testing.T) {
	_, err := webhook.NewPublisher(webhook.Config{Secret: testSecret}, adapter.NewHTTPClient(time.Second), adapter.NewJSON(), adapter.NewClock())
	assert.Error(t, err)

	_, err = webhook.NewPublisher(webhook.Config{URL: "http://localhost"}, adapter.NewHTTPClient(time.Second), adapter.NewJSON(), adapter.NewClock())
	assert.Error(t, err)
}

func TestPublisher_DeliversSignedChange(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		timestamp, err := strconv.ParseInt(r.Header.Get(webhook.HeaderTimestamp), 10, 64)
		if err != nil || r.Method != http.MethodPost ||
			r.Header.Get("Content-Type") != "application/json" ||
			r.Header.Get(webhook.HeaderEventType) != "projections.listing_created" ||
			!webhook.VerifySignature(testSecret, r.Header.Get(webhook.HeaderSignature), timestamp, r.Header.Get(webhook.HeaderEventID), body) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		received.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	p := newPublisher(t, server.URL, 0)
	defer p.Close()

	listingID := "7"
	change := testEvent("01JG8XAMPLE1234567890123456", domain.EventKindListingCreated).Data
	change.LedgerListingID = &listingID

	require.NoError(t, p.PublishChange(context.Background(), change))
	assert.Equal(t, int32(1), received.Load())
}

func TestPublisher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := newPublisher(t, server.URL, 2)
	require.NoError(t, p.PublishChange(context.Background(), testEvent("01JG8XAMPLE1234567890123456", domain.EventKindAssetMinted).Data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestPublisher_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := newPublisher(t, server.URL, 1)
	err := p.PublishChange(context.Background(), testEvent("01JG8XAMPLE1234567890123456", domain.EventKindAssetMinted).Data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
	assert.Equal(t, int32(2), calls.Load())
}

func TestPublisher_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("unknown event type"))
	}))
	defer server.Close()

	p := newPublisher(t, server.URL, 3)
	err := p.PublishChange(context.Background(), testEvent("01JG8XAMPLE1234567890123456", domain.EventKindListingCancelled).Data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
	assert.Equal(t, int32(1), calls.Load())
}
