package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
	"github.com/feral-file/ff-rental-indexer/internal/messaging"
)

// Config holds the webhook endpoint configuration
type Config struct {
	URL    string
	Secret string
	// MaxRetries bounds redeliveries after the first attempt
	MaxRetries    uint64
	RetryInterval time.Duration
}

type publisher struct {
	config Config
	client adapter.HTTPClient
	json   adapter.JSON
	clock  adapter.Clock
}

// NewPublisher creates a publisher that POSTs each projection change, signed, to one endpoint
func NewPublisher(cfg Config, client adapter.HTTPClient, jsonAdapter adapter.JSON, clock adapter.Clock) (messaging.Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("webhook url is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 500 * time.Millisecond
	}

	return &publisher{
		config: cfg,
		client: client,
		json:   jsonAdapter,
		clock:  clock,
	}, nil
}

// PublishChange delivers the change. Rate limiting and server errors are retried
// up to MaxRetries; other 4xx responses are not.
func (p *publisher) PublishChange(ctx context.Context, change messaging.ProjectionChange) error {
	event := NewEvent(change)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.config.RetryInterval
	b.MaxInterval = 8 * p.config.RetryInterval
	b.MaxElapsedTime = 0
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	attempt := 0
	operation := func() error {
		attempt++
		result, err := p.deliver(ctx, event)
		if err != nil {
			return err
		}
		logger.DebugCtx(ctx, "Webhook delivered",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Int("status_code", result.StatusCode),
			zap.Int("attempt", attempt))
		return nil
	}

	notify := func(err error, d time.Duration) {
		logger.WarnCtx(ctx, "Webhook delivery failed, retrying",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.Int("attempt", attempt),
			zap.Duration("next_retry_in", d))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, p.config.MaxRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return fmt.Errorf("failed to deliver webhook %s: %w", event.EventID, err)
	}
	return nil
}

func (p *publisher) deliver(ctx context.Context, event Event) (DeliveryResult, error) {
	payload, signature, timestamp, err := GenerateSignedPayload(p.json, p.config.Secret, event, p.clock.Now())
	if err != nil {
		return DeliveryResult{}, backoff.Permanent(err)
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"User-Agent":    userAgent,
		HeaderSignature: signature,
		HeaderEventID:   event.EventID,
		HeaderEventType: event.EventType,
		HeaderTimestamp: strconv.FormatInt(timestamp, 10),
	}

	resp, err := p.client.PostWithHeadersNoRetry(ctx, p.config.URL, headers, bytes.NewReader(payload))
	if err != nil {
		if ctx.Err() != nil {
			return DeliveryResult{}, backoff.Permanent(err)
		}
		return DeliveryResult{}, fmt.Errorf("failed to post webhook: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		body = []byte{}
	}
	result := DeliveryResult{StatusCode: resp.StatusCode, Body: string(body)}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return result, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return result, fmt.Errorf("webhook endpoint returned HTTP %d: %s", resp.StatusCode, result.Body)
	default:
		return result, backoff.Permanent(fmt.Errorf("webhook endpoint rejected delivery with HTTP %d: %s", resp.StatusCode, result.Body))
	}
}

// Close is a no-op; the HTTP client holds no dedicated connection
func (p *publisher) Close() {}
