package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/feral-file/ff-rental-indexer/internal/adapter"
)

// GenerateSignedPayload serializes the event and signs it with HMAC-SHA256.
// The signed string is "{timestamp}.{event_id}.{json_body}" so receivers can
// reject stale timestamps and deduplicate by event id.
func GenerateSignedPayload(jsonAdapter adapter.JSON, secret string, event Event, now time.Time) (payload []byte, signature string, timestamp int64, err error) {
	payload, err = jsonAdapter.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	timestamp = now.Unix()
	return payload, Sign(secret, timestamp, event.EventID, payload), timestamp, nil
}

// Sign returns the signature header value, "sha256=<hex>"
func Sign(secret string, timestamp int64, eventID string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.%s.", timestamp, eventID)
	h.Write(payload)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks a signature header in constant time
func VerifySignature(secret string, signature string, timestamp int64, eventID string, payload []byte) bool {
	expected := Sign(secret, timestamp, eventID, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
