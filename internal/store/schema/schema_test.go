package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsset_ActiveHolder(t *testing.T) {
	holder := "0x00000000000000000000000000000000000000B2"
	expires := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		asset    Asset
		now      time.Time
		expected *string
	}{
		{name: "never rented", asset: Asset{}, now: expires, expected: nil},
		{name: "before expiry", asset: Asset{Holder: &holder, HolderExpiresAt: &expires}, now: expires.Add(-time.Second), expected: &holder},
		{name: "at expiry", asset: Asset{Holder: &holder, HolderExpiresAt: &expires}, now: expires, expected: nil},
		{name: "holder without expiry", asset: Asset{Holder: &holder}, now: expires, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.asset.ActiveHolder(tt.now))
		})
	}
}

func TestRental_IsExpired(t *testing.T) {
	r := Rental{ExpiresAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

	assert.False(t, r.IsExpired(r.ExpiresAt.Add(-time.Minute)))
	assert.True(t, r.IsExpired(r.ExpiresAt))
	assert.True(t, r.IsExpired(r.ExpiresAt.Add(time.Hour)))
}
