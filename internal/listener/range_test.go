package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRange(t *testing.T) {
	tests := []struct {
		name     string
		from     uint64
		to       uint64
		n        int
		expected []blockRange
	}{
		{
			name:     "empty",
			from:     10,
			to:       9,
			n:        2,
			expected: nil,
		},
		{
			name:     "single worker",
			from:     100,
			to:       109,
			n:        1,
			expected: []blockRange{{100, 109}},
		},
		{
			name:     "even split",
			from:     100,
			to:       109,
			n:        2,
			expected: []blockRange{{100, 104}, {105, 109}},
		},
		{
			name:     "remainder goes to the first ranges",
			from:     0,
			to:       9,
			n:        3,
			expected: []blockRange{{0, 3}, {4, 6}, {7, 9}},
		},
		{
			name:     "more workers than blocks",
			from:     5,
			to:       6,
			n:        4,
			expected: []blockRange{{5, 5}, {6, 6}},
		},
		{
			name:     "single block",
			from:     7,
			to:       7,
			n:        8,
			expected: []blockRange{{7, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitRange(tt.from, tt.to, tt.n))
		})
	}
}

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, uint64(0), saturatingSub(5, 12))
	assert.Equal(t, uint64(0), saturatingSub(12, 12))
	assert.Equal(t, uint64(88), saturatingSub(100, 12))
}
