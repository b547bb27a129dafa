package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		brand    string
		expected []string
	}{
		{
			name:     "Compound camel-case brand",
			brand:    "LeapScholar",
			expected: []string{"LeapScholar", "leapscholar", "Leap Scholar", "leap scholar"},
		},
		{
			name:     "Single-word capitalized brand",
			brand:    "Yocket",
			expected: []string{"Yocket", "yocket"},
		},
		{
			name:     "Already lowercase single word",
			brand:    "yocket",
			expected: []string{"yocket"},
		},
		{
			name:     "Empty brand degenerates to empty query",
			brand:    "",
			expected: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Expand(tt.brand))
		})
	}
}

func TestExpandPreservesFirstSeenOrder(t *testing.T) {
	queries := Expand("LeapScholar")
	assert.Equal(t, "LeapScholar", queries[0], "verbatim brand must come first")

	seen := make(map[string]bool)
	for _, q := range queries {
		assert.False(t, seen[q], "duplicate query variant: %s", q)
		seen[q] = true
	}
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		brand    string
		expected bool
	}{
		{
			name:     "Compound brand word alone is not enough",
			text:     "I love leaps of faith",
			brand:    "LeapScholar",
			expected: false,
		},
		{
			name:     "Space-joined compound matches",
			text:     "leap scholar helped me",
			brand:    "LeapScholar",
			expected: true,
		},
		{
			name:     "Concatenated compound matches",
			text:     "Just booked a call with LEAPSCHOLAR counselors",
			brand:    "LeapScholar",
			expected: true,
		},
		{
			name:     "Second word alone is not enough",
			text:     "scholarship deadlines are brutal this year",
			brand:    "LeapScholar",
			expected: false,
		},
		{
			name:     "Single-word brand substring match",
			text:     "Comparing Yocket premium vs free tier",
			brand:    "Yocket",
			expected: true,
		},
		{
			name:     "Single-word brand absent",
			text:     "study abroad consultants ranked",
			brand:    "Yocket",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRelevant(tt.text, tt.brand))
		})
	}
}
