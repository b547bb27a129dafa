package sources

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSourceNames(t *testing.T) {
	assert.Equal(t, "reddit", NewRedditSource(nil).Name())
	assert.Equal(t, "twitter", NewTwitterSource(nil).Name())
	assert.Equal(t, "linkedin", NewLinkedInSource().Name())
	assert.Equal(t, "news", NewNewsSource().Name())
	assert.Equal(t, "youtube", NewYouTubeSource("key").Name())
}

func TestYouTubeSource_Enabled(t *testing.T) {
	assert.True(t, NewYouTubeSource("key").Enabled())
	assert.False(t, NewYouTubeSource("").Enabled())
}

func TestCredentiallessSourcesAlwaysEnabled(t *testing.T) {
	assert.True(t, NewRedditSource(nil).Enabled())
	assert.True(t, NewTwitterSource(nil).Enabled())
	assert.True(t, NewLinkedInSource().Enabled())
	assert.True(t, NewNewsSource().Enabled())
}

func TestRedditSourceDefaultSubreddits(t *testing.T) {
	source := NewRedditSource(nil)
	assert.Equal(t, defaultSubreddits, source.subreddits)

	custom := NewRedditSource([]string{"gradadmissions"})
	assert.Equal(t, []string{"gradadmissions"}, custom.subreddits)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "Plain number", input: "342", expected: 342},
		{name: "Thousands separator", input: "1,234", expected: 1234},
		{name: "K suffix", input: "1.2K", expected: 1200},
		{name: "Lowercase k suffix", input: "3k", expected: 3000},
		{name: "M suffix", input: "2M", expected: 2000000},
		{name: "Empty string", input: "", expected: 0},
		{name: "Garbage", input: "n/a", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCount(tt.input))
		})
	}
}

func TestTruncateContent(t *testing.T) {
	long := strings.Repeat("a", 600)
	assert.Len(t, truncateContent(long), 500)
	assert.Equal(t, "short", truncateContent("  short  "))

	multibyte := strings.Repeat("é", 600)
	assert.True(t, utf8.ValidString(truncateContent(multibyte)))
}

func TestPublisherFromTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "Standard Google News headline",
			title:    "LeapScholar raises new funding - TechCrunch",
			expected: "TechCrunch",
		},
		{
			name:     "No separator",
			title:    "Plain headline",
			expected: "News",
		},
		{
			name:     "Multiple separators keep the last segment",
			title:    "Visas - what changed - The Hindu",
			expected: "The Hindu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, publisherFromTitle(tt.title))
		})
	}
}

func TestAuthorFromTitle(t *testing.T) {
	assert.Equal(t, "Priya Sharma", authorFromTitle("Priya Sharma - My LeapScholar journey"))
	assert.Equal(t, "LinkedIn User", authorFromTitle("A post without separator"))
}
