package models

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMentionAssignsIdentity(t *testing.T) {
	m := NewMention("Reddit", "a helpful post", 3, 1, 2, "u/someone", "https://reddit.com/1", 0.4, PriorityNeutral)

	_, err := uuid.Parse(m.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), m.CreatedAt, 5*time.Second)

	other := NewMention("Reddit", "a helpful post", 3, 1, 2, "u/someone", "https://reddit.com/1", 0.4, PriorityNeutral)
	assert.NotEqual(t, m.ID, other.ID)
}

func TestNewMentionTruncatesContent(t *testing.T) {
	long := strings.Repeat("x", MaxContentLength+200)

	m := NewMention("Twitter", long, 0, 0, 0, "@a", "https://example.com", 0, PriorityNeutral)

	assert.Len(t, m.Content, MaxContentLength)
}

func TestTruncateContentKeepsRuneBoundaries(t *testing.T) {
	// Place a two-byte rune straddling the byte limit.
	straddled := strings.Repeat("x", MaxContentLength-1) + "é" + strings.Repeat("y", 50)

	got := TruncateContent(straddled)

	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.Len(t, got, MaxContentLength-1)
	assert.True(t, strings.HasSuffix(got, "x"))

	multibyte := strings.Repeat("日", MaxContentLength)
	got = TruncateContent(multibyte)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), MaxContentLength)

	short := "héllo"
	assert.Equal(t, short, TruncateContent(short))
}

func TestNewMentionClampsSentiment(t *testing.T) {
	high := NewMention("News", "text", 0, 0, 0, "a", "u", 3.7, PriorityNeutral)
	low := NewMention("News", "text", 0, 0, 0, "a", "u", -2.1, PriorityNeutral)

	assert.Equal(t, 1.0, high.SentimentScore)
	assert.Equal(t, -1.0, low.SentimentScore)
}

func TestNewMentionFloorsCounters(t *testing.T) {
	m := NewMention("YouTube", "text", -5, -1, -9, "a", "u", 0, PriorityNeutral)

	assert.Zero(t, m.Likes)
	assert.Zero(t, m.Shares)
	assert.Zero(t, m.Comments)
}

func TestEngagement(t *testing.T) {
	m := Mention{Likes: 10, Shares: 4, Comments: 6}
	assert.Equal(t, 20, m.Engagement())

	assert.Zero(t, Mention{}.Engagement())
}
