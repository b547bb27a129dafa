package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Priority tiers, in decreasing order of urgency.
const (
	PriorityCritical = "CRITICAL ALERT"
	PriorityGold     = "MARKETING GOLD"
	PriorityHigh     = "HIGH PRIORITY"
	PriorityNeutral  = "NEUTRAL"
)

// MaxContentLength bounds the stored text of a single mention.
const MaxContentLength = 500

// Mention represents one observed reference to the brand on a platform.
// Mentions are immutable once created.
type Mention struct {
	ID             string    `json:"id"`
	Platform       string    `json:"platform"`
	Content        string    `json:"content"`
	SentimentScore float64   `json:"sentiment_score"`
	Likes          int       `json:"likes"`
	Shares         int       `json:"shares"`
	Comments       int       `json:"comments"`
	Author         string    `json:"author"`
	SourceURL      string    `json:"source_url"`
	Priority       string    `json:"priority"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMention assembles a canonical mention from a raw collector tuple plus
// its computed sentiment and priority. Content is truncated, the score is
// clamped to [-1, 1], counters are floored at zero, and the ID and
// ingestion timestamp are assigned here.
func NewMention(platform, content string, likes, shares, comments int, author, sourceURL string, sentiment float64, priority string) Mention {
	content = TruncateContent(content)
	if sentiment > 1.0 {
		sentiment = 1.0
	}
	if sentiment < -1.0 {
		sentiment = -1.0
	}

	return Mention{
		ID:             uuid.New().String(),
		Platform:       platform,
		Content:        content,
		SentimentScore: sentiment,
		Likes:          max0(likes),
		Shares:         max0(shares),
		Comments:       max0(comments),
		Author:         author,
		SourceURL:      sourceURL,
		Priority:       priority,
		CreatedAt:      time.Now().UTC(),
	}
}

// TruncateContent bounds text to MaxContentLength bytes without
// splitting a multi-byte rune, so truncated content stays valid UTF-8.
func TruncateContent(text string) string {
	if len(text) <= MaxContentLength {
		return text
	}
	cut := MaxContentLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Engagement is the combined interaction count of a mention.
func (m Mention) Engagement() int {
	return m.Likes + m.Shares + m.Comments
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// SentimentBucket is one slice of the sentiment distribution.
type SentimentBucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// PlatformStat is the mention share of a single platform.
type PlatformStat struct {
	Platform     string  `json:"platform"`
	MentionCount int     `json:"mention_count"`
	Percentage   float64 `json:"percentage"`
}

// TrendingTopic is a deduplicated topic tag with its aggregate count.
type TrendingTopic struct {
	Tag      string `json:"tag"`
	Mentions int    `json:"mentions"`
	Trend    string `json:"trend"` // "up", "stable" or "down"
}

// DashboardMetrics holds the hero numbers of the dashboard.
type DashboardMetrics struct {
	NetSentiment int `json:"net_sentiment"` // 0-100
	// SentimentChange is derived from the current batch alone; there is no
	// historical baseline behind it.
	SentimentChange float64 `json:"sentiment_change"`
	TotalMentions   int     `json:"total_mentions"`
	AvgEngagement   float64 `json:"avg_engagement"`
}

// TrendPoint is one weekday of the synthesized weekly trend.
type TrendPoint struct {
	DayLabel string `json:"day_label"`
	Score    int    `json:"score"` // 0-100
}
