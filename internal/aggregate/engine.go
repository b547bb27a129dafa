// Package aggregate derives the dashboard views from a batch of mentions.
// Every computation is a pure function over the batch and handles the
// empty-batch case explicitly.
package aggregate

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/leapscholar/leappulse/internal/models"
)

// Sentiment scores within (-0.15, 0.15) count as neutral.
const neutralThreshold = 0.15

// DefaultTopicLimit bounds the trending-topics view.
const DefaultTopicLimit = 8

var hashtagPattern = regexp.MustCompile(`#(\w{3,30})`)

// Domain phrases mapped to the topic tag they count toward. Matched as
// case-insensitive substrings of mention content.
var domainTopics = map[string][]string{
	"#visaupdates":      {"visa update", "visa delay", "visa approved", "visa reject"},
	"#ielts":            {"ielts"},
	"#studyabroad":      {"study abroad"},
	"#scholarship":      {"scholarship"},
	"#studentvisa":      {"student visa"},
	"#mastersabroad":    {"masters abroad", "ms abroad"},
	"#universityranking": {"university ranking", "qs ranking"},
	"#ieltsprep":        {"ielts prep", "ielts preparation"},
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// SentimentDistribution buckets the batch into Positive/Negative/Neutral
// with counts and percentages of batch size. On an empty batch all three
// buckets are zero; otherwise the percentages sum to 100 within rounding.
func SentimentDistribution(mentions []models.Mention) []models.SentimentBucket {
	if len(mentions) == 0 {
		return []models.SentimentBucket{
			{Label: "Positive"},
			{Label: "Negative"},
			{Label: "Neutral"},
		}
	}

	positive, negative := 0, 0
	for _, m := range mentions {
		switch {
		case m.SentimentScore > neutralThreshold:
			positive++
		case m.SentimentScore < -neutralThreshold:
			negative++
		}
	}
	neutral := len(mentions) - positive - negative
	total := float64(len(mentions))

	return []models.SentimentBucket{
		{Label: "Positive", Value: round1(float64(positive) / total * 100), Count: positive},
		{Label: "Negative", Value: round1(float64(negative) / total * 100), Count: negative},
		{Label: "Neutral", Value: round1(float64(neutral) / total * 100), Count: neutral},
	}
}

// PlatformBreakdown counts mentions per platform, ordered by descending
// count. Ties keep the first-encountered platform first.
func PlatformBreakdown(mentions []models.Mention) []models.PlatformStat {
	if len(mentions) == 0 {
		return []models.PlatformStat{}
	}

	counts := make(map[string]int)
	var order []string
	for _, m := range mentions {
		platform := m.Platform
		if platform == "" {
			platform = "Unknown"
		}
		if _, ok := counts[platform]; !ok {
			order = append(order, platform)
		}
		counts[platform]++
	}

	stats := make([]models.PlatformStat, 0, len(order))
	total := float64(len(mentions))
	for _, platform := range order {
		stats = append(stats, models.PlatformStat{
			Platform:     platform,
			MentionCount: counts[platform],
			Percentage:   round1(float64(counts[platform]) / total * 100),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MentionCount > stats[j].MentionCount
	})

	return stats
}

// TrendingTopics extracts hashtags and domain phrase hits from mention
// content, merges tags case-insensitively and returns the top-N by count.
func TrendingTopics(mentions []models.Mention, limit int) []models.TrendingTopic {
	if limit <= 0 {
		limit = DefaultTopicLimit
	}

	counts := make(map[string]int)

	for _, m := range mentions {
		for _, match := range hashtagPattern.FindAllStringSubmatch(m.Content, -1) {
			counts["#"+strings.ToLower(match[1])]++
		}
	}

	for tag, phrases := range domainTopics {
		hits := 0
		for _, m := range mentions {
			lower := strings.ToLower(m.Content)
			for _, phrase := range phrases {
				if strings.Contains(lower, phrase) {
					hits++
					break
				}
			}
		}
		if hits > 0 {
			counts[strings.ToLower(tag)] += hits
		}
	}

	topics := make([]models.TrendingTopic, 0, len(counts))
	for tag, count := range counts {
		topics = append(topics, models.TrendingTopic{
			Tag:      tag,
			Mentions: count,
			Trend:    trendLabel(count),
		})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Mentions != topics[j].Mentions {
			return topics[i].Mentions > topics[j].Mentions
		}
		return topics[i].Tag < topics[j].Tag
	})

	if len(topics) > limit {
		topics = topics[:limit]
	}

	return topics
}

func trendLabel(count int) string {
	switch {
	case count > 3:
		return "up"
	case count > 1:
		return "stable"
	default:
		return "down"
	}
}

// DashboardMetrics computes the hero metrics. The empty batch yields the
// defined defaults: net sentiment 50, everything else zero.
func DashboardMetrics(mentions []models.Mention) models.DashboardMetrics {
	if len(mentions) == 0 {
		return models.DashboardMetrics{NetSentiment: 50}
	}

	var sum float64
	totalEngagement := 0
	for _, m := range mentions {
		sum += m.SentimentScore
		totalEngagement += m.Engagement()
	}
	mean := sum / float64(len(mentions))

	return models.DashboardMetrics{
		NetSentiment:    netSentiment(mean),
		SentimentChange: round1((mean + 0.05) * 10),
		TotalMentions:   len(mentions),
		AvgEngagement:   round1(float64(totalEngagement) / float64(len(mentions)) / 1000),
	}
}

// WeeklyTrend partitions the batch into 7 contiguous chunks by input
// order and maps each chunk's mean sentiment to a 0-100 score. Weekdays
// with an empty chunk default to 50. This is a positional heuristic over
// the current batch, not a calendar grouping: all seven labels are always
// emitted and the Sunday slice extends to the end of the batch.
func WeeklyTrend(mentions []models.Mention) []models.TrendPoint {
	chunkSize := len(mentions) / 7
	if chunkSize < 1 {
		chunkSize = 1
	}

	points := make([]models.TrendPoint, 0, len(weekdayLabels))
	for i, day := range weekdayLabels {
		start := i * chunkSize
		end := start + chunkSize
		if i == len(weekdayLabels)-1 {
			end = len(mentions)
		}
		if start > len(mentions) {
			start = len(mentions)
		}
		if end > len(mentions) {
			end = len(mentions)
		}

		score := 50
		if chunk := mentions[start:end]; len(chunk) > 0 {
			var sum float64
			for _, m := range chunk {
				sum += m.SentimentScore
			}
			score = netSentiment(sum / float64(len(chunk)))
		}

		points = append(points, models.TrendPoint{DayLabel: day, Score: score})
	}

	return points
}

// netSentiment maps a mean score in [-1, 1] to the 0-100 scale.
func netSentiment(mean float64) int {
	n := int(math.Round((mean + 1) * 50))
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
