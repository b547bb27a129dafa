package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapscholar/leappulse/internal/models"
)

// Multi fans each write out to every configured sink. A failing sink
// does not stop the others; the combined error lists every failure.
type Multi struct {
	sinks []Sink
}

var _ Sink = (*Multi)(nil)

// NewMulti combines sinks. Returns nil when no sink is configured so
// callers can skip persistence entirely.
func NewMulti(sinks ...Sink) *Multi {
	if len(sinks) == 0 {
		return nil
	}
	return &Multi{sinks: sinks}
}

func (m *Multi) SaveMentions(ctx context.Context, mentions []models.Mention) error {
	return m.each(func(s Sink) error { return s.SaveMentions(ctx, mentions) })
}

func (m *Multi) SaveSentimentDistribution(ctx context.Context, dist []models.SentimentBucket) error {
	return m.each(func(s Sink) error { return s.SaveSentimentDistribution(ctx, dist) })
}

func (m *Multi) SavePlatformBreakdown(ctx context.Context, stats []models.PlatformStat) error {
	return m.each(func(s Sink) error { return s.SavePlatformBreakdown(ctx, stats) })
}

func (m *Multi) SaveTrendingTopics(ctx context.Context, topics []models.TrendingTopic) error {
	return m.each(func(s Sink) error { return s.SaveTrendingTopics(ctx, topics) })
}

func (m *Multi) SaveDashboardMetrics(ctx context.Context, metrics models.DashboardMetrics) error {
	return m.each(func(s Sink) error { return s.SaveDashboardMetrics(ctx, metrics) })
}

func (m *Multi) SaveWeeklyTrend(ctx context.Context, trend []models.TrendPoint) error {
	return m.each(func(s Sink) error { return s.SaveWeeklyTrend(ctx, trend) })
}

func (m *Multi) each(write func(Sink) error) error {
	var failures []string
	for _, sink := range m.sinks {
		if err := write(sink); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("storage errors: %s", strings.Join(failures, "; "))
	}
	return nil
}
