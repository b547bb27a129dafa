package storage

import (
	"context"

	"github.com/leapscholar/leappulse/internal/models"
)

// Sink is the persistence collaborator boundary. Each write is an
// independent operation: callers log and continue on failure rather than
// rolling back the cycle.
type Sink interface {
	SaveMentions(ctx context.Context, mentions []models.Mention) error
	SaveSentimentDistribution(ctx context.Context, dist []models.SentimentBucket) error
	SavePlatformBreakdown(ctx context.Context, stats []models.PlatformStat) error
	SaveTrendingTopics(ctx context.Context, topics []models.TrendingTopic) error
	SaveDashboardMetrics(ctx context.Context, metrics models.DashboardMetrics) error
	SaveWeeklyTrend(ctx context.Context, trend []models.TrendPoint) error
}
