package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/models"
)

// PostgresStore writes the mention batch and each derived view to its
// own dashboard table.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Sink = (*PostgresStore)(nil)

// NewPostgresStore connects to the dashboard database. An unreachable
// database is a startup failure: the caller treats it as fatal.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	pool, err := pgxpool.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.db.Close()
}

func (s *PostgresStore) SaveMentions(ctx context.Context, mentions []models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}

	query := `
		INSERT INTO social_mentions (
			id, platform, content, sentiment_score,
			likes, shares, comments, author, source_url, priority, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (source_url) DO NOTHING
	`

	for _, m := range mentions {
		_, err := s.db.Exec(ctx, query,
			m.ID, m.Platform, m.Content, m.SentimentScore,
			m.Likes, m.Shares, m.Comments, m.Author, m.SourceURL, m.Priority, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error inserting mention %s: %w", m.ID, err)
		}
	}

	logrus.Infof("Persisted %d mentions", len(mentions))
	return nil
}

func (s *PostgresStore) SaveSentimentDistribution(ctx context.Context, dist []models.SentimentBucket) error {
	query := `INSERT INTO sentiment_distribution (label, value, count) VALUES ($1, $2, $3)`

	for _, bucket := range dist {
		if _, err := s.db.Exec(ctx, query, bucket.Label, bucket.Value, bucket.Count); err != nil {
			return fmt.Errorf("error inserting sentiment bucket %s: %w", bucket.Label, err)
		}
	}
	return nil
}

func (s *PostgresStore) SavePlatformBreakdown(ctx context.Context, stats []models.PlatformStat) error {
	query := `INSERT INTO platform_breakdown (platform, mention_count, percentage) VALUES ($1, $2, $3)`

	for _, stat := range stats {
		if _, err := s.db.Exec(ctx, query, stat.Platform, stat.MentionCount, stat.Percentage); err != nil {
			return fmt.Errorf("error inserting platform stat %s: %w", stat.Platform, err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveTrendingTopics(ctx context.Context, topics []models.TrendingTopic) error {
	query := `INSERT INTO trending_topics (tag, mentions, trend) VALUES ($1, $2, $3)`

	for _, topic := range topics {
		if _, err := s.db.Exec(ctx, query, topic.Tag, topic.Mentions, topic.Trend); err != nil {
			return fmt.Errorf("error inserting topic %s: %w", topic.Tag, err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveDashboardMetrics(ctx context.Context, metrics models.DashboardMetrics) error {
	query := `
		INSERT INTO dashboard_metrics (net_sentiment, sentiment_change, total_mentions, avg_engagement)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.Exec(ctx, query,
		metrics.NetSentiment, metrics.SentimentChange, metrics.TotalMentions, metrics.AvgEngagement)
	if err != nil {
		return fmt.Errorf("error inserting dashboard metrics: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveWeeklyTrend(ctx context.Context, trend []models.TrendPoint) error {
	query := `INSERT INTO weekly_trend (day_label, score) VALUES ($1, $2)`

	for _, point := range trend {
		if _, err := s.db.Exec(ctx, query, point.DayLabel, point.Score); err != nil {
			return fmt.Errorf("error inserting trend point %s: %w", point.DayLabel, err)
		}
	}
	return nil
}
