// Package monitoring runs one full collection cycle: fan out over the
// platform collectors, normalize the raw items into mentions, derive the
// dashboard views, push everything to the configured sinks and raise
// alerts for critical mentions.
package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/aggregate"
	"github.com/leapscholar/leappulse/internal/config"
	"github.com/leapscholar/leappulse/internal/models"
	"github.com/leapscholar/leappulse/internal/notifications"
	"github.com/leapscholar/leappulse/internal/sentiment"
	"github.com/leapscholar/leappulse/internal/sources"
	"github.com/leapscholar/leappulse/internal/storage"
)

// Snapshot is the result of one refresh cycle: the mention batch, all
// five derived views and the per-source warnings it produced.
type Snapshot struct {
	Mentions              []models.Mention         `json:"mentions"`
	SentimentDistribution []models.SentimentBucket `json:"sentiment_distribution"`
	PlatformBreakdown     []models.PlatformStat    `json:"platform_breakdown"`
	TrendingTopics        []models.TrendingTopic   `json:"trending_topics"`
	DashboardMetrics      models.DashboardMetrics  `json:"dashboard_metrics"`
	WeeklyTrend           []models.TrendPoint      `json:"weekly_trend"`
	SourceErrors          []string                 `json:"source_errors,omitempty"`
	ScrapedAt             time.Time                `json:"last_scraped"`
}

// EmptySnapshot carries the defined empty-batch defaults. Served to
// readers before any refresh has ever completed.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Mentions:              []models.Mention{},
		SentimentDistribution: aggregate.SentimentDistribution(nil),
		PlatformBreakdown:     aggregate.PlatformBreakdown(nil),
		TrendingTopics:        []models.TrendingTopic{},
		DashboardMetrics:      aggregate.DashboardMetrics(nil),
		WeeklyTrend:           aggregate.WeeklyTrend(nil),
	}
}

// Service orchestrates collection, scoring and aggregation for a brand.
type Service struct {
	config   *config.Config
	analyzer *sentiment.Analyzer
	sources  []sources.Source
	store    storage.Sink
	notifier notifications.Notifier
}

// NewService creates a monitoring service with the default collectors.
// store and notifier may be nil when persistence or alerting is not
// configured.
func NewService(cfg *config.Config, store storage.Sink, notifier notifications.Notifier) *Service {
	return &Service{
		config:   cfg,
		analyzer: sentiment.NewAnalyzer(),
		store:    store,
		notifier: notifier,
		sources: []sources.Source{
			sources.NewRedditSource(cfg.RedditSubreddits),
			sources.NewTwitterSource(cfg.NitterInstances),
			sources.NewLinkedInSource(),
			sources.NewNewsSource(),
			sources.NewYouTubeSource(cfg.YouTubeAPIKey),
		},
	}
}

// WithSources replaces the collector set. Intended for tests.
func (s *Service) WithSources(srcs ...sources.Source) *Service {
	s.sources = srcs
	return s
}

type sourceResult struct {
	name  string
	items []sources.Item
	err   error
}

// Refresh performs one collection cycle and returns the resulting
// snapshot. A failing collector is isolated: it contributes zero items
// and a warning, never an aborted batch. Persistence and notification
// failures are logged and do not fail the cycle either.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	logrus.Infof("Collecting mentions of %q across %d sources", s.config.Brand, len(s.sources))

	results := make(chan sourceResult, len(s.sources))
	var wg sync.WaitGroup

	for _, source := range s.sources {
		if !source.Enabled() {
			logrus.Debugf("Source %s disabled, skipping", source.Name())
			continue
		}

		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()
			items, err := src.Fetch(ctx, s.config.Brand)
			results <- sourceResult{name: src.Name(), items: items, err: err}
		}(source)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var items []sources.Item
	var warnings []string
	for result := range results {
		if result.err != nil {
			logrus.Errorf("Source %s failed: %v", result.name, result.err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", result.name, result.err))
			continue
		}
		logrus.Infof("Source %s returned %d mentions", result.name, len(result.items))
		items = append(items, result.items...)
	}

	mentions := s.normalize(items)
	snapshot := s.buildSnapshot(mentions, warnings)

	s.persist(ctx, snapshot)
	s.alertCritical(snapshot.Mentions)

	logrus.Infof("Collection cycle finished in %v: %d mentions, %d source errors",
		time.Since(start), len(mentions), len(warnings))

	return snapshot, nil
}

// normalize turns raw collector items into canonical mentions: sentiment
// scoring, priority classification, clamping and ID assignment.
func (s *Service) normalize(items []sources.Item) []models.Mention {
	mentions := make([]models.Mention, 0, len(items))

	for _, item := range items {
		score := s.analyzer.Score(item.Content)
		priority := sentiment.Classify(score, item.Likes, item.Content)

		mentions = append(mentions, models.NewMention(
			item.Platform, item.Content,
			item.Likes, item.Shares, item.Comments,
			item.Author, item.URL,
			score, priority,
		))
	}

	return mentions
}

func (s *Service) buildSnapshot(mentions []models.Mention, warnings []string) *Snapshot {
	return &Snapshot{
		Mentions:              mentions,
		SentimentDistribution: aggregate.SentimentDistribution(mentions),
		PlatformBreakdown:     aggregate.PlatformBreakdown(mentions),
		TrendingTopics:        aggregate.TrendingTopics(mentions, s.config.TopicLimit),
		DashboardMetrics:      aggregate.DashboardMetrics(mentions),
		WeeklyTrend:           aggregate.WeeklyTrend(mentions),
		SourceErrors:          warnings,
		ScrapedAt:             time.Now().UTC(),
	}
}

// persist pushes the batch and each view to the sink as six independent
// writes. Any single failure is logged and does not block the others.
func (s *Service) persist(ctx context.Context, snapshot *Snapshot) {
	if s.store == nil || len(snapshot.Mentions) == 0 {
		return
	}

	writes := []struct {
		name string
		fn   func() error
	}{
		{"mentions", func() error { return s.store.SaveMentions(ctx, snapshot.Mentions) }},
		{"sentiment distribution", func() error { return s.store.SaveSentimentDistribution(ctx, snapshot.SentimentDistribution) }},
		{"platform breakdown", func() error { return s.store.SavePlatformBreakdown(ctx, snapshot.PlatformBreakdown) }},
		{"trending topics", func() error { return s.store.SaveTrendingTopics(ctx, snapshot.TrendingTopics) }},
		{"dashboard metrics", func() error { return s.store.SaveDashboardMetrics(ctx, snapshot.DashboardMetrics) }},
		{"weekly trend", func() error { return s.store.SaveWeeklyTrend(ctx, snapshot.WeeklyTrend) }},
	}

	for _, write := range writes {
		if err := write.fn(); err != nil {
			logrus.Errorf("Failed to persist %s: %v", write.name, err)
		}
	}
}

// alertCritical sends a digest of the batch's critical mentions.
func (s *Service) alertCritical(mentions []models.Mention) {
	if s.notifier == nil {
		return
	}

	var critical []models.Mention
	for _, m := range mentions {
		if m.Priority == models.PriorityCritical {
			critical = append(critical, m)
		}
	}
	if len(critical) == 0 {
		return
	}

	logrus.Infof("Found %d critical mentions, sending alert", len(critical))
	if err := s.notifier.SendCriticalAlert(s.config.Brand, critical); err != nil {
		logrus.Errorf("Failed to send critical alert: %v", err)
	}
}
