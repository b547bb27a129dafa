package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/models"
)

// AzureStore archives each cycle's batch and views as timestamped JSON
// blobs. It complements the Postgres store: blobs keep raw history while
// the database feeds the dashboard.
type AzureStore struct {
	client        *azblob.Client
	containerName string
	now           func() time.Time
}

var _ Sink = (*AzureStore)(nil)

// NewAzureStore creates an Azure Blob archive using managed identity.
func NewAzureStore(accountName, containerName string) (*AzureStore, error) {
	if accountName == "" {
		return nil, fmt.Errorf("storage account name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClient(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	store := &AzureStore{
		client:        client,
		containerName: containerName,
		now:           time.Now,
	}

	if err := store.ensureContainer(); err != nil {
		return nil, fmt.Errorf("failed to ensure container exists: %w", err)
	}

	return store, nil
}

func (s *AzureStore) ensureContainer() error {
	_, err := s.client.CreateContainer(context.Background(), s.containerName, nil)
	if err != nil {
		if !strings.Contains(err.Error(), "ContainerAlreadyExists") {
			return fmt.Errorf("failed to create container: %w", err)
		}
		logrus.Debugf("Container %s already exists", s.containerName)
	} else {
		logrus.Infof("Created container %s", s.containerName)
	}

	return nil
}

func (s *AzureStore) SaveMentions(ctx context.Context, mentions []models.Mention) error {
	return s.store(ctx, "mentions", mentions)
}

func (s *AzureStore) SaveSentimentDistribution(ctx context.Context, dist []models.SentimentBucket) error {
	return s.store(ctx, "sentiment-distribution", dist)
}

func (s *AzureStore) SavePlatformBreakdown(ctx context.Context, stats []models.PlatformStat) error {
	return s.store(ctx, "platform-breakdown", stats)
}

func (s *AzureStore) SaveTrendingTopics(ctx context.Context, topics []models.TrendingTopic) error {
	return s.store(ctx, "trending-topics", topics)
}

func (s *AzureStore) SaveDashboardMetrics(ctx context.Context, metrics models.DashboardMetrics) error {
	return s.store(ctx, "dashboard-metrics", metrics)
}

func (s *AzureStore) SaveWeeklyTrend(ctx context.Context, trend []models.TrendPoint) error {
	return s.store(ctx, "weekly-trend", trend)
}

func (s *AzureStore) store(ctx context.Context, prefix string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", prefix, err)
	}

	blobName := s.blobName(prefix)
	_, err = s.client.UploadBuffer(ctx, s.containerName, blobName, data, &azblob.UploadBufferOptions{
		BlockSize:   int64(1024 * 1024),
		Concurrency: 3,
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob %s: %w", blobName, err)
	}

	logrus.Debugf("Archived %s to blob storage", blobName)
	return nil
}

func (s *AzureStore) blobName(prefix string) string {
	return fmt.Sprintf("%s-%s.json", prefix, s.now().UTC().Format("2006-01-02-15-04-05"))
}
