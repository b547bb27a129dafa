package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/brand"
)

// YouTubeSource collects brand-review videos through the YouTube Data
// API. Disabled when no API key is configured.
type YouTubeSource struct {
	apiKey string
	client *resty.Client
	limit  int
}

type youTubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type youTubeStatsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// NewYouTubeSource creates a YouTube collector.
func NewYouTubeSource(apiKey string) *YouTubeSource {
	return &YouTubeSource{
		apiKey: apiKey,
		client: resty.New().
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", userAgent),
		limit: 8,
	}
}

func (y *YouTubeSource) Name() string {
	return "youtube"
}

func (y *YouTubeSource) Enabled() bool {
	return y.apiKey != ""
}

func (y *YouTubeSource) Fetch(ctx context.Context, brandName string) ([]Item, error) {
	if !y.Enabled() {
		logrus.Debug("YouTube source disabled - missing API key")
		return nil, nil
	}

	var items []Item
	seen := make(map[string]bool)

	for _, query := range brand.Expand(brandName) {
		found, err := y.search(ctx, query+" review experience", brandName, seen)
		if err != nil {
			logrus.Warnf("YouTube search for %q failed: %v", query, err)
			continue
		}
		items = append(items, found...)
	}

	return items, nil
}

func (y *YouTubeSource) search(ctx context.Context, query, brandName string, seen map[string]bool) ([]Item, error) {
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"q":          query,
			"type":       "video",
			"order":      "date",
			"maxResults": fmt.Sprintf("%d", y.limit),
			"key":        y.apiKey,
		}).
		Get("https://www.googleapis.com/youtube/v3/search")

	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("youtube API returned status %d", resp.StatusCode())
	}

	var searchResp youTubeSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse YouTube response: %w", err)
	}

	var items []Item
	var videoIDs []string

	for _, video := range searchResp.Items {
		id := video.ID.VideoID
		if id == "" || seen[id] {
			continue
		}

		content := truncateContent(strings.TrimSpace(video.Snippet.Title + ". " + video.Snippet.Description))
		if len(content) < 10 {
			continue
		}
		if !brand.IsRelevant(content, brandName) {
			continue
		}

		seen[id] = true
		videoIDs = append(videoIDs, id)
		items = append(items, Item{
			Platform: "YouTube",
			Content:  content,
			Author:   orDefault(video.Snippet.ChannelTitle, "YouTuber"),
			URL:      "https://youtube.com/watch?v=" + id,
		})
	}

	y.attachStatistics(ctx, videoIDs, items)
	return items, nil
}

// attachStatistics fills view and comment counters for the selected
// videos. A failed lookup leaves the counters at zero.
func (y *YouTubeSource) attachStatistics(ctx context.Context, videoIDs []string, items []Item) {
	if len(videoIDs) == 0 {
		return
	}

	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "statistics",
			"id":   strings.Join(videoIDs, ","),
			"key":  y.apiKey,
		}).
		Get("https://www.googleapis.com/youtube/v3/videos")

	if err != nil || resp.StatusCode() != 200 {
		logrus.Debugf("YouTube statistics lookup failed for %d videos", len(videoIDs))
		return
	}

	var statsResp youTubeStatsResponse
	if err := json.Unmarshal(resp.Body(), &statsResp); err != nil {
		return
	}

	stats := make(map[string]struct{ views, comments int }, len(statsResp.Items))
	for _, item := range statsResp.Items {
		views, _ := strconv.Atoi(item.Statistics.ViewCount)
		comments, _ := strconv.Atoi(item.Statistics.CommentCount)
		stats[item.ID] = struct{ views, comments int }{views, comments}
	}

	for i := range items {
		id := strings.TrimPrefix(items[i].URL, "https://youtube.com/watch?v=")
		if s, ok := stats[id]; ok {
			items[i].Likes = s.views
			items[i].Comments = s.comments
		}
	}
}
