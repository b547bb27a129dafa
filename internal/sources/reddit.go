package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leapscholar/leappulse/internal/brand"
	"github.com/sirupsen/logrus"
)

// Subreddits likely to discuss study-abroad brands.
var defaultSubreddits = []string{
	"StudyAbroad",
	"IELTS",
	"ImmigrationCanada",
	"AustralianVisa",
	"IntlStudents",
	"Indian_Academia",
}

// RedditSource collects brand mentions via Reddit's public search JSON
// API, across a global search plus a fixed set of subreddits.
type RedditSource struct {
	subreddits []string
	client     *resty.Client
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Selftext    string `json:"selftext"`
	Author      string `json:"author"`
	Permalink   string `json:"permalink"`
	Ups         int    `json:"ups"`
	NumComments int    `json:"num_comments"`
}

// NewRedditSource creates a Reddit collector. An empty subreddit list
// falls back to the defaults.
func NewRedditSource(subreddits []string) *RedditSource {
	if len(subreddits) == 0 {
		subreddits = defaultSubreddits
	}
	return &RedditSource{
		subreddits: subreddits,
		client: resty.New().
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", userAgent),
	}
}

func (r *RedditSource) Name() string {
	return "reddit"
}

// Enabled is always true: the public JSON API needs no credentials.
func (r *RedditSource) Enabled() bool {
	return true
}

func (r *RedditSource) Fetch(ctx context.Context, brandName string) ([]Item, error) {
	var items []Item
	seen := make(map[string]bool)

	global, err := r.search(ctx, "https://www.reddit.com/search.json", brandName, 10, seen)
	if err != nil {
		return nil, err
	}
	items = append(items, global...)

	for _, sub := range r.subreddits {
		url := fmt.Sprintf("https://www.reddit.com/r/%s/search.json", sub)
		found, err := r.search(ctx, url, brandName, 5, seen)
		if err != nil {
			logrus.Warnf("Reddit r/%s search failed: %v", sub, err)
			continue
		}
		items = append(items, found...)
	}

	return items, nil
}

func (r *RedditSource) search(ctx context.Context, searchURL, brandName string, limit int, seen map[string]bool) ([]Item, error) {
	var items []Item

	for _, query := range brand.Expand(brandName) {
		resp, err := r.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":           query,
				"restrict_sr": "on",
				"sort":        "new",
				"limit":       fmt.Sprintf("%d", limit),
				"t":           "week",
			}).
			Get(searchURL)

		if err != nil {
			return nil, fmt.Errorf("reddit search for %q: %w", query, err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("reddit search for %q returned status %d", query, resp.StatusCode())
		}

		var listing redditListing
		if err := json.Unmarshal(resp.Body(), &listing); err != nil {
			return nil, fmt.Errorf("reddit response for %q: %w", query, err)
		}

		for _, child := range listing.Data.Children {
			post := child.Data
			if post.ID == "" || seen[post.ID] {
				continue
			}
			seen[post.ID] = true

			content := truncateContent(strings.TrimSpace(post.Title + ". " + post.Selftext))
			if len(content) < minContentLength {
				continue
			}
			if !brand.IsRelevant(content, brandName) {
				continue
			}

			items = append(items, Item{
				Platform: "Reddit",
				Content:  content,
				Likes:    max0(post.Ups),
				Comments: post.NumComments,
				Author:   "u/" + orDefault(post.Author, "anonymous"),
				URL:      "https://reddit.com" + post.Permalink,
			})
		}
	}

	return items, nil
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
