package sources

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/brand"
)

// Public Nitter mirrors. Instances come and go; the first responsive one
// is used for the whole fetch.
var defaultNitterInstances = []string{
	"https://nitter.privacydev.net",
	"https://nitter.poast.org",
	"https://nitter.woodland.cafe",
}

// TwitterSource collects tweets through Nitter, the open-source Twitter
// frontend, which requires no API credentials.
type TwitterSource struct {
	instances []string
	client    *resty.Client
	limit     int
}

// NewTwitterSource creates a Twitter/Nitter collector.
func NewTwitterSource(instances []string) *TwitterSource {
	if len(instances) == 0 {
		instances = defaultNitterInstances
	}
	return &TwitterSource{
		instances: instances,
		client: resty.New().
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", userAgent),
		limit: 10,
	}
}

func (t *TwitterSource) Name() string {
	return "twitter"
}

func (t *TwitterSource) Enabled() bool {
	return len(t.instances) > 0
}

func (t *TwitterSource) Fetch(ctx context.Context, brandName string) ([]Item, error) {
	instance := t.workingInstance(ctx)
	if instance == "" {
		logrus.Warn("No responsive Nitter instance, skipping Twitter")
		return nil, nil
	}

	var items []Item
	seen := make(map[string]bool)

	for _, query := range brand.Expand(brandName) {
		resp, err := t.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{"f": "tweets", "q": query}).
			Get(instance + "/search")

		if err != nil || resp.StatusCode() != 200 {
			logrus.Warnf("Nitter search for %q failed on %s", query, instance)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
		if err != nil {
			logrus.Warnf("Nitter response for %q unparsable: %v", query, err)
			continue
		}

		doc.Find(".timeline-item").EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= t.limit {
				return false
			}

			content := truncateContent(sel.Find(".tweet-content").First().Text())
			if len(content) < 15 {
				return true
			}
			if !brand.IsRelevant(content, brandName) {
				return true
			}

			href, _ := sel.Find(".tweet-link").First().Attr("href")
			if href == "" {
				return true
			}
			tweetURL := "https://twitter.com" + strings.TrimPrefix(href, instance)
			if seen[tweetURL] {
				return true
			}
			seen[tweetURL] = true

			author := strings.TrimSpace(sel.Find(".username").First().Text())
			if author == "" {
				author = "unknown"
			}

			// Nitter renders comment, retweet and like counts in order.
			var stats []int
			sel.Find(".tweet-stat .tweet-stat-count").Each(func(_ int, stat *goquery.Selection) {
				stats = append(stats, parseCount(stat.Text()))
			})
			comments, shares, likes := 0, 0, 0
			if len(stats) >= 1 {
				comments = stats[0]
			}
			if len(stats) >= 2 {
				shares = stats[1]
			}
			if len(stats) >= 3 {
				likes = stats[2]
			}

			items = append(items, Item{
				Platform: "Twitter",
				Content:  content,
				Likes:    likes,
				Shares:   shares,
				Comments: comments,
				Author:   author,
				URL:      tweetURL,
			})
			return true
		})
	}

	return items, nil
}

// workingInstance returns the first Nitter mirror answering with a 200.
func (t *TwitterSource) workingInstance(ctx context.Context) string {
	probe := resty.New().
		SetTimeout(5 * time.Second).
		SetHeader("User-Agent", userAgent)

	for _, instance := range t.instances {
		resp, err := probe.R().SetContext(ctx).Get(instance)
		if err == nil && resp.StatusCode() == 200 {
			return instance
		}
	}
	return ""
}
