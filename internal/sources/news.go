package sources

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/brand"
)

// NewsSource collects brand coverage from the public Google News RSS
// feed. Descriptions arrive as HTML snippets and are stripped to plain
// text before filtering.
type NewsSource struct {
	parser    *gofeed.Parser
	sanitizer *bluemonday.Policy
	limit     int
}

// NewNewsSource creates a Google News collector.
func NewNewsSource() *NewsSource {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &NewsSource{
		parser:    parser,
		sanitizer: bluemonday.StrictPolicy(),
		limit:     10,
	}
}

func (n *NewsSource) Name() string {
	return "news"
}

// Enabled is always true: the RSS feed needs no credentials.
func (n *NewsSource) Enabled() bool {
	return true
}

func (n *NewsSource) Fetch(ctx context.Context, brandName string) ([]Item, error) {
	var items []Item
	seen := make(map[string]bool)

	for _, query := range brand.Expand(brandName) {
		feedURL := fmt.Sprintf(
			"https://news.google.com/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en",
			url.QueryEscape(fmt.Sprintf("%q", query)),
		)

		feed, err := n.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			logrus.Warnf("Google News feed for %q failed: %v", query, err)
			continue
		}

		entries := feed.Items
		if len(entries) > n.limit {
			entries = entries[:n.limit]
		}

		for _, entry := range entries {
			if entry.Link == "" || seen[entry.Link] {
				continue
			}

			description := n.stripHTML(entry.Description)
			content := truncateContent(strings.TrimSpace(entry.Title + ". " + description))
			if len(content) < minContentLength {
				continue
			}
			if !brand.IsRelevant(content, brandName) {
				continue
			}

			seen[entry.Link] = true
			items = append(items, Item{
				Platform: "GoogleNews",
				Content:  content,
				Author:   publisherFromTitle(entry.Title),
				URL:      entry.Link,
			})
		}
	}

	return items, nil
}

func (n *NewsSource) stripHTML(snippet string) string {
	return strings.TrimSpace(html.UnescapeString(n.sanitizer.Sanitize(snippet)))
}

// publisherFromTitle extracts the outlet from a Google News headline,
// which is formatted "Headline - Publisher".
func publisherFromTitle(title string) string {
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		if publisher := strings.TrimSpace(title[idx+3:]); publisher != "" {
			return publisher
		}
	}
	return "News"
}
