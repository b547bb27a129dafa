package sources

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/brand"
)

// LinkedInSource finds public LinkedIn posts and articles mentioning the
// brand through Google search scoped to linkedin.com. Direct LinkedIn
// scraping is heavily restricted, so search snippets are the practical
// window into public content.
type LinkedInSource struct {
	client *resty.Client
	limit  int
}

// defaultLinkedInEngagement stands in for engagement that the search
// snippet does not expose.
const defaultLinkedInEngagement = 30

// NewLinkedInSource creates a LinkedIn collector.
func NewLinkedInSource() *LinkedInSource {
	return &LinkedInSource{
		client: resty.New().
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", userAgent),
		limit: 8,
	}
}

func (l *LinkedInSource) Name() string {
	return "linkedin"
}

func (l *LinkedInSource) Enabled() bool {
	return true
}

func (l *LinkedInSource) Fetch(ctx context.Context, brandName string) ([]Item, error) {
	var items []Item
	seen := make(map[string]bool)

	for _, query := range brand.Expand(brandName) {
		search := fmt.Sprintf(`site:linkedin.com "%s" (review OR experience OR opinion)`, query)

		resp, err := l.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":   search,
				"num": fmt.Sprintf("%d", l.limit),
				"hl":  "en",
			}).
			Get("https://www.google.com/search")

		if err != nil || resp.StatusCode() != 200 {
			logrus.Warnf("LinkedIn search via Google for %q failed", query)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
		if err != nil {
			logrus.Warnf("Google results for %q unparsable: %v", query, err)
			continue
		}

		doc.Find("div.g").EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= l.limit {
				return false
			}

			title := strings.TrimSpace(sel.Find("h3").First().Text())
			snippet := strings.TrimSpace(sel.Find("div.VwiC3b, span.aCOpRe").First().Text())

			content := truncateContent(strings.TrimSpace(title + ". " + snippet))
			if len(content) < minContentLength {
				return true
			}
			if !brand.IsRelevant(content, brandName) {
				return true
			}

			href, _ := sel.Find("a").First().Attr("href")
			if href == "" || seen[href] {
				return true
			}
			seen[href] = true

			items = append(items, Item{
				Platform: "LinkedIn",
				Content:  content,
				Likes:    defaultLinkedInEngagement,
				Author:   authorFromTitle(title),
				URL:      href,
			})
			return true
		})
	}

	return items, nil
}

// authorFromTitle pulls the poster's name out of a LinkedIn result
// title, which Google renders as "Name - Headline".
func authorFromTitle(title string) string {
	if idx := strings.Index(title, " - "); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return "LinkedIn User"
}
