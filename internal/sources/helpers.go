package sources

import (
	"strconv"
	"strings"

	"github.com/leapscholar/leappulse/internal/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// minContentLength drops fragments too short to carry any signal.
const minContentLength = 20

// truncateContent bounds scraped text to the mention content limit.
func truncateContent(text string) string {
	return models.TruncateContent(strings.TrimSpace(text))
}

// parseCount parses engagement counters like "342", "1,234", "1.2K" or
// "3M" into an integer. Malformed input parses to zero.
func parseCount(text string) int {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToUpper(text), "K"):
		multiplier = 1000
		text = text[:len(text)-1]
	case strings.HasSuffix(strings.ToUpper(text), "M"):
		multiplier = 1000000
		text = text[:len(text)-1]
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}

	return int(value * multiplier)
}
