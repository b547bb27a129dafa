package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Domain keyword lists nudging the general-purpose polarity estimate
// toward study-abroad specific phrasing.
var negativeKeywords = []string{
	"frustrated", "terrible", "worst", "scam", "fraud", "disappointing",
	"hidden fees", "mediocre", "poor", "delayed", "no response", "avoid",
	"waste", "misleading", "unprofessional", "rude", "confusing",
}

var positiveKeywords = []string{
	"amazing", "excellent", "game-changing", "seamless", "recommend",
	"love", "best", "outstanding", "helpful", "incredible", "smooth",
	"fantastic", "great", "perfect", "wonderful",
}

const keywordWeight = 0.15

// Analyzer scores text polarity by combining a VADER estimate with a
// domain keyword boost. It is stateless apart from the fixed lexicon and
// safe for concurrent use.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates a sentiment analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns a sentiment score in [-1.0, 1.0], rounded to three
// decimal places. Identical text always yields an identical score.
func (a *Analyzer) Score(text string) float64 {
	base := a.vader.PolarityScores(text).Compound
	score := base + keywordBoost(text)

	if score > 1.0 {
		score = 1.0
	}
	if score < -1.0 {
		score = -1.0
	}

	return math.Round(score*1000) / 1000
}

// keywordBoost nudges the score by 0.15 per net domain keyword hit.
func keywordBoost(text string) float64 {
	lower := strings.ToLower(text)

	pos, neg := 0, 0
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			pos++
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			neg++
		}
	}

	return float64(pos-neg) * keywordWeight
}
