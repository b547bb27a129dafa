package sentiment

import (
	"strings"

	"github.com/leapscholar/leappulse/internal/models"
)

// Keywords signalling a PR crisis or legal exposure.
var crisisKeywords = []string{
	"scam", "fraud", "lawsuit", "police", "legal action", "consumer court",
	"viral", "trending", "boycott", "expose", "warning", "do not use",
	"stolen", "data breach", "leaked",
}

// Keywords signalling testimonials and marketing opportunities.
var goldKeywords = []string{
	"acceptance letter", "got admitted", "got accepted", "offered admission",
	"scored 8", "scored 9", "band 8", "band 9", "ielts 8", "ielts 9",
	"highly recommend", "game-changer", "life-changing", "best decision",
	"dream university", "scholarship", "success story", "thank you",
	"grateful", "appreciate", "5 star", "five star",
}

// priorityRule is one row of the ordered classification table. Rules are
// evaluated first to last; the first match wins, so order matters.
type priorityRule struct {
	name    string
	tier    string
	matches func(sentiment float64, engagement int, hasCrisis, hasGold bool) bool
}

var priorityRules = []priorityRule{
	{
		name: "crisis keyword with negative sentiment",
		tier: models.PriorityCritical,
		matches: func(s float64, _ int, crisis, _ bool) bool {
			return crisis && s < -0.2
		},
	},
	{
		name: "very negative with high reach",
		tier: models.PriorityCritical,
		matches: func(s float64, engagement int, _, _ bool) bool {
			return s < -0.5 && engagement > 50
		},
	},
	{
		name: "testimonial keyword with positive sentiment",
		tier: models.PriorityGold,
		matches: func(s float64, _ int, _, gold bool) bool {
			return gold && s > 0.2
		},
	},
	{
		name: "very positive",
		tier: models.PriorityGold,
		matches: func(s float64, _ int, _, _ bool) bool {
			return s > 0.6
		},
	},
	{
		name: "moderately negative",
		tier: models.PriorityHigh,
		matches: func(s float64, _ int, _, _ bool) bool {
			return s < -0.3
		},
	},
}

// Classify maps a mention's sentiment, engagement and text to one of the
// four priority tiers via ordered first-match rule evaluation. It is a
// pure decision table: no state survives between calls.
func Classify(sentiment float64, engagement int, content string) string {
	lower := strings.ToLower(content)
	hasCrisis := containsAny(lower, crisisKeywords)
	hasGold := containsAny(lower, goldKeywords)

	for _, rule := range priorityRules {
		if rule.matches(sentiment, engagement, hasCrisis, hasGold) {
			return rule.tier
		}
	}

	return models.PriorityNeutral
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
