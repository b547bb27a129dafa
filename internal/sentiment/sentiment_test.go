package sentiment

import (
	"testing"

	"github.com/leapscholar/leappulse/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScoreStaysInRange(t *testing.T) {
	analyzer := NewAnalyzer()

	texts := []string{
		"amazing excellent outstanding incredible fantastic great perfect wonderful love best",
		"terrible worst scam fraud disappointing poor rude waste avoid misleading",
		"the office is on the second floor",
		"",
	}

	for _, text := range texts {
		score := analyzer.Score(text)
		assert.GreaterOrEqual(t, score, -1.0, "text: %q", text)
		assert.LessOrEqual(t, score, 1.0, "text: %q", text)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	analyzer := NewAnalyzer()
	text := "LeapScholar made my visa process seamless, highly recommend"

	first := analyzer.Score(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, analyzer.Score(text))
	}
}

func TestScoreKeywordBoostDirection(t *testing.T) {
	analyzer := NewAnalyzer()

	positive := analyzer.Score("the counselors were helpful and the process was smooth")
	negative := analyzer.Score("hidden fees everywhere and no response from support")

	assert.Greater(t, positive, 0.0)
	assert.Less(t, negative, 0.0)
}

func TestKeywordBoost(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{
			name:     "Two positive hits",
			text:     "amazing and helpful experience",
			expected: 0.30,
		},
		{
			name:     "One negative hit",
			text:     "the counselor was rude",
			expected: -0.15,
		},
		{
			name:     "Positive and negative cancel out",
			text:     "great sessions but delayed refunds",
			expected: 0.0,
		},
		{
			name:     "No domain keywords",
			text:     "submitted my application yesterday",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, keywordBoost(tt.text), 1e-9)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		sentiment  float64
		engagement int
		content    string
		expected   string
	}{
		{
			name:       "Crisis keywords with negative sentiment",
			sentiment:  -0.6,
			engagement: 100,
			content:    "local fraud lawsuit filed",
			expected:   models.PriorityCritical,
		},
		{
			name:       "Very negative viral post without crisis words",
			sentiment:  -0.7,
			engagement: 200,
			content:    "completely let down by the counselors",
			expected:   models.PriorityCritical,
		},
		{
			name:       "Strong positive testimonial",
			sentiment:  0.8,
			engagement: 0,
			content:    "great experience",
			expected:   models.PriorityGold,
		},
		{
			name:       "Gold keyword with mild positive sentiment",
			sentiment:  0.3,
			engagement: 5,
			content:    "finally got my acceptance letter!",
			expected:   models.PriorityGold,
		},
		{
			name:       "Moderately negative",
			sentiment:  -0.4,
			engagement: 0,
			content:    "it was okay but slow",
			expected:   models.PriorityHigh,
		},
		{
			name:       "Neutral update",
			sentiment:  0.0,
			engagement: 0,
			content:    "neutral update",
			expected:   models.PriorityNeutral,
		},
		{
			name:       "Crisis keyword but sentiment not negative enough",
			sentiment:  -0.1,
			engagement: 500,
			content:    "warning: applications close friday",
			expected:   models.PriorityNeutral,
		},
		{
			name:       "Very negative but low reach and no crisis words",
			sentiment:  -0.6,
			engagement: 10,
			content:    "really unhappy with my sessions",
			expected:   models.PriorityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.sentiment, tt.engagement, tt.content))
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// "scholarship" is a gold keyword, but crisis rules are evaluated
	// first: a negative lawsuit post mentioning scholarships must still
	// come out critical.
	got := Classify(-0.5, 10, "scholarship scam lawsuit incoming")
	assert.Equal(t, models.PriorityCritical, got)
}
