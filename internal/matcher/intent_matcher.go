package matcher

import "support-bot/internal/models"

// IntentMatcher finds the intent whose pattern is closest to a query.
//
// Response text is picked at random among the winning intent's responses, so
// identical queries may get different wording. Score, tag and acceptance are
// deterministic.
type IntentMatcher struct {
	intents   []models.Intent
	threshold float64
	opts      options
}

func NewIntentMatcher(intents []models.Intent, threshold float64, opts ...Option) *IntentMatcher {
	return &IntentMatcher{
		intents:   intents,
		threshold: threshold,
		opts:      buildOptions(opts),
	}
}

// Resolve scans every pattern of every intent. The first intent reaching the
// highest score wins; it is accepted only when that score is strictly above
// the threshold.
func (m *IntentMatcher) Resolve(query string) MatchResult {
	var result MatchResult
	best := -1
	for i := range m.intents {
		for _, pattern := range m.intents[i].Patterns {
			score := clamp(m.opts.score(query, pattern))
			if score > result.Score {
				result.Score = score
				best = i
			}
		}
	}
	if best < 0 {
		return result
	}

	intent := m.intents[best]
	result.Key = intent.Tag
	if result.Score > m.threshold && len(intent.Responses) > 0 {
		result.Payload = intent.Responses[m.opts.pick(len(intent.Responses))]
		result.Matched = true
	}
	return result
}
