package matcher

import "support-bot/internal/models"

// FaqMatcher finds the FAQ question closest to a query and returns its fixed answer.
type FaqMatcher struct {
	faqs      []models.FaqEntry
	threshold float64
	opts      options
}

func NewFaqMatcher(faqs []models.FaqEntry, threshold float64, opts ...Option) *FaqMatcher {
	return &FaqMatcher{
		faqs:      faqs,
		threshold: threshold,
		opts:      buildOptions(opts),
	}
}

func (m *FaqMatcher) Resolve(query string) MatchResult {
	var result MatchResult
	best := -1
	for i := range m.faqs {
		score := clamp(m.opts.score(query, m.faqs[i].Question))
		if score > result.Score {
			result.Score = score
			best = i
		}
	}
	if best < 0 {
		return result
	}

	faq := m.faqs[best]
	result.Key = faq.Question
	if result.Score > m.threshold {
		result.Payload = faq.Answer
		result.Matched = true
	}
	return result
}
