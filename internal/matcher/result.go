package matcher

import "math/rand/v2"

// MatchResult is the outcome of scanning one catalog for a query.
// Score always carries the best score seen, also when nothing was accepted.
type MatchResult struct {
	Payload string
	Score   float64
	Matched bool
	Key     string // intent tag or FAQ question of the best candidate
}

// PickFunc returns an index in [0,n). It must be safe for concurrent use.
type PickFunc func(n int) int

type options struct {
	score ScoreFunc
	pick  PickFunc
}

type Option func(*options)

// WithScoreFunc replaces the similarity function, mainly for tests.
func WithScoreFunc(fn ScoreFunc) Option {
	return func(o *options) { o.score = fn }
}

// WithPicker replaces the random source used to choose an intent response.
func WithPicker(fn PickFunc) Option {
	return func(o *options) { o.pick = fn }
}

func buildOptions(opts []Option) options {
	o := options{score: Score, pick: rand.IntN}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
