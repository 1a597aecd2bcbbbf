package matcher

import (
	"testing"

	"support-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIntents() []models.Intent {
	return []models.Intent{
		{
			Tag:       "greeting",
			Patterns:  []string{"hello", "hi there"},
			Responses: []string{"Hi! How can I help?"},
		},
		{
			Tag:       "goodbye",
			Patterns:  []string{"see you", "bye"},
			Responses: []string{"Goodbye!", "See you soon!", "Take care!"},
		},
	}
}

func TestIntentMatcherExactMatch(t *testing.T) {
	m := NewIntentMatcher(testIntents(), 0.70)

	got := m.Resolve("hello")

	require.True(t, got.Matched)
	assert.Equal(t, "Hi! How can I help?", got.Payload)
	assert.Equal(t, 1.0, got.Score)
	assert.Equal(t, "greeting", got.Key)
}

func TestIntentMatcherThresholdIsStrict(t *testing.T) {
	m := NewIntentMatcher(testIntents(), 0.70)

	// "see you later" vs "see you" scores exactly 0.7
	got := m.Resolve("see you later")

	assert.False(t, got.Matched)
	assert.Empty(t, got.Payload)
	assert.InDelta(t, 0.7, got.Score, 1e-12)
	assert.Equal(t, "goodbye", got.Key)
}

func TestIntentMatcherNearMissKeepsScore(t *testing.T) {
	m := NewIntentMatcher(testIntents(), 0.70)

	got := m.Resolve("asdlkjqwe random text")

	assert.False(t, got.Matched)
	assert.Greater(t, got.Score, 0.0)
	assert.Less(t, got.Score, 0.70)
}

func TestIntentMatcherFirstSeenWinsOnTie(t *testing.T) {
	intents := []models.Intent{
		{Tag: "first", Patterns: []string{"a"}, Responses: []string{"from first"}},
		{Tag: "second", Patterns: []string{"b"}, Responses: []string{"from second"}},
	}
	m := NewIntentMatcher(intents, 0.70, WithScoreFunc(func(a, b string) float64 { return 0.9 }))

	got := m.Resolve("anything")

	require.True(t, got.Matched)
	assert.Equal(t, "first", got.Key)
	assert.Equal(t, "from first", got.Payload)
}

func TestIntentMatcherUsesInjectedPicker(t *testing.T) {
	var asked int
	m := NewIntentMatcher(testIntents(), 0.70, WithPicker(func(n int) int {
		asked = n
		return 2
	}))

	got := m.Resolve("bye")

	require.True(t, got.Matched)
	assert.Equal(t, 3, asked)
	assert.Equal(t, "Take care!", got.Payload)
}

func TestIntentMatcherRandomResponseKeepsRouting(t *testing.T) {
	m := NewIntentMatcher(testIntents(), 0.70)
	responses := testIntents()[1].Responses

	for i := 0; i < 20; i++ {
		got := m.Resolve("bye")
		require.True(t, got.Matched)
		assert.Equal(t, "goodbye", got.Key)
		assert.Equal(t, 1.0, got.Score)
		assert.Contains(t, responses, got.Payload)
	}
}

func TestIntentMatcherEmptyCatalog(t *testing.T) {
	m := NewIntentMatcher(nil, 0.70)

	got := m.Resolve("hello")

	assert.Equal(t, MatchResult{}, got)
}

func TestIntentMatcherClampsScores(t *testing.T) {
	m := NewIntentMatcher(testIntents(), 0.70, WithScoreFunc(func(a, b string) float64 { return 3 }))

	got := m.Resolve("hello")

	assert.Equal(t, 1.0, got.Score)
}
