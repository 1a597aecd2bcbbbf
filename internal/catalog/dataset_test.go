package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"support-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawIntentsShapes(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want int
	}{
		{name: "wrapped", path: "raw.json", data: `{"intents": [{"tag": "a"}, {"tag": "b"}]}`, want: 2},
		{name: "bare list", path: "raw.json", data: `[{"tag": "a"}]`, want: 1},
		{name: "single object", path: "raw.json", data: `{"tag": "a", "patterns": ["x"]}`, want: 1},
		{name: "yaml list", path: "raw.yaml", data: "- tag: a\n- tag: b\n- tag: c\n", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intents, err := ParseRawIntents([]byte(tt.data), tt.path)
			require.NoError(t, err)
			assert.Len(t, intents, tt.want)
		})
	}
}

func TestParseRawIntentsRejectsUnknownShape(t *testing.T) {
	_, err := ParseRawIntents([]byte(`{"foo": 1}`), "raw.json")
	assert.Error(t, err)

	_, err = ParseRawIntents([]byte(`"text"`), "raw.json")
	assert.Error(t, err)
}

func TestParseRawFaqsShapes(t *testing.T) {
	faqs, err := ParseRawFaqs([]byte(`{"questions": [{"question": "q", "answer": "a"}]}`), "raw.json")
	require.NoError(t, err)
	assert.Equal(t, []models.FaqEntry{{Question: "q", Answer: "a"}}, faqs)

	faqs, err = ParseRawFaqs([]byte(`[{"question": "q1", "answer": "a1"}, {"question": "q2", "answer": "a2"}]`), "raw.json")
	require.NoError(t, err)
	assert.Len(t, faqs, 2)

	_, err = ParseRawFaqs([]byte(`{"items": []}`), "raw.json")
	assert.Error(t, err)
}

func TestCleanIntents(t *testing.T) {
	raw := []models.Intent{
		{
			Tag:        "  Greeting ",
			Patterns:   []string{" hello ", "hello", "", "hi there"},
			Responses:  []string{"Hi!", " Hi! "},
			ContextSet: " welcome ",
		},
		{Tag: "", Patterns: []string{"x"}, Responses: []string{"y"}},
		{Tag: "empty", Patterns: []string{"  "}, Responses: []string{"y"}},
		{Tag: "mute", Patterns: []string{"x"}},
	}

	cleaned, skipped := CleanIntents(raw)

	assert.Equal(t, 3, skipped)
	require.Len(t, cleaned, 1)
	assert.Equal(t, models.Intent{
		Tag:        "greeting",
		Patterns:   []string{"hello", "hi there"},
		Responses:  []string{"Hi!"},
		ContextSet: "welcome",
	}, cleaned[0])
}

func TestCleanFaqsDeduplicatesByLowercaseQuestion(t *testing.T) {
	raw := []models.FaqEntry{
		{Question: "What is your return policy?", Answer: "30 days."},
		{Question: "what is your RETURN policy?", Answer: "Different answer."},
		{Question: " ", Answer: "orphan"},
		{Question: "Do you ship abroad?", Answer: ""},
		{Question: " Do you ship abroad? ", Answer: " Yes. "},
	}

	cleaned, skipped := CleanFaqs(raw)

	assert.Equal(t, 3, skipped)
	assert.Equal(t, []models.FaqEntry{
		{Question: "What is your return policy?", Answer: "30 days."},
		{Question: "Do you ship abroad?", Answer: "Yes."},
	}, cleaned)
}

func TestWriteThenLoad(t *testing.T) {
	dir := t.TempDir()
	intentsPath := filepath.Join(dir, "intents.json")
	faqsPath := filepath.Join(dir, "faqs.yaml")

	require.NoError(t, WriteIntents(intentsPath, []models.Intent{
		{Tag: "greeting", Patterns: []string{"hello"}, Responses: []string{"Hi!"}},
	}))
	require.NoError(t, WriteFaqs(faqsPath, []models.FaqEntry{{Question: "q", Answer: "a"}}))

	c, err := Load(intentsPath, faqsPath)
	require.NoError(t, err)
	assert.Equal(t, "greeting", c.Intents()[0].Tag)
	assert.Equal(t, "a", c.Faqs()[0].Answer)
}

func TestWriteEmptyCatalogs(t *testing.T) {
	dir := t.TempDir()
	intentsPath := filepath.Join(dir, "intents.json")
	faqsPath := filepath.Join(dir, "faqs.json")

	cleaned, skipped := CleanIntents([]models.Intent{{Tag: "broken"}})
	require.Equal(t, 1, skipped)
	require.NoError(t, WriteIntents(intentsPath, cleaned))
	require.NoError(t, WriteFaqs(faqsPath, nil))

	data, err := os.ReadFile(intentsPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"intents": []}`, string(data))

	data, err = os.ReadFile(faqsPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	_, err = Load(intentsPath, faqsPath)
	assert.ErrorIs(t, err, ErrCatalogLoad)
}
