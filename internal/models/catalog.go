package models

// Intent is a named cluster of example phrasings mapped to canned replies.
type Intent struct {
	Tag        string   `json:"tag" yaml:"tag"`
	Patterns   []string `json:"patterns" yaml:"patterns"`
	Responses  []string `json:"responses" yaml:"responses"`
	ContextSet string   `json:"context_set,omitempty" yaml:"context_set,omitempty"` // not used by matching
}

// FaqEntry is a single fixed question/answer pair.
type FaqEntry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}
