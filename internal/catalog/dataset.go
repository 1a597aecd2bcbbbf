package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"support-bot/internal/models"

	"gopkg.in/yaml.v3"
)

// ParseRawIntents accepts the shapes found in raw intent datasets:
// {"intents": [...]}, a bare list, or a single intent object.
func ParseRawIntents(data []byte, path string) ([]models.Intent, error) {
	raw, err := decodeGeneric(data, path)
	if err != nil {
		return nil, err
	}

	var list any
	switch v := raw.(type) {
	case map[string]any:
		if inner, ok := v["intents"]; ok {
			list = inner
		} else if _, ok := v["tag"]; ok {
			list = []any{v}
		} else {
			return nil, errors.New("invalid intents format: expected an intents key, a tag or a list")
		}
	case []any:
		list = v
	default:
		return nil, errors.New("invalid intents format: expected an object or a list")
	}

	var intents []models.Intent
	if err := remarshal(list, &intents); err != nil {
		return nil, fmt.Errorf("invalid intents format: %w", err)
	}
	return intents, nil
}

// ParseRawFaqs accepts a bare list of question/answer objects or an object
// wrapping that list under "questions".
func ParseRawFaqs(data []byte, path string) ([]models.FaqEntry, error) {
	raw, err := decodeGeneric(data, path)
	if err != nil {
		return nil, err
	}

	var list any
	switch v := raw.(type) {
	case map[string]any:
		inner, ok := v["questions"]
		if !ok {
			return nil, errors.New("invalid FAQ format: must be a list or an object with a questions key")
		}
		list = inner
	case []any:
		list = v
	default:
		return nil, errors.New("invalid FAQ format: must be a list or an object with a questions key")
	}

	var faqs []models.FaqEntry
	if err := remarshal(list, &faqs); err != nil {
		return nil, fmt.Errorf("invalid FAQ format: %w", err)
	}
	return faqs, nil
}

// CleanIntents trims every field, lowercases tags and removes duplicate
// patterns and responses, keeping first occurrences in order. Intents left
// without a tag, patterns or responses are dropped and counted in skipped.
func CleanIntents(raw []models.Intent) (cleaned []models.Intent, skipped int) {
	for _, intent := range raw {
		tag := strings.ToLower(strings.TrimSpace(intent.Tag))
		patterns := uniqueTrimmed(intent.Patterns)
		responses := uniqueTrimmed(intent.Responses)
		if tag == "" || len(patterns) == 0 || len(responses) == 0 {
			skipped++
			continue
		}
		cleaned = append(cleaned, models.Intent{
			Tag:        tag,
			Patterns:   patterns,
			Responses:  responses,
			ContextSet: strings.TrimSpace(intent.ContextSet),
		})
	}
	return cleaned, skipped
}

// CleanFaqs trims questions and answers, drops incomplete entries and keeps
// only the first entry per case-insensitive question.
func CleanFaqs(raw []models.FaqEntry) (cleaned []models.FaqEntry, skipped int) {
	seen := make(map[string]struct{}, len(raw))
	for _, faq := range raw {
		q := strings.TrimSpace(faq.Question)
		a := strings.TrimSpace(faq.Answer)
		key := strings.ToLower(q)
		if _, dup := seen[key]; q == "" || a == "" || dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, models.FaqEntry{Question: q, Answer: a})
	}
	return cleaned, skipped
}

// WriteIntents stores a processed intents catalog in the format Load expects.
func WriteIntents(path string, intents []models.Intent) error {
	if intents == nil {
		intents = []models.Intent{}
	}
	return writeFile(path, intentsDocument{Intents: intents})
}

// WriteFaqs stores a processed FAQ catalog in the format Load expects.
func WriteFaqs(path string, faqs []models.FaqEntry) error {
	if faqs == nil {
		faqs = []models.FaqEntry{}
	}
	return writeFile(path, faqs)
}

func writeFile(path string, v any) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	if f == formatYAML {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "    ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func decodeGeneric(data []byte, path string) (any, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := decode(data, f, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

func remarshal(in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func uniqueTrimmed(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
