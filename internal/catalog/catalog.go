// Package catalog loads the intent and FAQ datasets the matchers run against.
//
// A Catalog is built once at process start and is read-only afterwards:
// there is no mutation API, and accessors hand out copies, so the same value
// can be shared by concurrent turns without locking. Reloading data requires
// a restart.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"support-bot/internal/models"
)

// ErrCatalogLoad marks missing or malformed catalog data. It is fatal at startup.
var ErrCatalogLoad = errors.New("catalog load failure")

type Catalog struct {
	intents []models.Intent
	faqs    []models.FaqEntry
}

// New validates both datasets and returns an immutable catalog.
func New(intents []models.Intent, faqs []models.FaqEntry) (*Catalog, error) {
	if len(intents) == 0 {
		return nil, fmt.Errorf("%w: intents catalog is empty", ErrCatalogLoad)
	}
	if len(faqs) == 0 {
		return nil, fmt.Errorf("%w: faq catalog is empty", ErrCatalogLoad)
	}
	for i, intent := range intents {
		if err := validateIntent(intent); err != nil {
			return nil, fmt.Errorf("%w: intent #%d: %v", ErrCatalogLoad, i, err)
		}
	}
	for i, faq := range faqs {
		if err := validateFaq(faq); err != nil {
			return nil, fmt.Errorf("%w: faq #%d: %v", ErrCatalogLoad, i, err)
		}
	}

	return &Catalog{
		intents: copyIntents(intents),
		faqs:    append([]models.FaqEntry(nil), faqs...),
	}, nil
}

func (c *Catalog) Intents() []models.Intent {
	return copyIntents(c.intents)
}

func (c *Catalog) Faqs() []models.FaqEntry {
	return append([]models.FaqEntry(nil), c.faqs...)
}

func (c *Catalog) Stats() (intents, patterns, faqs int) {
	for _, intent := range c.intents {
		patterns += len(intent.Patterns)
	}
	return len(c.intents), patterns, len(c.faqs)
}

func validateIntent(intent models.Intent) error {
	if strings.TrimSpace(intent.Tag) == "" {
		return errors.New("empty tag")
	}
	if intent.Tag != strings.ToLower(intent.Tag) {
		return fmt.Errorf("tag %q is not lowercase", intent.Tag)
	}
	if len(intent.Patterns) == 0 {
		return fmt.Errorf("intent %q has no patterns", intent.Tag)
	}
	for _, p := range intent.Patterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("intent %q has an empty pattern", intent.Tag)
		}
	}
	if len(intent.Responses) == 0 {
		return fmt.Errorf("intent %q has no responses", intent.Tag)
	}
	for _, r := range intent.Responses {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("intent %q has an empty response", intent.Tag)
		}
	}
	return nil
}

func validateFaq(faq models.FaqEntry) error {
	if strings.TrimSpace(faq.Question) == "" {
		return errors.New("empty question")
	}
	if strings.TrimSpace(faq.Answer) == "" {
		return fmt.Errorf("question %q has an empty answer", faq.Question)
	}
	return nil
}

func copyIntents(in []models.Intent) []models.Intent {
	out := make([]models.Intent, len(in))
	for i, intent := range in {
		out[i] = models.Intent{
			Tag:        intent.Tag,
			Patterns:   append([]string(nil), intent.Patterns...),
			Responses:  append([]string(nil), intent.Responses...),
			ContextSet: intent.ContextSet,
		}
	}
	return out
}
