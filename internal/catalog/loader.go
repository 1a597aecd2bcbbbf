package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"support-bot/internal/models"

	"gopkg.in/yaml.v3"
)

type format int

const (
	formatJSON format = iota
	formatYAML
)

type intentsDocument struct {
	Intents []models.Intent `json:"intents" yaml:"intents"`
}

// Load reads the processed intents and FAQ files. The format follows the file
// extension: .json, .yaml or .yml. Any problem is reported as ErrCatalogLoad.
func Load(intentsPath, faqsPath string) (*Catalog, error) {
	var doc intentsDocument
	if err := decodeFile(intentsPath, &doc); err != nil {
		return nil, err
	}

	var faqs []models.FaqEntry
	if err := decodeFile(faqsPath, &faqs); err != nil {
		return nil, err
	}

	return New(doc.Intents, faqs)
}

func decodeFile(path string, v any) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %v", ErrCatalogLoad, path, err)
	}
	if err := decode(data, f, v); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrCatalogLoad, path, err)
	}
	return nil
}

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: unsupported catalog format %q", ErrCatalogLoad, path)
}

func decode(data []byte, f format, v any) error {
	if f == formatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
