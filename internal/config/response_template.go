package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"mcq-creator/internal/domain"
)

// LoadResponseTemplate reads the per-question JSON shape that is handed to
// the generator as a formatting guide. The file must hold a JSON object.
func LoadResponseTemplate(path string) (*domain.ResponseTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response template %s: %w", path, err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("response template %s is not a valid JSON object: %w", path, err)
	}

	// Re-serialize compactly so the prompt does not carry file indentation.
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, fmt.Errorf("failed to compact response template %s: %w", path, err)
	}
	return domain.NewResponseTemplate(compact.Bytes()), nil
}
