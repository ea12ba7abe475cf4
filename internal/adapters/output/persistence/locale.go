package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"rgb-controller/internal/domain/model"
)

// LoadMessages reads a flat JSON object of translations and overlays it on
// the built-in English strings. An empty path returns the built-in strings.
func LoadMessages(path string) (model.Messages, error) {
	base := model.DefaultMessages()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	var overlay model.Messages
	if err := json.Unmarshal(data, &overlay); err != nil {
		return base, fmt.Errorf("parse %s: %w", path, err)
	}
	return base.Merge(overlay), nil
}
