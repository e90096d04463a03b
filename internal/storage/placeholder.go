package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bilgisen/ytfeed/internal/models"
)

//go:embed placeholder.json
var defaultPlaceholders []byte

// LoadPlaceholders reads the appearance dataset shown when neither the live
// pipeline nor any snapshot is available. An empty path selects the built-in set.
func LoadPlaceholders(path string) ([]models.Appearance, error) {
	data := defaultPlaceholders
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read placeholder file %s: %w", path, err)
		}
	}

	var items []models.Appearance
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse placeholder dataset: %w", err)
	}
	for i, it := range items {
		if !models.ValidVideoID(it.YouTubeID) {
			return nil, fmt.Errorf("placeholder %d: invalid video id %q", i, it.YouTubeID)
		}
		if !it.Role.Valid() {
			return nil, fmt.Errorf("placeholder %d: unknown role %q", i, it.Role)
		}
	}
	return items, nil
}
