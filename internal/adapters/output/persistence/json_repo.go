package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"rgb-controller/internal/domain/model"
	"sync"
)

// JSONPreferencesRepository stores preferences and the colour palette as
// two JSON files.
type JSONPreferencesRepository struct {
	prefsPath   string
	coloursPath string
	mu          sync.RWMutex
}

// Files written before config_version existed carried a bare "version".
const legacyVersionKey = "version"

const versionKey = "config_version"

var defaultColours = []map[string]string{
	{"name": "White", "hex": "#FFFFFF"},
	{"name": "Red", "hex": "#FF0000"},
	{"name": "Green", "hex": "#00FF00"},
	{"name": "Blue", "hex": "#0000FF"},
}

func NewJSONPreferencesRepository(prefsPath, coloursPath string) *JSONPreferencesRepository {
	return &JSONPreferencesRepository{prefsPath: prefsPath, coloursPath: coloursPath}
}

func (r *JSONPreferencesRepository) Get(ctx context.Context) (*model.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.prefsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Preferences{ConfigVersion: model.PreferencesVersion, Sections: map[string]interface{}{}}, nil
		}
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.prefsPath, err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	version, ok := raw[versionKey]
	if !ok {
		return r.migrate(raw)
	}
	n, err := model.ToInt(version)
	if err != nil {
		return nil, fmt.Errorf("%s in %s: %w", versionKey, r.prefsPath, err)
	}
	delete(raw, versionKey)
	return &model.Preferences{ConfigVersion: n, Sections: raw}, nil
}

func (r *JSONPreferencesRepository) migrate(raw map[string]interface{}) (*model.Preferences, error) {
	prefs := &model.Preferences{ConfigVersion: 0, Sections: raw}
	if v, ok := raw[legacyVersionKey]; ok {
		if n, err := model.ToInt(v); err == nil {
			prefs.ConfigVersion = n
		}
		delete(raw, legacyVersionKey)
	}
	return prefs, nil
}

func (r *JSONPreferencesRepository) Save(ctx context.Context, prefs *model.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]interface{}, len(prefs.Sections)+1)
	for k, v := range prefs.Sections {
		out[k] = v
	}
	out[versionKey] = prefs.ConfigVersion

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.prefsPath, data, 0644)
}

// Colours returns the decoded palette file, or the built-in palette when the
// file does not exist yet.
func (r *JSONPreferencesRepository) Colours(ctx context.Context) (interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.coloursPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultColours, nil
		}
		return nil, err
	}
	var colours interface{}
	if err := json.Unmarshal(data, &colours); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.coloursPath, err)
	}
	return colours, nil
}

// ColoursPath is the file Colours reads.
func (r *JSONPreferencesRepository) ColoursPath() string {
	return r.coloursPath
}
