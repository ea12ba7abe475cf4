package ports

import (
	"context"
	"rgb-controller/internal/domain/model"
)

type PreferencesRepository interface {
	Get(ctx context.Context) (*model.Preferences, error)
	Save(ctx context.Context, prefs *model.Preferences) error
	// Colours returns the saved colour palette exactly as stored.
	Colours(ctx context.Context) (interface{}, error)
}

// AssetSource provides static assets the view needs at startup.
type AssetSource interface {
	ButtonIcons() (map[string]string, error)
}
