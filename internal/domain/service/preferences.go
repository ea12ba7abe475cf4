package service

import (
	"context"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports"
)

type PreferencesService struct {
	repo ports.PreferencesRepository
}

func NewPreferencesService(repo ports.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

func (s *PreferencesService) GetPreferences(ctx context.Context) (*model.Preferences, error) {
	return s.repo.Get(ctx)
}

func (s *PreferencesService) Colours(ctx context.Context) (interface{}, error) {
	return s.repo.Colours(ctx)
}

// SavedByNewerVersion reports the saved config_version when it is newer than
// this build understands.
func (s *PreferencesService) SavedByNewerVersion(ctx context.Context) (int, bool, error) {
	prefs, err := s.repo.Get(ctx)
	if err != nil {
		return 0, false, err
	}
	return prefs.ConfigVersion, prefs.ConfigVersion > model.PreferencesVersion, nil
}
