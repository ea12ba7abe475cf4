package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports"
)

// StartupService prepares the view once the window exists. Every step runs
// in order; the window is only shown after the device list and preference
// checks have completed.
type StartupService struct {
	backend  ports.BackendPort
	view     ports.ViewPort
	window   ports.WindowPort
	prefs    *PreferencesService
	assets   ports.AssetSource
	messages model.Messages
	logger   *slog.Logger

	backendReady bool
}

func NewStartupService(backend ports.BackendPort, view ports.ViewPort, window ports.WindowPort,
	prefs *PreferencesService, assets ports.AssetSource, messages model.Messages, logger *slog.Logger) *StartupService {
	if messages == nil {
		messages = model.DefaultMessages()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StartupService{
		backend:  backend,
		view:     view,
		window:   window,
		prefs:    prefs,
		assets:   assets,
		messages: messages,
		logger:   logger,
	}
}

func (s *StartupService) Run(ctx context.Context, version string) {
	s.logger.Debug("version " + version)

	s.view.SetVariable("LOCALES", s.messages)
	colours, err := s.prefs.Colours(ctx)
	if err != nil {
		s.logger.Warn("could not load colours", "error", err)
	}
	s.view.SetVariable("COLOURS", colours)
	icons, err := s.assets.ButtonIcons()
	if err != nil {
		s.logger.Warn("could not load button icons", "error", err)
		icons = map[string]string{}
	}
	s.view.SetVariable("BUTTON_SVGS", icons)
	s.view.Invoke("build_view", nil)

	s.logger.Debug("OpenRazer: getting device list")
	devices := s.backend.ListDevices(ctx)
	s.view.SetVariable(variableCacheDevices, devices.ViewValue())
	switch devices.Status {
	case model.DeviceListDaemonMissing:
		s.logger.Error("OpenRazer: daemon not running")
	case model.DeviceListException:
		s.logger.Error("OpenRazer: exception while listing devices", "exception", devices.Message)
		s.view.Invoke("open_dialog", model.NewDialog(
			s.messages.Get("error_not_ready_title"),
			s.messages.Get("error_not_ready_text")+"<code>"+html.EscapeString(devices.Message)+"</code>",
			model.SeveritySerious,
		))
	default:
		s.logger.Info("OpenRazer: ready", "devices", len(devices.Devices))
		s.view.SetVariable("OPENRAZER_READY", true)
		s.backendReady = true
	}

	saved, newer, err := s.prefs.SavedByNewerVersion(ctx)
	if err != nil {
		s.logger.Warn("could not read preferences", "error", err)
	} else if newer {
		s.view.Invoke("_warn_save_data_version", map[string]interface{}{
			"app_version":  version,
			"pref_version": model.PreferencesVersion,
			"save_version": saved,
		})
	}

	s.logger.Info(fmt.Sprintf("application ready, showing window (%s)", version))
	s.window.Show()
	s.view.Invoke("_set_tab_devices", nil)
}

// BackendReady reports whether the daemon answered during Run.
func (s *StartupService) BackendReady() bool {
	return s.backendReady
}
