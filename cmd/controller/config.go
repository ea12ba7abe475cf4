package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"rgb-controller/internal/domain/model"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type options struct {
	configPath string
	verbose    bool
	version    bool
	cfg        *model.Config
}

// loadConfig builds the configuration from defaults, the YAML file, command
// line flags and finally CONFIG_PATH / LISTEN_ADDR.
func loadConfig(args []string, getenv func(string) string) (*options, error) {
	opts := &options{cfg: model.DefaultConfig()}
	applyDefaultPaths(opts.cfg)

	flagSet := pflag.NewFlagSet("rgb-controller", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "path to YAML configuration file")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	flagSet.BoolVar(&opts.version, "version", false, "print the version and exit")
	mode := flagSet.String("mode", "", "desktop or server")
	listen := flagSet.String("listen", "", "address for the web UI and metrics")
	uiDir := flagSet.String("ui-dir", "", "serve the web UI from this directory instead of the built-in one")
	formula := flagSet.String("brightness-formula", "", "formula applied to brightness values, variable x")
	noWatch := flagSet.Bool("no-watch", false, "do not watch the colours file")
	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	if env := getenv("CONFIG_PATH"); env != "" && opts.configPath == "" {
		opts.configPath = env
	}
	if opts.configPath != "" {
		if err := loadFile(opts.configPath, opts.cfg); err != nil {
			return nil, err
		}
	}

	if *mode != "" {
		opts.cfg.Mode = model.Mode(*mode)
	}
	if *listen != "" {
		opts.cfg.Listen = *listen
	}
	if *uiDir != "" {
		opts.cfg.UIDir = *uiDir
	}
	if *formula != "" {
		opts.cfg.BrightnessFormula = *formula
	}
	if *noWatch {
		opts.cfg.WatchColours = false
	}
	if env := getenv("LISTEN_ADDR"); env != "" {
		opts.cfg.Listen = env
	}

	if err := validate(opts.cfg); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadFile(path string, cfg *model.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func validate(cfg *model.Config) error {
	switch cfg.Mode {
	case model.ModeDesktop, model.ModeServer:
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if cfg.Mode == model.ModeServer && cfg.Listen == "" {
		return errors.New("server mode needs a listen address")
	}
	if cfg.UIDir != "" {
		if _, err := fs.Stat(os.DirFS(cfg.UIDir), "index.html"); err != nil {
			return fmt.Errorf("ui dir %s: %w", cfg.UIDir, err)
		}
	}
	return nil
}

func applyDefaultPaths(cfg *model.Config) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	base := filepath.Join(dir, "polychromatic")
	cfg.PreferencesPath = filepath.Join(base, "preferences.json")
	cfg.ColoursPath = filepath.Join(base, "colours.json")
}
