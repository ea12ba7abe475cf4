package model

import "time"

type Mode string

const (
	ModeDesktop Mode = "desktop"
	ModeServer  Mode = "server"
)

// Config is the application configuration read at startup.
type Config struct {
	Mode              Mode          `yaml:"mode"`
	Listen            string        `yaml:"listen"`
	UIDir             string        `yaml:"ui_dir"`
	PreferencesPath   string        `yaml:"preferences_path"`
	ColoursPath       string        `yaml:"colours_path"`
	IconsDir          string        `yaml:"icons_dir"`
	LocalePath        string        `yaml:"locale_path"`
	HelpURL           string        `yaml:"help_url"`
	BrightnessFormula string        `yaml:"brightness_formula"` // variable: x
	DBusTimeout       time.Duration `yaml:"dbus_timeout"`
	WatchColours      bool          `yaml:"watch_colours"`
}

const DefaultHelpURL = "https://polychromatic.app/docs"

func DefaultConfig() *Config {
	return &Config{
		Mode:              ModeDesktop,
		Listen:            "127.0.0.1:8420",
		HelpURL:           DefaultHelpURL,
		BrightnessFormula: "x",
		DBusTimeout:       5 * time.Second,
		WatchColours:      true,
	}
}

// PreferencesVersion is the newest preferences layout this build understands.
const PreferencesVersion = 7

// Preferences is the user's saved preferences. Sections other than the
// version are kept as decoded JSON and not interpreted here.
type Preferences struct {
	ConfigVersion int                    `json:"config_version"`
	Sections      map[string]interface{} `json:"-"`
}
