// Package settings loads the application settings file.
//
// Settings live in settings.toml inside the user config directory and
// tune the launcher around the tree document itself: where the
// document lives, which modifier scheme is active, the save debounce
// window, and the log level. A missing file yields the defaults.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dshills/leaderkey/internal/keymatch"
	"github.com/dshills/leaderkey/internal/logging"
)

// Filename is the settings file name inside the config directory.
const Filename = "settings.toml"

// EnvConfigDir is the environment variable that overrides the config
// directory, taking precedence over the settings file.
const EnvConfigDir = "LEADERKEY_CONFIG_DIR"

// DefaultDebounce is the save quiescence window used when the settings
// file does not override it.
const DefaultDebounce = 300 * time.Millisecond

// Settings are the application-level knobs.
type Settings struct {
	// ConfigDir is the directory holding the tree document. Empty
	// means the default user config directory.
	ConfigDir string `toml:"configDir"`

	// ConfigFile is the tree document filename.
	ConfigFile string `toml:"configFile"`

	// ModifierScheme selects which physical modifier is sticky and
	// which runs whole groups: "default" or "swapped".
	ModifierScheme string `toml:"modifierScheme"`

	// DebounceMS is the save quiescence window in milliseconds. Zero
	// or negative falls back to the default.
	DebounceMS int `toml:"debounceMs"`

	// LogLevel is the minimum log level: debug, info, warn, or error.
	LogLevel string `toml:"logLevel"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ConfigDir:      DefaultConfigDir(),
		ConfigFile:     "config.json",
		ModifierScheme: keymatch.SchemeDefault.String(),
		DebounceMS:     int(DefaultDebounce / time.Millisecond),
		LogLevel:       "info",
	}
}

// DefaultConfigDir returns the user configuration directory:
// $XDG_CONFIG_HOME/leaderkey, or ~/.config/leaderkey.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "leaderkey")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "leaderkey")
}

// Load reads settings from dir/settings.toml, layering the file over
// the defaults. A missing file is not an error. The EnvConfigDir
// environment variable overrides ConfigDir regardless of the file.
func Load(dir string) (Settings, error) {
	s := Default()
	if dir == "" {
		dir = DefaultConfigDir()
	}

	data, err := os.ReadFile(filepath.Join(dir, Filename))
	switch {
	case os.IsNotExist(err):
		// Defaults stand.
	case err != nil:
		return s, fmt.Errorf("reading settings: %w", err)
	default:
		if err := toml.Unmarshal(data, &s); err != nil {
			return Default(), fmt.Errorf("parsing settings: %w", err)
		}
	}

	if env := os.Getenv(EnvConfigDir); env != "" {
		s.ConfigDir = env
	}
	if s.ConfigDir == "" {
		s.ConfigDir = DefaultConfigDir()
	}
	if s.ConfigFile == "" {
		s.ConfigFile = "config.json"
	}
	return s, nil
}

// Debounce returns the save quiescence window.
func (s Settings) Debounce() time.Duration {
	if s.DebounceMS <= 0 {
		return DefaultDebounce
	}
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Scheme returns the parsed modifier scheme. The second result is
// false when the configured value is unrecognized and the default was
// substituted.
func (s Settings) Scheme() (keymatch.Scheme, bool) {
	return keymatch.ParseScheme(s.ModifierScheme)
}

// Level returns the parsed minimum log level.
func (s Settings) Level() logging.Level {
	return logging.ParseLevel(s.LogLevel)
}
