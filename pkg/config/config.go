// Package config loads nupull configuration from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/nupull/config.toml (falling back to
// ~/.config/nupull/config.toml). Every value has a sensible default and can
// be overridden by command-line flags; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "nupull"

// Config holds all file-configurable settings.
type Config struct {
	// Source is the base URL of the package feed. Required, either here
	// or via the --source flag.
	Source string `toml:"source"`

	// Dir is the download destination directory.
	Dir string `toml:"dir"`

	// Frameworks is the accepted target-framework set. Empty accepts all.
	Frameworks []string `toml:"frameworks"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the feed response cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo", "none".
	Backend string `toml:"backend"`

	// TTL is how long feed responses stay cached.
	TTL Duration `toml:"ttl"`

	// Path overrides the file backend's directory.
	Path string `toml:"path"`

	// Addr and Password configure the redis backend.
	Addr     string `toml:"addr"`
	Password string `toml:"password"`

	// URI, Database and Collection configure the mongo backend.
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration wraps time.Duration for TOML decoding of strings like "24h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dir: "./download",
		Cache: CacheConfig{
			Backend:    "file",
			TTL:        Duration(24 * time.Hour),
			Database:   appName,
			Collection: "feedcache",
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields [Default]; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the XDG-standard config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the XDG-standard cache directory for the file backend.
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
