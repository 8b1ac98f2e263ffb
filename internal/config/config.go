// Package config handles the configuration directory, the optional
// config.toml file, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "smarttodo"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultPrompt is printed before each line read by the shell.
	DefaultPrompt = "> "

	// DefaultHeapCapacity is the initial capacity of the priority index.
	DefaultHeapCapacity = 100
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"quiet"`

	// Prompt is printed before each shell line.
	Prompt string `toml:"prompt"`

	// Banner prints the welcome banner when the shell starts.
	Banner bool `toml:"banner"`

	// HeapCapacity is the initial capacity of the priority index.
	HeapCapacity int `toml:"heap_capacity"`

	// UndoDepth bounds the undo log. Zero means unbounded.
	UndoDepth int `toml:"undo_depth"`

	// ExportList is the Google Tasks list used by export when --list is absent.
	ExportList string `toml:"export_list"`
}

// Default returns the built-in settings for dir.
func Default(dir string) *Config {
	return &Config{
		Dir:          dir,
		Prompt:       DefaultPrompt,
		Banner:       true,
		HeapCapacity: DefaultHeapCapacity,
	}
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/smarttodo or $HOME/.config/smarttodo.
// Settings are layered: defaults, then config.toml, then environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := Default(dir)
	if err := cfg.loadFile(cfg.FilePath()); err != nil {
		return nil, err
	}
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// loadFile decodes path over c. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("loading config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv applies SMARTTODO_DEBUG and SMARTTODO_QUIET.
func (c *Config) loadFromEnv() {
	if v, ok := envBool("SMARTTODO_DEBUG"); ok {
		c.Debug = v
	}
	if v, ok := envBool("SMARTTODO_QUIET"); ok {
		c.Quiet = v
	}
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate checks numeric settings.
func (c *Config) Validate() error {
	if c.HeapCapacity < 1 {
		return fmt.Errorf("invalid heap_capacity: %d (must be at least 1)", c.HeapCapacity)
	}
	if c.UndoDepth < 0 {
		return fmt.Errorf("invalid undo_depth: %d (must not be negative)", c.UndoDepth)
	}
	return nil
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
