package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	DataDir            string     `toml:"data_dir"`
	ExportDir          string     `toml:"export_dir"`
	ExportWorkers      int        `toml:"export_workers"`
	DebounceMillis     int        `toml:"debounce_millis"`
	CacheValidityHours int        `toml:"cache_validity_hours"`
	Sources            Sources    `toml:"sources"`
	UISettings         UISettings `toml:"ui"`
}

// Sources names the three gallery dataset documents (paths or URLs)
type Sources struct {
	Apps  string `toml:"apps"`
	Icons string `toml:"icons"`
	Emoji string `toml:"emoji"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowGlyphs    bool `toml:"show_glyphs"`
	ShowStatusBar bool `toml:"show_status_bar"`
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	Path() string
}

// service is the concrete implementation
type service struct {
	filePath string
}

// NewService creates a config service rooted in the user config directory
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &service{
		filePath: filepath.Join(configDir, "fluentdeck", "config.toml"),
	}
}

// Path returns the config file location
func (s *service) Path() string {
	return s.filePath
}

// Load reads the configuration, falling back to defaults when the file is
// missing. Malformed files surface an error alongside the defaults so the
// caller can decide whether to warn.
func (s *service) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "read config file")
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), errors.Wrap(err, "parse config file")
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration, creating directories as needed
func (s *service) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return errors.Wrap(err, "write config file")
	}
	return nil
}

// applyDefaults fills zero values left out of a partial config file
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.ExportDir == "" {
		c.ExportDir = def.ExportDir
	}
	if c.ExportWorkers <= 0 {
		c.ExportWorkers = def.ExportWorkers
	}
	if c.DebounceMillis <= 0 {
		c.DebounceMillis = def.DebounceMillis
	}
	if c.CacheValidityHours <= 0 {
		c.CacheValidityHours = def.CacheValidityHours
	}
	if c.Sources.Apps == "" {
		c.Sources.Apps = def.Sources.Apps
	}
	if c.Sources.Icons == "" {
		c.Sources.Icons = def.Sources.Icons
	}
	if c.Sources.Emoji == "" {
		c.Sources.Emoji = def.Sources.Emoji
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dataDir := "."
	if configDir, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(configDir, "fluentdeck", "data")
	}

	exportDir := "."
	if homeDir, err := os.UserHomeDir(); err == nil {
		exportDir = filepath.Join(homeDir, "Downloads")
	}

	return &Config{
		DataDir:            dataDir,
		ExportDir:          exportDir,
		ExportWorkers:      5,
		DebounceMillis:     300,
		CacheValidityHours: 24,
		Sources: Sources{
			Apps:  filepath.Join(dataDir, "apps.json"),
			Icons: filepath.Join(dataDir, "icons.json"),
			Emoji: filepath.Join(dataDir, "emoji.json"),
		},
		UISettings: UISettings{
			ShowGlyphs:    true,
			ShowStatusBar: true,
		},
	}
}
