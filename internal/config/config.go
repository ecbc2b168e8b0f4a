package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"actorrank/internal/domain"
	"actorrank/internal/eventbus"
)

const (
	// DefaultAPIURL is the actor-ranking API used when nothing is configured
	DefaultAPIURL = "http://localhost:8000"
	// DefaultPlaceholderURL is shown for actors without a headshot
	DefaultPlaceholderURL = "https://corporate.bestbuy.com/wp-content/uploads/2022/06/Image-Portrait-Placeholder.jpg"
	// DefaultPageSize is the number of cards per page
	DefaultPageSize = 10
	// DefaultLogFile is relative to the working directory
	DefaultLogFile = "actorrank.log"

	configFileName = "config.toml"
)

// Duration wraps time.Duration so it reads and writes as "10s" in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config represents the application configuration
type Config struct {
	Version int           `toml:"version"`
	API     APISettings   `toml:"api"`
	Cache   CacheSettings `toml:"cache"`
	UI      UISettings    `toml:"ui"`
	Log     LogSettings   `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// APISettings configures the actor-ranking API client
type APISettings struct {
	URL            string   `toml:"url"`
	Timeout        Duration `toml:"timeout"`
	ProfileHost    string   `toml:"profile_host"`
	PlaceholderURL string   `toml:"placeholder_url"`
}

// CacheSettings configures the query result cache. Size 0 disables it.
type CacheSettings struct {
	Size int      `toml:"size"`
	TTL  Duration `toml:"ttl"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize           int  `toml:"page_size"`
	MaxRoles           int  `toml:"max_roles"`
	ResetPageOnResults bool `toml:"reset_page_on_results"`
	ShowHeadshotURL    bool `toml:"show_headshot_url"`
}

// LogSettings configures the log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig configures prometheus exposition. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "actorrank", configFileName),
	}
}

// NewConfigServiceAt creates a config service for path; empty means the default location
func NewConfigServiceAt(path string) ConfigService {
	cs := NewConfigService().(*configService)
	if path != "" {
		cs.filePath = path
	}
	return cs
}

// NewConfigServiceWithBus creates a config service that publishes load/save events
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigServiceAt(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when no file exists
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Fields missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects settings the UI cannot work with
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return errors.New("api.url must not be empty")
	}
	if c.API.Timeout.Duration < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	if c.UI.MaxRoles < 0 {
		return fmt.Errorf("ui.max_roles must not be negative, got %d", c.UI.MaxRoles)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			URL:            DefaultAPIURL,
			Timeout:        Duration{10 * time.Second},
			ProfileHost:    domain.DefaultProfileHost,
			PlaceholderURL: DefaultPlaceholderURL,
		},
		Cache: CacheSettings{
			Size: 64,
			TTL:  Duration{5 * time.Minute},
		},
		UI: UISettings{
			PageSize: DefaultPageSize,
			MaxRoles: domain.MaxDisplayedRoles,
		},
		Log: LogSettings{
			File:  DefaultLogFile,
			Level: "info",
		},
	}
}
