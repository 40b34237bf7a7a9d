package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/antopolskiy/taskboard/internal/clierr"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no taskboard found (run 'taskboard init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

var (
	validBackends   = []string{"file", "sqlite", "memory"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Config represents the taskboard configuration.
type Config struct {
	Version       int                 `yaml:"version"`
	Board         BoardConfig         `yaml:"board"`
	Store         StoreConfig         `yaml:"store"`
	Seed          SeedConfig          `yaml:"seed"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Log           LogConfig           `yaml:"log"`
	TUI           TUIConfig           `yaml:"tui"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name string `yaml:"name"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
}

// SeedConfig describes the placeholder content source.
type SeedConfig struct {
	URL     string `yaml:"url"`
	Count   int    `yaml:"count"`
	Timeout string `yaml:"timeout"`
}

// NotificationsConfig controls transient toasts.
type NotificationsConfig struct {
	Duration string `yaml:"duration"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// TUIConfig holds board UI settings.
type TUIConfig struct {
	TitleLines int `yaml:"title_lines"`
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LogPath returns the diagnostic log path. Relative paths are resolved
// against the data directory.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.dir, c.Log.File)
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version: CurrentVersion,
		Board:   BoardConfig{Name: name},
		Store:   StoreConfig{Backend: DefaultBackend},
		Seed: SeedConfig{
			URL:     DefaultSeedURL,
			Count:   DefaultSeedCount,
			Timeout: DefaultSeedTimeout,
		},
		Notifications: NotificationsConfig{Duration: DefaultNotificationDuration},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   DefaultLogFile,
		},
		TUI: TUIConfig{TitleLines: DefaultTitleLines},
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if !slices.Contains(validBackends, c.Store.Backend) {
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalid, c.Store.Backend)
	}
	if c.Seed.URL == "" {
		return fmt.Errorf("%w: seed.url is required", ErrInvalid)
	}
	if c.Seed.Count < 1 {
		return fmt.Errorf("%w: seed.count must be >= 1", ErrInvalid)
	}
	if err := validateDuration("seed.timeout", c.Seed.Timeout); err != nil {
		return err
	}
	if err := validateDuration("notifications.duration", c.Notifications.Duration); err != nil {
		return err
	}
	if !slices.Contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalid, c.Log.Format)
	}
	if c.Log.File == "" {
		return fmt.Errorf("%w: log.file is required", ErrInvalid)
	}
	if c.TUI.TitleLines < 1 || c.TUI.TitleLines > 3 { //nolint:mnd // at most 3 title lines per card
		return fmt.Errorf("%w: tui.title_lines must be between 1 and 3", ErrInvalid)
	}
	return nil
}

func validateDuration(field, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: invalid %s %q: %w", ErrInvalid, field, v, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, field)
	}
	return nil
}

// SeedTimeout returns seed.timeout as a duration.
func (c *Config) SeedTimeout() time.Duration {
	return parseDurationOr(c.Seed.Timeout, 10*time.Second) //nolint:mnd // matches DefaultSeedTimeout
}

// NotificationDuration returns how long a toast stays visible.
func (c *Config) NotificationDuration() time.Duration {
	return parseDurationOr(c.Notifications.Duration, 3*time.Second) //nolint:mnd // matches DefaultNotificationDuration
}

// TitleLines returns the number of title lines per card.
func (c *Config) TitleLines() int {
	if c.TUI.TitleLines < 1 {
		return DefaultTitleLines
	}
	return c.TUI.TitleLines
}

func parseDurationOr(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Init creates the data directory and writes a default config into it.
func Init(dir, name string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.InvalidInput, "taskboard already initialized in %s", absDir)
	}
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	cfg := NewDefault(name)
	cfg.dir = absDir
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Load reads, migrates and validates a config from the given data directory,
// then applies environment overrides.
func Load(dir string) (*Config, error) {
	return load(dir, true)
}

// LoadFile is Load without environment overrides, for callers that write
// the config back.
func LoadFile(dir string) (*Config, error) {
	return load(dir, false)
}

func load(dir string, withEnv bool) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	if withEnv {
		applyEnv(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a data directory
// containing config.yml. Returns the absolute path to the data directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound,
				"no taskboard found (run 'taskboard init' to create one)")
		}
		dir = parent
	}
}
