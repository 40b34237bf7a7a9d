package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/antopolskiy/taskboard/internal/clierr"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault("Test Board")
	if cfg.Board.Name != "Test Board" {
		t.Errorf("Board.Name = %q, want %q", cfg.Board.Name, "Test Board")
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.Seed.Count != 9 {
		t.Errorf("Seed.Count = %d, want 9", cfg.Seed.Count)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	if got := cfg.NotificationDuration(); got != 3*time.Second {
		t.Errorf("NotificationDuration() = %v, want 3s", got)
	}
	if got := cfg.SeedTimeout(); got != 10*time.Second {
		t.Errorf("SeedTimeout() = %v, want 10s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default", func(_ *Config) {}, false},
		{"bad version", func(c *Config) { c.Version = 99 }, true},
		{"empty name", func(c *Config) { c.Board.Name = "" }, true},
		{"sqlite backend", func(c *Config) { c.Store.Backend = "sqlite" }, false},
		{"memory backend", func(c *Config) { c.Store.Backend = "memory" }, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, true},
		{"empty seed url", func(c *Config) { c.Seed.URL = "" }, true},
		{"zero seed count", func(c *Config) { c.Seed.Count = 0 }, true},
		{"bad seed timeout", func(c *Config) { c.Seed.Timeout = "soon" }, true},
		{"negative notification duration", func(c *Config) { c.Notifications.Duration = "-1s" }, true},
		{"debug level", func(c *Config) { c.Log.Level = "debug" }, false},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"json format", func(c *Config) { c.Log.Format = "json" }, false},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"empty log file", func(c *Config) { c.Log.File = "" }, true},
		{"tui.title_lines=3", func(c *Config) { c.TUI.TitleLines = 3 }, false},
		{"tui.title_lines=0", func(c *Config) { c.TUI.TitleLines = 0 }, true},
		{"tui.title_lines=4", func(c *Config) { c.TUI.TitleLines = 4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("Test")
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir, "My Board")
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if _, err := os.Stat(cfg.ConfigPath()); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Board.Name != "My Board" {
		t.Errorf("Board.Name = %q, want %q", loaded.Board.Name, "My Board")
	}
	if loaded.Dir() != cfg.Dir() {
		t.Errorf("Dir() = %q, want %q", loaded.Dir(), cfg.Dir())
	}
	if loaded.LogPath() != filepath.Join(cfg.Dir(), DefaultLogFile) {
		t.Errorf("LogPath() = %q", loaded.LogPath())
	}
}

func TestInitTwice(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, "A"); err != nil {
		t.Fatal(err)
	}
	_, err := Init(dir, "B")
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.InvalidInput {
		t.Fatalf("second Init() error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, "Env"); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvStore, "memory")
	t.Setenv(EnvSeedURL, "http://localhost:1/posts")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Seed.URL != "http://localhost:1/posts" {
		t.Errorf("Seed.URL = %q", cfg.Seed.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, "Env"); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvStore, "memory")

	cfg, err := LoadFile(dir)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Store.Backend != DefaultBackend {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, DefaultBackend)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, "Env"); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvStore, "redis")
	if _, err := Load(dir); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, DefaultDir)
	if _, err := Init(dataDir, "Find"); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	got, err := FindDir(nested)
	if err != nil {
		t.Fatalf("FindDir() error: %v", err)
	}
	want, _ := filepath.Abs(dataDir)
	if got != want {
		t.Errorf("FindDir() = %q, want %q", got, want)
	}

	// From inside the data directory itself.
	got, err = FindDir(dataDir)
	if err != nil {
		t.Fatalf("FindDir(dataDir) error: %v", err)
	}
	if got != want {
		t.Errorf("FindDir(dataDir) = %q, want %q", got, want)
	}
}

func TestFindDirNotFound(t *testing.T) {
	_, err := FindDir(t.TempDir())
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.BoardNotFound {
		t.Errorf("FindDir() error = %v, want BOARD_NOT_FOUND", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), EnvFileName)
	if err := os.WriteFile(path, []byte("TASKBOARD_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKBOARD_TEST_DOTENV", "")
	if err := os.Unsetenv("TASKBOARD_TEST_DOTENV"); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("TASKBOARD_TEST_DOTENV"); got != "from-file" {
		t.Errorf("TASKBOARD_TEST_DOTENV = %q, want from-file", got)
	}
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), EnvFileName)
	if err := os.WriteFile(path, []byte("TASKBOARD_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKBOARD_TEST_DOTENV", "from-env")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("TASKBOARD_TEST_DOTENV"); got != "from-env" {
		t.Errorf("TASKBOARD_TEST_DOTENV = %q, want from-env", got)
	}
}

func TestLoadDotEnvMissing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("LoadDotEnv(missing) error: %v", err)
	}
}
