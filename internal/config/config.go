package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultAPIBaseURL is where the catalog service listens by default
	DefaultAPIBaseURL = "http://localhost:8000"
	// DefaultMessageTimeout is how long a status message stays in the status bar
	DefaultMessageTimeout = 3 * time.Second
	// DefaultRequestTimeout bounds a single catalog call
	DefaultRequestTimeout = 30 * time.Second
)

// Environment variables read by Load
const (
	EnvAPIURL         = "PRINTCAT_API_URL"
	EnvProductsDir    = "PRODUCTS_DIR"
	EnvMessageTimeout = "PRINTCAT_MESSAGE_TIMEOUT"
	EnvRequestTimeout = "PRINTCAT_REQUEST_TIMEOUT"
	EnvLogLevel       = "PRINTCAT_LOG_LEVEL"
)

var (
	// ConfigDir is the global configuration directory (~/.printcat)
	ConfigDir string

	// ConfigFile is the optional YAML configuration file
	ConfigFile string

	// DatabasePath is the SQLite database file for the activity log
	DatabasePath string

	// LogFile receives zap output while the TUI owns the terminal
	LogFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string
)

// osUserHomeDir is swapped in tests.
var osUserHomeDir = os.UserHomeDir

// Config is the resolved runtime configuration.
type Config struct {
	APIBaseURL     string        `yaml:"api_url"`
	ProductRoot    string        `yaml:"products_dir"`
	MessageTimeout time.Duration `yaml:"message_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
	HistoryPath    string        `yaml:"history_db"`
	KeybindsPath   string        `yaml:"keybinds"`
}

// Initialize sets up the configuration directory and global paths.
// It creates ~/.printcat/ if it doesn't exist.
func Initialize() error {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".printcat")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "activity.db")
	LogFile = filepath.Join(ConfigDir, "printcat.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	productRoot := ""
	if home, err := osUserHomeDir(); err == nil {
		productRoot = filepath.Join(home, "Work", "3d_print", "Products")
	}

	return &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		ProductRoot:    productRoot,
		MessageTimeout: DefaultMessageTimeout,
		RequestTimeout: DefaultRequestTimeout,
		LogFile:        LogFile,
		HistoryPath:    DatabasePath,
		KeybindsPath:   KeybindsFile,
	}
}

// Load resolves configuration in order: defaults, YAML file, .env, process env.
// Initialize must have been called first so the global paths are set.
func Load() (*Config, error) {
	cfg := Default()

	if ConfigFile != "" {
		if err := cfg.mergeFile(ConfigFile); err != nil {
			return nil, err
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.ProductRoot = expandHome(cfg.ProductRoot)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg, nil
}

// mergeFile overlays non-zero values from a YAML file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if fileCfg.APIBaseURL != "" {
		c.APIBaseURL = fileCfg.APIBaseURL
	}
	if fileCfg.ProductRoot != "" {
		c.ProductRoot = fileCfg.ProductRoot
	}
	if fileCfg.MessageTimeout > 0 {
		c.MessageTimeout = fileCfg.MessageTimeout
	}
	if fileCfg.RequestTimeout > 0 {
		c.RequestTimeout = fileCfg.RequestTimeout
	}
	if fileCfg.LogLevel != "" {
		c.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFile != "" {
		c.LogFile = expandHome(fileCfg.LogFile)
	}
	if fileCfg.HistoryPath != "" {
		c.HistoryPath = expandHome(fileCfg.HistoryPath)
	}
	if fileCfg.KeybindsPath != "" {
		c.KeybindsPath = expandHome(fileCfg.KeybindsPath)
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvProductsDir); v != "" {
		c.ProductRoot = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	var err error
	if c.MessageTimeout, err = getEnvAsDuration(EnvMessageTimeout, c.MessageTimeout); err != nil {
		return err
	}
	if c.RequestTimeout, err = getEnvAsDuration(EnvRequestTimeout, c.RequestTimeout); err != nil {
		return err
	}

	return nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := osUserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
