package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

const (
	DefaultEndpoint   = "https://www.googleapis.com/customsearch/v1"
	DefaultLocale     = "fa"
	DefaultHost       = "localhost"
	DefaultPort       = 8080
	DefaultTimeout    = 15 * time.Second
	DefaultSessionTTL = 30 * time.Minute

	// EnvAPIKey and EnvCX override the credentials in the config file.
	EnvAPIKey = "SHEN_API_KEY"
	EnvCX     = "SHEN_CX"
)

type Config struct {
	StorageDir string        `toml:"storage_dir"`
	Locale     string        `toml:"locale"`
	Google     GoogleConfig  `toml:"google"`
	Web        WebConfig     `toml:"web"`
	History    HistoryConfig `toml:"history"`
}

// GoogleConfig holds the Custom Search credentials. Both the key and the
// engine id are required to run a search.
type GoogleConfig struct {
	APIKey   string   `toml:"api_key"`
	CX       string   `toml:"cx"`
	Endpoint string   `toml:"endpoint,omitempty"`
	Timeout  Duration `toml:"timeout,omitempty"`
}

type WebConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// SessionTTL is how long an idle browser session is kept. Zero keeps
	// sessions forever.
	SessionTTL Duration `toml:"session_ttl"`
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() (*Config, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return nil, fmt.Errorf("getting default storage directory: %w", err)
	}
	c := newConfig()
	c.StorageDir = storageDir
	c.applyDefaults()
	c.applyEnv()
	return c, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := *newConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.StorageDir == "" {
		storageDir, err := GetDefaultStorageDir()
		if err != nil {
			return nil, fmt.Errorf("getting default storage directory: %w", err)
		}
		config.StorageDir = storageDir
	}

	config.applyDefaults()
	config.applyEnv()
	return &config, nil
}

// newConfig returns the values that apply when a key is absent from the file.
func newConfig() *Config {
	return &Config{
		Web:     WebConfig{SessionTTL: Duration{DefaultSessionTTL}},
		History: HistoryConfig{Enabled: true},
	}
}

func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.Google.Endpoint == "" {
		c.Google.Endpoint = DefaultEndpoint
	}
	if c.Google.Timeout.Duration <= 0 {
		c.Google.Timeout = Duration{DefaultTimeout}
	}
	if c.Web.Host == "" {
		c.Web.Host = DefaultHost
	}
	if c.Web.Port == 0 {
		c.Web.Port = DefaultPort
	}
	if c.Web.SessionTTL.Duration < 0 {
		c.Web.SessionTTL = Duration{}
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.Google.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCX)); v != "" {
		c.Google.CX = v
	}
}

// Validate reports missing credentials.
func (c *Config) Validate() error {
	var missing []string
	if c.Google.APIKey == "" {
		missing = append(missing, "google.api_key")
	}
	if c.Google.CX == "" {
		missing = append(missing, "google.cx")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s (set them in the config file or via %s/%s)",
			strings.Join(missing, " and "), EnvAPIKey, EnvCX)
	}
	return nil
}

// HistoryDBPath returns the path of the search history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.StorageDir, "history.db")
}

// Addr returns the listen address of the web server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template, err := c.generateConfigTemplate()
	if err != nil {
		return fmt.Errorf("generating config template: %w", err)
	}
	return os.WriteFile(configPath, []byte(template), 0600)
}

func (c *Config) generateConfigTemplate() (string, error) {
	storageDir := c.StorageDir
	if storageDir == "" {
		var err error
		storageDir, err = GetDefaultStorageDir()
		if err != nil {
			return "", fmt.Errorf("getting default storage directory: %w", err)
		}
	}

	// Replace the placeholder storage_dir with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/shen", storageDir, 1)
	return template, nil
}

// GetDefaultStorageDir returns the default storage directory for the history database
func GetDefaultStorageDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	shenDir := filepath.Join(dataDir, "shen")

	if err := os.MkdirAll(shenDir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", shenDir, err)
	}

	return shenDir, nil
}

// GetConfigDir returns the configuration directory for shen
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	shenConfigDir := filepath.Join(configDir, "shen")

	if err := os.MkdirAll(shenConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", shenConfigDir, err)
	}

	return shenConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
