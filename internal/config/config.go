package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider    string        `yaml:"provider"`
	APIKey      string        `yaml:"api_key,omitempty"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url,omitempty"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`

	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`

	// path is where the config was loaded from, empty for defaults
	path string
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    "gemini",
		Model:       "gemini-2.0-flash",
		Temperature: 0.2,
		MaxTokens:   2048,
		Timeout:     2 * time.Minute,
		Export: ExportConfig{
			Dir:    ".",
			Format: "docx",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "firpredict"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultLogPath is where the TUI writes its log
func DefaultLogPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "firpredict.log")
	}
	return filepath.Join(dir, "firpredict.log")
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from the default location.
// Returns nil, nil when no config file exists yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file, filling unset fields with defaults.
// Returns nil, nil when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.path = path

	return cfg, nil
}

// Path returns the file the config was loaded from or will be saved to
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	path, _ := ConfigPath()
	return path
}

// SetPath changes where Save writes
func (c *Config) SetPath(path string) {
	c.path = path
}

func (c *Config) Save() error {
	path := c.Path()
	if path == "" {
		return errors.New("no config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// LoadEnv reads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overrides provider and model from the environment and fills a
// missing API key from the provider's key variable.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("FIRPREDICT_PROVIDER")); v != "" {
		if v != c.Provider {
			c.APIKey = ""
			if p := GetProvider(v); p != nil {
				c.Model = p.DefaultModel
			}
		}
		c.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv("FIRPREDICT_MODEL")); v != "" {
		c.Model = v
	}

	c.FillAPIKey()
}

// FillAPIKey sets a missing API key from the provider's key variables
func (c *Config) FillAPIKey() {
	if c.APIKey != "" {
		return
	}
	p := GetProvider(c.Provider)
	if p == nil {
		return
	}
	for _, name := range p.EnvKeys {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			c.APIKey = v
			return
		}
	}
}

// NeedsSetup reports whether the chosen provider still lacks a key
func (c *Config) NeedsSetup() bool {
	p := GetProvider(c.Provider)
	if p == nil {
		return c.Provider == ""
	}
	return p.NeedsAPIKey && c.APIKey == ""
}

// MaskedAPIKey shows only the ends of the key
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not set"
	}
	if len(c.APIKey) > 8 {
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return "****"
}
