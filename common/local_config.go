package common

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

const DefaultSummaryCacheTTL = time.Hour

type OllamaConfig struct {
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
}

type RedisConfig struct {
	Address    string `koanf:"address"`
	SummaryTTL string `koanf:"summary_ttl"`
}

// LocalConfig represents the local configuration file structure
type LocalConfig struct {
	Ollama         OllamaConfig `koanf:"ollama"`
	Redis          RedisConfig  `koanf:"redis"`
	AllowedOrigins []string     `koanf:"allowed_origins"`
}

// Validate ensures the LocalConfig is valid
func (c LocalConfig) Validate() error {
	if c.Ollama.BaseURL != "" {
		u, err := url.Parse(c.Ollama.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid ollama base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("ollama base_url must be http or https: %s", c.Ollama.BaseURL)
		}
	}
	if c.Redis.SummaryTTL != "" {
		if _, err := time.ParseDuration(c.Redis.SummaryTTL); err != nil {
			return fmt.Errorf("invalid redis summary_ttl: %w", err)
		}
	}
	for _, origin := range c.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("allowed_origins must not contain empty entries")
		}
	}
	return nil
}

// LoadLocalConfig loads configuration from the given file path, picking the
// parser from its extension. If the config file doesn't exist, returns an
// empty config.
func LoadLocalConfig(configPath string) (LocalConfig, error) {
	k := koanf.New(".")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return LocalConfig{}, nil
	}

	parser := GetParserForExtension(configPath)
	if parser == nil {
		return LocalConfig{}, fmt.Errorf("unsupported config file type: %s", configPath)
	}

	if err := k.Load(file.Provider(configPath), parser); err != nil {
		return LocalConfig{}, fmt.Errorf("error loading config: %w", err)
	}

	var config LocalConfig
	if err := k.Unmarshal("", &config); err != nil {
		return LocalConfig{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return LocalConfig{}, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// GetConfigPath returns SR_CONFIG_PATH when set, otherwise the first config
// file found in the XDG config home, defaulting to config.yaml there.
func GetConfigPath() string {
	if configPath := os.Getenv("SR_CONFIG_PATH"); configPath != "" {
		return configPath
	}

	configDir := filepath.Join(xdg.ConfigHome, appDirName)
	result := DiscoverConfigFile(configDir, ConfigCandidates)
	if result.ChosenPath == "" {
		return filepath.Join(configDir, "config.yaml")
	}
	if len(result.AllFound) > 1 {
		log.Warn().Str("using", result.ChosenPath).Strs("found", result.AllFound).Msg("Multiple config files found, only one is used")
	}
	return result.ChosenPath
}

// Settings is the effective runtime configuration: environment variables take
// precedence over the config file, which takes precedence over defaults.
type Settings struct {
	OllamaBaseURL   string
	OllamaModel     string
	RedisAddress    string
	SummaryCacheTTL time.Duration
	AllowedOrigins  []string
}

func (c LocalConfig) Settings() (Settings, error) {
	settings := Settings{
		OllamaBaseURL:   c.Ollama.BaseURL,
		OllamaModel:     c.Ollama.Model,
		RedisAddress:    c.Redis.Address,
		SummaryCacheTTL: DefaultSummaryCacheTTL,
		AllowedOrigins:  c.AllowedOrigins,
	}

	if c.Redis.SummaryTTL != "" {
		ttl, err := time.ParseDuration(c.Redis.SummaryTTL)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid redis summary_ttl: %w", err)
		}
		settings.SummaryCacheTTL = ttl
	}

	if v := GetOllamaBaseURL(); v != "" {
		settings.OllamaBaseURL = v
	}
	if v := GetOllamaModel(); v != "" {
		settings.OllamaModel = v
	}
	if v := GetRedisAddress(); v != "" {
		settings.RedisAddress = v
	}
	if v := os.Getenv("SR_SUMMARY_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to parse SR_SUMMARY_CACHE_TTL: %w", err)
		}
		settings.SummaryCacheTTL = ttl
	}

	return settings, nil
}

// LoadSettings reads the config file at GetConfigPath and applies
// environment overrides.
func LoadSettings() (Settings, error) {
	config, err := LoadLocalConfig(GetConfigPath())
	if err != nil {
		return Settings{}, err
	}
	return config.Settings()
}
