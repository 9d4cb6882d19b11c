// Package config loads kartu's settings from the config file, KARTU_*
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/llm"
	"github.com/abhisek/kartu/internal/logging"
	"github.com/abhisek/kartu/internal/selection"
	"github.com/abhisek/kartu/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. KARTU_LOG_LEVEL.
const EnvPrefix = "KARTU"

// Config holds all configuration.
type Config struct {
	DB      string `mapstructure:"db"`
	Content string `mapstructure:"content"`
	Mode    string `mapstructure:"mode"`

	Log       LogConfig       `mapstructure:"log"`
	Selection SelectionConfig `mapstructure:"selection"`
	Session   SessionConfig   `mapstructure:"session"`
	LLM       LLMConfig       `mapstructure:"llm"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// SelectionConfig tunes the card picker.
type SelectionConfig struct {
	NoveltyBoost    float64       `mapstructure:"novelty_boost"`
	SecondLookBoost float64       `mapstructure:"second_look_boost"`
	RecentWindow    time.Duration `mapstructure:"recent_window"`
	RecentFactor    float64       `mapstructure:"recent_factor"`
	CoolingWindow   time.Duration `mapstructure:"cooling_window"`
	CoolingFactor   float64       `mapstructure:"cooling_factor"`
	MinWeight       float64       `mapstructure:"min_weight"`
	Dampening       string        `mapstructure:"dampening"`
}

type SessionConfig struct {
	WeakestLimit int `mapstructure:"weakest_limit"`
}

// LLMConfig configures the chat tutor. An empty provider picks the first
// one with an API key.
type LLMConfig struct {
	Provider          string        `mapstructure:"provider"`
	Model             string        `mapstructure:"model"`
	BaseURL           string        `mapstructure:"base_url"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	RequestsPerMinute float64       `mapstructure:"requests_per_minute"`
	Timeout           time.Duration `mapstructure:"timeout"`

	OpenAIAPIKey     string `mapstructure:"openai_api_key"`
	AnthropicAPIKey  string `mapstructure:"anthropic_api_key"`
	GeminiAPIKey     string `mapstructure:"gemini_api_key"`
	OpenRouterAPIKey string `mapstructure:"openrouter_api_key"`
}

// Load reads configuration into v. An explicit file must exist; the
// default file is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys also come from the variables their SDKs use.
	for _, k := range []struct{ key, env string }{
		{"llm.openai_api_key", "OPENAI_API_KEY"},
		{"llm.anthropic_api_key", "ANTHROPIC_API_KEY"},
		{"llm.gemini_api_key", "GEMINI_API_KEY"},
		{"llm.openrouter_api_key", "OPENROUTER_API_KEY"},
	} {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(k.key, ".", "_"))
		if err := v.BindEnv(k.key, envKey, k.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k.key, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("content", "")
	v.SetDefault("mode", "casual")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	sel := selection.DefaultConfig()
	v.SetDefault("selection.novelty_boost", sel.NoveltyBoost)
	v.SetDefault("selection.second_look_boost", sel.SecondLookBoost)
	v.SetDefault("selection.recent_window", sel.RecentWindow)
	v.SetDefault("selection.recent_factor", sel.RecentFactor)
	v.SetDefault("selection.cooling_window", sel.CoolingWindow)
	v.SetDefault("selection.cooling_factor", sel.CoolingFactor)
	v.SetDefault("selection.min_weight", sel.MinWeight)
	v.SetDefault("selection.dampening", string(sel.Dampening))

	v.SetDefault("session.weakest_limit", content.DefaultWeakestLimit)

	def := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_tokens", def.MaxTokens)
	v.SetDefault("llm.requests_per_minute", def.RateLimit.RequestsPerMinute)
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openrouter_api_key", "")
}

// DefaultDir resolves $XDG_CONFIG_HOME/kartu, falling back to
// ~/.config/kartu.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "kartu"), nil
}

// DBPath returns the configured database path or the default one, making
// sure its directory exists.
func (c *Config) DBPath() (string, error) {
	if c.DB == "" {
		return store.DefaultDBPath()
	}
	return c.DB, store.EnsureDir(c.DB)
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, File: c.Log.File}
}

// SelectionConfig returns the picker tuning. Zero values fall back to the
// defaults inside the selection package.
func (c *Config) SelectionConfig() selection.Config {
	s := c.Selection
	return selection.Config{
		NoveltyBoost:    s.NoveltyBoost,
		SecondLookBoost: s.SecondLookBoost,
		RecentWindow:    s.RecentWindow,
		RecentFactor:    s.RecentFactor,
		CoolingWindow:   s.CoolingWindow,
		CoolingFactor:   s.CoolingFactor,
		MinWeight:       s.MinWeight,
		Dampening:       selection.Dampening(strings.ToLower(s.Dampening)),
	}
}

// LLMConfig returns the provider settings. With no provider set, the
// first provider with an API key is chosen in the order OpenAI,
// Anthropic, Gemini, OpenRouter.
func (c *Config) LLMConfig() llm.Config {
	l := c.LLM
	out := llm.DefaultConfig()
	out.OpenAI.APIKey = l.OpenAIAPIKey
	out.Anthropic.APIKey = l.AnthropicAPIKey
	out.Gemini.APIKey = l.GeminiAPIKey
	out.OpenRouter.APIKey = l.OpenRouterAPIKey

	out.Provider = strings.ToLower(l.Provider)
	if out.Provider == "" {
		switch {
		case l.OpenAIAPIKey != "":
			out.Provider = llm.ProviderOpenAI
		case l.AnthropicAPIKey != "":
			out.Provider = llm.ProviderAnthropic
		case l.GeminiAPIKey != "":
			out.Provider = llm.ProviderGemini
		case l.OpenRouterAPIKey != "":
			out.Provider = llm.ProviderOpenRouter
		default:
			out.Provider = llm.ProviderOpenAI
		}
	}

	if l.Model != "" {
		switch out.Provider {
		case llm.ProviderOpenAI:
			out.OpenAI.Model = l.Model
		case llm.ProviderAnthropic:
			out.Anthropic.Model = l.Model
		case llm.ProviderGemini:
			out.Gemini.Model = l.Model
		case llm.ProviderOpenRouter:
			out.OpenRouter.Model = l.Model
		}
	}
	if l.BaseURL != "" {
		out.OpenAI.BaseURL = l.BaseURL
		out.OpenRouter.BaseURL = l.BaseURL
	}
	if l.MaxTokens > 0 {
		out.MaxTokens = l.MaxTokens
	}
	if l.RequestsPerMinute >= 0 {
		out.RateLimit.RequestsPerMinute = l.RequestsPerMinute
	}
	if l.Timeout > 0 {
		out.Timeout = l.Timeout
	}
	return out
}
