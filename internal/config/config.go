package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Shreeng  ShreengConfig  `yaml:"shreeng" mapstructure:"shreeng"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Match    MatchConfig    `yaml:"match" mapstructure:"match"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Sitemap  SitemapConfig  `yaml:"sitemap" mapstructure:"sitemap"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ShreengConfig holds Shreeng engine API settings.
type ShreengConfig struct {
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	APIKey          string  `yaml:"api_key" mapstructure:"api_key"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	PriorityCountry string  `yaml:"priority_country" mapstructure:"priority_country"`
}

// RegistryConfig configures the local place registry.
type RegistryConfig struct {
	// Path to a YAML dataset overriding the embedded one. Empty uses the
	// embedded dataset.
	Path string `yaml:"path" mapstructure:"path"`
}

// MatchConfig holds the additive scoring weights for city name matching.
type MatchConfig struct {
	ExactBonus    int `yaml:"exact_bonus" mapstructure:"exact_bonus"`
	PrefixBonus   int `yaml:"prefix_bonus" mapstructure:"prefix_bonus"`
	ContainsBonus int `yaml:"contains_bonus" mapstructure:"contains_bonus"`
	Tier1Bonus    int `yaml:"tier1_bonus" mapstructure:"tier1_bonus"`
	Tier2Bonus    int `yaml:"tier2_bonus" mapstructure:"tier2_bonus"`
	DefaultLimit  int `yaml:"default_limit" mapstructure:"default_limit"`
}

// ResolverConfig configures slug resolution behavior.
type ResolverConfig struct {
	CandidateLimit int    `yaml:"candidate_limit" mapstructure:"candidate_limit"`
	CachePath      string `yaml:"cache_path" mapstructure:"cache_path"`
	CacheTTLHours  int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// SitemapConfig configures sitemap generation.
type SitemapConfig struct {
	SiteURL string `yaml:"site_url" mapstructure:"site_url"`
	OutDir  string `yaml:"out_dir" mapstructure:"out_dir"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PANCHANG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("shreeng.base_url", "http://localhost:3333/v2")
	v.SetDefault("shreeng.timeout_secs", 10)
	v.SetDefault("shreeng.rate_limit_rps", 20)
	v.SetDefault("shreeng.priority_country", "India")
	v.SetDefault("match.exact_bonus", 100)
	v.SetDefault("match.prefix_bonus", 50)
	v.SetDefault("match.contains_bonus", 25)
	v.SetDefault("match.tier1_bonus", 10)
	v.SetDefault("match.tier2_bonus", 5)
	v.SetDefault("match.default_limit", 10)
	v.SetDefault("resolver.candidate_limit", 5)
	v.SetDefault("resolver.cache_ttl_hours", 24)
	v.SetDefault("sitemap.site_url", "https://shreekundli.com")
	v.SetDefault("sitemap.out_dir", "dist")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
