package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Cron       CronConfig       `mapstructure:"cron"`
	Rainforest RainforestConfig `mapstructure:"rainforest"`
	SerpWow    SerpWowConfig    `mapstructure:"serpwow"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Advisor    AdvisorConfig    `mapstructure:"advisor"`
	Tracker    TrackerConfig    `mapstructure:"tracker"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TrackerSweep string `mapstructure:"tracker_sweep"`
}

type RainforestConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	AmazonDomain string        `mapstructure:"amazon_domain"`
}

type SerpWowConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type OpenRouterConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AdvisorConfig struct {
	MaxLogSize       int  `mapstructure:"max_log_size"`
	RecentWindow     int  `mapstructure:"recent_window"`
	StrictValidation bool `mapstructure:"strict_validation"`
	// Seed pins the noise source for reproducible runs; 0 means time-seeded.
	Seed int64 `mapstructure:"seed"`
}

type TrackerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Marketplace string `mapstructure:"marketplace"`
	// AdviseOnSweep controls whether each sweep also runs the strategy
	// advisor and persists the decision for alert-enabled products.
	AdviseOnSweep bool `mapstructure:"advise_on_sweep"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.tracker_sweep", "@every 30m")
	v.SetDefault("rainforest.base_url", "https://api.rainforestapi.com")
	v.SetDefault("rainforest.api_key", "")
	v.SetDefault("rainforest.timeout", "20s")
	v.SetDefault("rainforest.amazon_domain", "amazon.com")
	v.SetDefault("serpwow.base_url", "https://api.serpwow.com")
	v.SetDefault("serpwow.api_key", "")
	v.SetDefault("serpwow.timeout", "20s")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.model", "google/gemini-pro")
	v.SetDefault("openrouter.timeout", "60s")
	v.SetDefault("advisor.max_log_size", 50)
	v.SetDefault("advisor.recent_window", 20)
	v.SetDefault("advisor.strict_validation", false)
	v.SetDefault("advisor.seed", 0)
	v.SetDefault("tracker.enabled", true)
	v.SetDefault("tracker.marketplace", "amazon.com")
	v.SetDefault("tracker.advise_on_sweep", true)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
