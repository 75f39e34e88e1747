package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "GO_PSP_RECONCILIATION"

	DefaultAutoWindowDays  = 30
	DefaultStatsWindowDays = 30
	DefaultFetchTimeout    = 60 * time.Second
	SicoobBankCode         = "756"
)

type LoaderOption func(*viper.Viper)

// WithConfigFile points the loader at an explicit file, skipping the search paths.
func WithConfigFile(path string) LoaderOption {
	return func(v *viper.Viper) {
		v.SetConfigFile(path)
	}
}

func WithSearchPaths(paths ...string) LoaderOption {
	return func(v *viper.Viper) {
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}
}

// Load reads config.{yaml,json} from the search paths, overlays GO_PSP_RECONCILIATION_* env
// variables and applies defaults.
func Load(opts ...LoaderOption) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath("/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, opt := range opts {
		opt(v)
	}

	setDefaults(v)

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-psp-reconciliation")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http_port", 8080)
	v.SetDefault("app.graceful_timeout", "10s")
	v.SetDefault("app.log_option", "stdout")
	v.SetDefault("reconciliation.bank_codes", []string{SicoobBankCode})
	v.SetDefault("reconciliation.fetch_timeout", DefaultFetchTimeout.String())
	v.SetDefault("reconciliation.auto_window_days", DefaultAutoWindowDays)
	v.SetDefault("reconciliation.stats_window_days", DefaultStatsWindowDays)
	v.SetDefault("reconciliation.result_url_expiry_time", 15)
	v.SetDefault("reconciliation.timezone", common.TimezoneSaoPaulo)
	v.SetDefault("cloud_storage.report_path", "reconciliation/sicoob")
	v.SetDefault("sicoob.retry_count", 3)
	v.SetDefault("sicoob.retry_wait_time", 200)
	v.SetDefault("sicoob.timeout", "30s")
	v.SetDefault("exponential_backoff.max_retries", 3)
	v.SetDefault("exponential_backoff.max_backoff_time", "5s")
	v.SetDefault("exponential_backoff.backoff_multiplier", 2.0)
}

// applyDefaults guards values that would break the engine when set to zero explicitly.
func (c *Config) applyDefaults() {
	if len(c.Reconciliation.BankCodes) == 0 {
		c.Reconciliation.BankCodes = []string{SicoobBankCode}
	}
	if c.Reconciliation.FetchTimeout <= 0 {
		c.Reconciliation.FetchTimeout = DefaultFetchTimeout
	}
	if c.Reconciliation.AutoWindowDays <= 0 {
		c.Reconciliation.AutoWindowDays = DefaultAutoWindowDays
	}
	if c.Reconciliation.StatsWindowDays <= 0 {
		c.Reconciliation.StatsWindowDays = DefaultStatsWindowDays
	}
}
