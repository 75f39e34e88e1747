package config

import "time"

// Config is the decoded service configuration. Keys follow the json tags; nested keys
// can be overridden with GO_PSP_RECONCILIATION_<SECTION>_<KEY>.
type Config struct {
	App      App      `json:"app"`
	Postgres Postgres `json:"postgres"`
	Redis    Redis    `json:"redis"`

	SecretKey          string `json:"secret_key"`
	GcloudProjectID    string `json:"gcloud_project_id"`
	NewRelicLicenseKey string `json:"new_relic_license_key"`

	Reconciliation     ReconciliationConfig     `json:"reconciliation"`
	Sicoob             HTTPConfiguration        `json:"sicoob"`
	CloudStorageConfig CloudStorageConfig       `json:"cloud_storage"`
	MessageBroker      MessageBroker            `json:"message_broker"`
	ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff"`

	FeatureFlag          FeatureFlag          `json:"feature_flag"`
	FeatureFlagSDKConfig FeatureFlagSDKConfig `json:"feature_flag_sdk"`
	FeatureFlagKeyLookup FeatureFlagKeyLookup `json:"feature_flag_key_lookup"`
}

type App struct {
	Name            string        `json:"name"`
	Env             string        `json:"env"`
	HTTPPort        int           `json:"http_port"`
	HTTPTimeout     time.Duration `json:"http_timeout"`
	GracefulTimeout time.Duration `json:"graceful_timeout"`
	LogOption       string        `json:"log_option"`
	LogLevel        string        `json:"log_level"`
}

// Postgres has a write pool and an optional read replica.
type Postgres struct {
	Write Database `json:"write"`
	Read  Database `json:"read"`
}

type Database struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Schema   string `json:"schema"`

	MaxOpenConns int `json:"max_open_conns"`
	MaxIdleConns int `json:"max_idle_conns"`
	// ConnMaxLifetimeMinutes of zero keeps the pool default.
	ConnMaxLifetimeMinutes int `json:"conn_max_lifetime_minutes"`
}

// Redis backs the stats cache. An empty Host selects the in-memory cache.
type Redis struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Db       int    `json:"db"`
}

type ReconciliationConfig struct {
	// BankCodes filters the internal ledger to the bank being reconciled.
	BankCodes []string `json:"bank_codes"`
	// FetchTimeout bounds the join of both source fetches.
	FetchTimeout    time.Duration `json:"fetch_timeout"`
	AutoWindowDays  int           `json:"auto_window_days"`
	StatsWindowDays int           `json:"stats_window_days"`
	StatsCacheTTL   time.Duration `json:"stats_cache_ttl"`
	// ResultURLExpiryTime is in minutes.
	ResultURLExpiryTime int    `json:"result_url_expiry_time"`
	Timezone            string `json:"timezone"`
}

// HTTPConfiguration describes an upstream reached through resty.
type HTTPConfiguration struct {
	BaseURL    string `json:"base_url"`
	SecretKey  string `json:"secret_key"`
	RetryCount int    `json:"retry_count"`
	// RetryWaitTime is the first backoff interval in milliseconds.
	RetryWaitTime int           `json:"retry_wait_time"`
	Timeout       time.Duration `json:"timeout"`
}

type CloudStorageConfig struct {
	BaseURL    string `json:"base_url"`
	BucketName string `json:"bucket_name"`
	ReportPath string `json:"report_path"`
}

type MessageBroker struct {
	Kafka KafkaConfig `json:"kafka"`
}

type KafkaConfig struct {
	Brokers                   []string `json:"brokers"`
	TopicReconciliationResult string   `json:"topic_reconciliation_result"`
	EnableMetrics             bool     `json:"enable_metrics"`
}

type ExponentialBackOffConfig struct {
	MaxRetries        uint64        `json:"max_retries"`
	InitialInterval   time.Duration `json:"initial_interval"`
	MaxBackoffTime    time.Duration `json:"max_backoff_time"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`
}

// FeatureFlag holds the values used when unleash is not configured or does not know a
// toggle.
type FeatureFlag struct {
	EnableArchiveReport    bool `json:"enable_archive_report"`
	EnablePublishCompleted bool `json:"enable_publish_completed"`
}

type FeatureFlagSDKConfig struct {
	URL             string        `json:"url"`
	Token           string        `json:"token"`
	Env             string        `json:"env"`
	RefreshInterval time.Duration `json:"refresh_interval"`
}

// FeatureFlagKeyLookup maps each toggle to its unleash name.
type FeatureFlagKeyLookup struct {
	ArchiveReport    string `json:"archive_report"`
	PublishCompleted string `json:"publish_completed"`
}
