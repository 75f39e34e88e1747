package flag

import (
	"net/http"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"

	"github.com/Unleash/unleash-client-go/v3"
)

//go:generate mockgen -source=flag.go -destination=mock/flag.go -package=mock

// Job carries the worker command line flags to a job.
type Job struct {
	JobName    string
	Version    string
	Date       string
	BucketName string
}

type Client interface {
	IsEnabled(key string) bool
	Close() error
}

// staticClient answers from the feature_flag config section.
type staticClient struct {
	toggles map[string]bool
}

func NewStatic(cfg *config.Config) Client {
	toggles := map[string]bool{}
	if k := cfg.FeatureFlagKeyLookup.ArchiveReport; k != "" {
		toggles[k] = cfg.FeatureFlag.EnableArchiveReport
	}
	if k := cfg.FeatureFlagKeyLookup.PublishCompleted; k != "" {
		toggles[k] = cfg.FeatureFlag.EnablePublishCompleted
	}
	return &staticClient{toggles: toggles}
}

func (s *staticClient) IsEnabled(key string) bool {
	return s.toggles[key]
}

func (s *staticClient) Close() error {
	return nil
}

type unleashClient struct {
	client   *unleash.Client
	fallback Client
}

// New connects to the flag service. Without a configured URL it returns the static client.
// Unknown toggles fall back to the static value.
func New(cfg *config.Config) (Client, error) {
	static := NewStatic(cfg)
	if cfg.FeatureFlagSDKConfig.URL == "" {
		return static, nil
	}

	opts := []unleash.ConfigOption{
		unleash.WithAppName(cfg.App.Name),
		unleash.WithUrl(cfg.FeatureFlagSDKConfig.URL),
		unleash.WithEnvironment(cfg.FeatureFlagSDKConfig.Env),
		unleash.WithCustomHeaders(http.Header{"Authorization": {cfg.FeatureFlagSDKConfig.Token}}),
		unleash.WithListener(&unleash.DebugListener{}),
		unleash.WithHttpClient(http.DefaultClient),
	}
	if cfg.FeatureFlagSDKConfig.RefreshInterval > 0 {
		opts = append(opts, unleash.WithRefreshInterval(cfg.FeatureFlagSDKConfig.RefreshInterval))
	}

	c, err := unleash.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	c.WaitForReady()

	return &unleashClient{client: c, fallback: static}, nil
}

func (u *unleashClient) IsEnabled(key string) bool {
	return u.client.IsEnabled(key, unleash.WithFallback(u.fallback.IsEnabled(key)))
}

func (u *unleashClient) Close() error {
	return u.client.Close()
}
