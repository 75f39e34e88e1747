package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  name: go-psp-reconciliation
  env: dev
  http_port: 8081
  graceful_timeout: 15s
reconciliation:
  fetch_timeout: 45s
  auto_window_days: 7
  stats_cache_ttl: 1m
sicoob:
  base_url: http://integration:5005
  retry_count: 2
postgres:
  write:
    host: localhost
    max_open_conns: 20
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name:    "success load from file",
			content: sampleConfig,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "dev", cfg.App.Env)
				assert.Equal(t, 8081, cfg.App.HTTPPort)
				assert.Equal(t, 15*time.Second, cfg.App.GracefulTimeout)
				assert.Equal(t, 45*time.Second, cfg.Reconciliation.FetchTimeout)
				assert.Equal(t, 7, cfg.Reconciliation.AutoWindowDays)
				assert.Equal(t, time.Minute, cfg.Reconciliation.StatsCacheTTL)
				assert.Equal(t, "http://integration:5005", cfg.Sicoob.BaseURL)
				assert.Equal(t, 2, cfg.Sicoob.RetryCount)
				assert.Equal(t, 20, cfg.Postgres.Write.MaxOpenConns)
			},
		},
		{
			name:    "success apply defaults",
			content: "app:\n  env: local\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, []string{SicoobBankCode}, cfg.Reconciliation.BankCodes)
				assert.Equal(t, DefaultFetchTimeout, cfg.Reconciliation.FetchTimeout)
				assert.Equal(t, DefaultAutoWindowDays, cfg.Reconciliation.AutoWindowDays)
				assert.Equal(t, DefaultStatsWindowDays, cfg.Reconciliation.StatsWindowDays)
				assert.Equal(t, "go-psp-reconciliation", cfg.App.Name)
			},
		},
		{
			name:    "success env override",
			content: sampleConfig,
			env: map[string]string{
				"GO_PSP_RECONCILIATION_APP_HTTP_PORT": "9090",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 9090, cfg.App.HTTPPort)
			},
		},
		{
			name:    "failed malformed file",
			content: "app: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(WithConfigFile(writeConfig(t, tt.content)))
			assert.Equal(t, tt.wantErr, err != nil)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestStringToEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{in: "local", want: LOCAL_ENV},
		{in: "DEV", want: DEV_ENV},
		{in: "uat", want: UAT_ENV},
		{in: "production", want: PROD_ENV},
		{in: "staging", want: UNDEFINED_ENV},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StringToEnvironment(tt.in)
			assert.Equal(t, tt.want, got)
			if got != UNDEFINED_ENV {
				assert.NotEqual(t, "UNDEFINED", got.String())
			}
		})
	}
}

func TestEnvironment_Flags(t *testing.T) {
	assert.False(t, LOCAL_ENV.IsDeployed())
	assert.True(t, UAT_ENV.IsDeployed())
	assert.True(t, PROD_ENV.IsProduction())
	assert.False(t, DEV_ENV.IsProduction())

	cfg := Config{}
	cfg.App.Env = "Production"
	assert.Equal(t, "prod", cfg.Environment().String())
}
