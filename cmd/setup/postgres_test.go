package setup

import (
	"net/url"
	"testing"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSourceName(t *testing.T) {
	dsn := dataSourceName(config.Database{
		Host:     "10.0.0.5",
		Port:     "5432",
		User:     "recon",
		Password: "p@ss:word",
		Name:     "psp",
		Schema:   "reconciliation",
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "10.0.0.5:5432", u.Host)
	assert.Equal(t, "/psp", u.Path)
	assert.Equal(t, "recon", u.User.Username())
	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss:word", pass)
	assert.Equal(t, "reconciliation", u.Query().Get("search_path"))
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestDataSourceName_NoSchema(t *testing.T) {
	u, err := url.Parse(dataSourceName(config.Database{Host: "db", Port: "5432", Name: "psp"}))
	require.NoError(t, err)
	assert.False(t, u.Query().Has("search_path"))
}

func TestPositiveOr(t *testing.T) {
	assert.Equal(t, 25, positiveOr(25, 10))
	assert.Equal(t, 10, positiveOr(0, 10))
	assert.Equal(t, 10, positiveOr(-1, 10))
}
