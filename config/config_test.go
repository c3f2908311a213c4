package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultUsesEnvironmentForBaseURL(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "http://example:8080/api/v3")
	cfg := Default()
	assert.Equal(t, "http://example:8080/api/v3", cfg.BaseURL)
	assert.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, defaultStatusQueryTimeout, cfg.StatusQueryTimeout)
}

func TestLoadReadsAllFields(t *testing.T) {
	path := writeConfig(t, `
base_url: http://localhost:9090/api/v3
request_timeout: 5s
status_query_timeout: 1m
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/api/v3", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.StatusQueryTimeout)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "")
	path := writeConfig(t, "base_url: http://localhost:9090/api/v3\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, defaultStatusQueryTimeout, cfg.StatusQueryTimeout)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "base_url: ["))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "request_timeout: -1s\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{BaseURL: "http://localhost/api/v3"}.Validate())
	assert.NoError(t, Config{BaseURL: "https://localhost/api/v3"}.Validate())
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{BaseURL: "localhost/api/v3"}.Validate())
}
