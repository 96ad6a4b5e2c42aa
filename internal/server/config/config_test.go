package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 15*time.Minute, cfg.PresignExpiry)
	require.Equal(t, 100000, cfg.MaxSummaryContentLength)
}

func TestParseEnvOverlay(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://x")
	t.Setenv("JWT_SECRET_KEY", "from-env")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "postgres://x", cfg.DatabaseDSN)
	require.Equal(t, "from-env", cfg.SecretKey)
	require.Equal(t, "sk-test", cfg.AnthropicAPIKey)
}

func TestParseJsonOverlay(t *testing.T) {
	jc := JsonConfig{
		EndpointAddr: ":9999",
		SecretKey:    "from-json",
	}
	data, err := json.Marshal(jc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"app", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":9999", cfg.EndpointAddr)
	require.Equal(t, "from-json", cfg.SecretKey)
	// untouched fields keep their defaults
	require.Equal(t, "documents", cfg.S3Bucket)
}
