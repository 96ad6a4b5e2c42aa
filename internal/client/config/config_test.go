package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jkuschner/Document-Storage-App/internal/timex"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8080", cfg.ServerBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, ".", cfg.DownloadDir)
	require.Equal(t, 8, cfg.PasswordPolicy.MinLength)
	require.True(t, cfg.PasswordPolicy.RequireNumbers)
}

func TestParseJsonOverlay(t *testing.T) {
	jc := JsonConfig{
		ServerBaseURL:  "https://api.example.com",
		RequestTimeout: timex.Duration{Duration: 5 * time.Second},
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

	require.Equal(t, "https://api.example.com", cfg.ServerBaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	// untouched fields keep their defaults
	require.Equal(t, ".", cfg.DownloadDir)
}

func TestParseFlagsOverlay(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"app", "-a", "https://files.example.com", "-t", "10", "-o", "/tmp/downloads"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "https://files.example.com", cfg.ServerBaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/downloads", cfg.DownloadDir)
}
