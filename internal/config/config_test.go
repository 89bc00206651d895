package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesFields(t *testing.T) {
	t.Setenv("REMOTE_BASE_URL", "https://api.example.test")
	t.Setenv("REMOTE_REQUEST_TIMEOUT", "10s")
	t.Setenv("STORAGE_DB_DSN", "/tmp/queue.db")
	t.Setenv("SYNC_INTERVAL", "2m")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "https://api.example.test", cfg.Remote.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "/tmp/queue.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Sync.Interval)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("SYNC_INTERVAL", "not-a-duration")

	var cfg StructuredConfig
	assert.Error(t, parseEnv(&cfg))
}

func TestParseFlags_PopulatesFields(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := parseFlags(fs, []string{
		"-base-url", "https://api.example.test",
		"-d", "queue.db",
		"-sync-interval", "90s",
		"-bridge-address", "127.0.0.1:48000",
		"-c", "cfg.json",
	})

	assert.Equal(t, "https://api.example.test", cfg.Remote.BaseURL)
	assert.Equal(t, "queue.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 90*time.Second, cfg.Sync.Interval)
	assert.Equal(t, "127.0.0.1:48000", cfg.Bridge.Address)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseJSON_FileAndDurations(t *testing.T) {
	payload := map[string]any{
		"remote": map[string]any{
			"base_url":        "https://api.example.test",
			"request_timeout": "45s",
		},
		"sync": map[string]any{
			"interval": "3m",
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test", cfg.Remote.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 3*time.Minute, cfg.Sync.Interval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestConfigBuilder_MergePriority(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Remote: Remote{BaseURL: "https://first.example"}},
		&StructuredConfig{Remote: Remote{BaseURL: "https://second.example", RealtimeURL: "wss://rt.example"}},
	)
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	// Earlier layers win for non-zero fields; defaults fill the rest.
	assert.Equal(t, "https://first.example", cfg.Remote.BaseURL)
	assert.Equal(t, "wss://rt.example", cfg.Remote.RealtimeURL)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
}

func TestAgentConfig_Validate(t *testing.T) {
	valid := AgentConfig{
		Remote:  AgentRemote{BaseURL: "https://api.example.test", RequestTimeout: 30 * time.Second},
		Storage: AgentStorage{DB: DB{DSN: "queue.db"}},
		Sync:    AgentSync{Interval: 5 * time.Minute, OnlineDebounce: time.Second},
		Bridge:  AgentBridge{Address: "127.0.0.1:47600"},
	}
	require.NoError(t, valid.validate())

	noRemote := valid
	noRemote.Remote.BaseURL = ""
	assert.ErrorIs(t, noRemote.validate(), ErrInvalidRemoteConfigs)

	noDSN := valid
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, noDSN.validate(), ErrInvalidStorageConfigs)

	noInterval := valid
	noInterval.Sync.Interval = 0
	assert.ErrorIs(t, noInterval.validate(), ErrInvalidSyncConfigs)

	publicBridge := valid
	publicBridge.Bridge.Address = "0.0.0.0:47600"
	assert.ErrorIs(t, publicBridge.validate(), ErrInvalidBridgeConfigs)
}
