package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		prev, had := os.LookupEnv(key)
		_ = os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, prev)
			}
		})
	}
}

func TestConfigLoad_Defaults(t *testing.T) {
	unsetenv(t,
		"CONTENT_ENGINE_BUILD_TARGET",
		"CONTENT_ENGINE_DB_DRIVER",
		"CONTENT_ENGINE_SQLITE_PATH",
		"CONTENT_ENGINE_DATA_DIR",
		"CONTENT_ENGINE_EMBED_PROVIDER",
		"CONTENT_ENGINE_SEARCH_LIMIT",
		"CONTENT_ENGINE_SEARCH_THRESHOLD",
		"CONTENT_ENGINE_VERSION_RETRY_ATTEMPTS",
	)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.BuildTarget)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ".content-engine/content-engine.db", cfg.SQLitePath)
	assert.Equal(t, "ollama", cfg.EmbedProvider)
	assert.Equal(t, 10, cfg.SearchLimit)
	assert.InDelta(t, 0.7, cfg.SearchThreshold, 1e-9)
	assert.Equal(t, 5, cfg.VersionRetryAttempts)
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONTENT_ENGINE_BUILD_TARGET", "cloud")
	t.Setenv("CONTENT_ENGINE_POSTGRES_DSN", "postgres://u:p@localhost/db")
	t.Setenv("CONTENT_ENGINE_EMBED_PROVIDER", "hashing")
	t.Setenv("CONTENT_ENGINE_DB_DRIVER", "auto")
	unsetenv(t, "CONTENT_ENGINE_EMBED_DIMENSION")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.PostgresDSN)
	assert.Equal(t, 256, cfg.EmbedDimension, "hashing embedder gets a default dimension")
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDB    string
		expectErr bool
	}{
		{name: "local derives sqlite", cfg: Config{BuildTarget: "local", DBDriver: "auto", EmbedProvider: "ollama"}, wantDB: "sqlite"},
		{name: "cloud-dev derives postgres", cfg: Config{BuildTarget: "cloud-dev", EmbedProvider: "ollama"}, wantDB: "postgres"},
		{name: "explicit memory kept", cfg: Config{BuildTarget: "cloud", DBDriver: "memory", EmbedProvider: "hashing"}, wantDB: "memory"},
		{name: "unknown target", cfg: Config{BuildTarget: "mars", EmbedProvider: "ollama"}, expectErr: true},
		{name: "unknown driver", cfg: Config{BuildTarget: "local", DBDriver: "mysql", EmbedProvider: "ollama"}, expectErr: true},
		{name: "unknown provider", cfg: Config{BuildTarget: "local", EmbedProvider: "magic"}, expectErr: true},
		{name: "threshold out of range", cfg: Config{BuildTarget: "local", EmbedProvider: "ollama", SearchThreshold: 1.5}, expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.ResolveDefaults()
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDB, cfg.DBDriver)
		})
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "memory", cfg.DBDriver)
}
