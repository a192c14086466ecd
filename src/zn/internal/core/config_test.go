package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		expectError string
	}{
		{
			name: "loads listed files",
			files: map[string]string{
				"meta.yaml": "files: [base.yaml, local.yaml]",
				"base.yaml": "service:\n  name: zn-client\n",
			},
		},
		{
			name:        "missing meta",
			files:       map[string]string{},
			expectError: "failed to load meta configuration",
		},
		{
			name: "meta without files key",
			files: map[string]string{
				"meta.yaml": "files: {a: b}",
			},
			expectError: "failed to read files list",
		},
		{
			name: "no listed file exists",
			files: map[string]string{
				"meta.yaml": "files: [base.yaml]",
			},
			expectError: "no configuration files found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(_envConfigDir, writeConfigDir(t, tt.files))

			provider, err := NewConfig()
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				assert.Nil(t, provider)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "config", provider.Name())
			assert.Equal(t, "zn-client", provider.Get("service.name").String())
		})
	}
}

func TestConfigFilePriority(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml":        "files: [base.yaml, development.yaml, local.yaml]",
		"base.yaml":        "service:\n  name: base-service\nlogging:\n  level: info\n",
		"development.yaml": "service:\n  name: dev-service\nlogging:\n  level: debug\n",
		"local.yaml":       "logging:\n  level: warn\n",
	})
	t.Setenv(_envConfigDir, dir)

	provider, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "dev-service", provider.Get("service.name").String())
	assert.Equal(t, "warn", provider.Get("logging.level").String())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml": "files: [base.yaml]",
		"base.yaml": "jsonrpc:\n  address: \"127.0.0.1:${ZN_PORT_JSONRPC:27891}\"\n",
	})
	t.Setenv(_envConfigDir, dir)

	t.Run("default", func(t *testing.T) {
		provider, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:27891", provider.Get("jsonrpc.address").String())
	})

	t.Run("override", func(t *testing.T) {
		t.Setenv("ZN_PORT_JSONRPC", "8080")
		provider, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8080", provider.Get("jsonrpc.address").String())
	})
}

func TestGetConfigDir(t *testing.T) {
	t.Run("returns environment variable when set", func(t *testing.T) {
		t.Setenv(_envConfigDir, "/custom/config/path")
		assert.Equal(t, "/custom/config/path", getConfigDir())
	})

	t.Run("returns default path when environment variable not set", func(t *testing.T) {
		t.Setenv(_envConfigDir, "")
		assert.Equal(t, _defaultConfigDir, getConfigDir())
	})
}
