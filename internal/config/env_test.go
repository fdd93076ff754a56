// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	environ := map[string]string{
		"OPENCLAW_STATE_DIR":     "/data/.openclaw",
		"OPENCLAW_WORKSPACE_DIR": "/data/workspace",
		"OPENCLAW_CONFIG_PATH":   "/data/.openclaw/openclaw.json",
		"OPENCLAW_CUSTOM_CONFIG": "/app/config/openclaw.json",
		"OPENCLAW_CADDY_DIR":     "/app/caddy.d",

		"OPENCLAW_GATEWAY_PORT":  "18789",
		"OPENCLAW_GATEWAY_TOKEN": "secret-token",
		"OPENCLAW_GATEWAY_BIN":   "/usr/local/bin/openclaw",
		"OPENCLAW_LAN_BIND":      "true",
		"OPENCLAW_VERBOSE":       "true",

		"OPENCLAW_PROXY_BIN":   "caddy",
		"OPENCLAW_CADDYFILE":   "/app/Caddyfile",
		"OPENCLAW_CADDY_ADMIN": "localhost:2019",

		"AUTH_USERNAME": "operator",
		"AUTH_PASSWORD": "hunter2",

		"OPENCLAW_ENV_FILE": "/data/.env",
	}

	// Act
	cfg := &Settings{}
	err := parseEnv(cfg, environ)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/data/.openclaw", cfg.Paths.StateDir)
	assert.Equal(t, "/data/workspace", cfg.Paths.WorkspaceDir)
	assert.Equal(t, "/data/.openclaw/openclaw.json", cfg.Paths.ConfigPath)
	assert.Equal(t, "/app/config/openclaw.json", cfg.Paths.TemplatePath)
	assert.Equal(t, "/app/caddy.d", cfg.Paths.SnippetDir)

	assert.Equal(t, 18789, cfg.Gateway.Port)
	assert.Equal(t, "secret-token", cfg.Gateway.Token)
	assert.Equal(t, "/usr/local/bin/openclaw", cfg.Gateway.Binary)
	assert.True(t, cfg.Gateway.LanBind)
	assert.True(t, cfg.Gateway.Verbose)

	assert.Equal(t, "caddy", cfg.Proxy.Binary)
	assert.Equal(t, "/app/Caddyfile", cfg.Proxy.ConfigFile)
	assert.Equal(t, "localhost:2019", cfg.Proxy.AdminAddr)

	assert.Equal(t, "operator", cfg.Auth.Username)
	assert.Equal(t, "hunter2", cfg.Auth.Password)

	assert.Equal(t, "/data/.env", cfg.EnvFile)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	environ := map[string]string{
		"OPENCLAW_GATEWAY_PORT": "9000",
		"AUTH_PASSWORD":         "hunter2",
	}

	// Act
	cfg := &Settings{}
	err := parseEnv(cfg, environ)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Gateway.Port)
	assert.Equal(t, "hunter2", cfg.Auth.Password)

	assert.Empty(t, cfg.Paths.StateDir)
	assert.Empty(t, cfg.Gateway.Token)
	assert.False(t, cfg.Gateway.LanBind)
	assert.Empty(t, cfg.Auth.Username)
}

func TestParseEnv_InvalidPort(t *testing.T) {
	environ := map[string]string{
		"OPENCLAW_GATEWAY_PORT": "not-a-number",
	}

	cfg := &Settings{}
	err := parseEnv(cfg, environ)

	require.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	environ := []string{
		"OPENCLAW_STATE_DIR=/data/.openclaw",
		"OPENCLAW_JSON__agents__defaults__maxConcurrent=5",
		"EMPTY=",
		"malformed-entry",
	}

	snap := Snapshot(environ)

	assert.Equal(t, "/data/.openclaw", snap["OPENCLAW_STATE_DIR"])
	assert.Equal(t, "5", snap["OPENCLAW_JSON__agents__defaults__maxConcurrent"])
	assert.Equal(t, "", snap["EMPTY"])
	assert.NotContains(t, snap, "malformed-entry")
	assert.Len(t, snap, 3)
}
