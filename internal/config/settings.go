// SPDX-License-Identifier: Apache-2.0

// Package config loads and merges the bootstrap settings for the openclaw
// container image.
//
// Settings are assembled once in main from environment variables, command
// line flags, an optional dotenv file, and shipped defaults; every other
// package receives the resulting struct and never reads the process
// environment on its own. The raw environment is captured exactly once into
// [Settings.Environ] so the configuration synthesizer can consume
// convention-named variables from the same snapshot.
package config

import (
	"path/filepath"
	"sort"
)

// DefaultGatewayPort is the gateway port baked into the image. The
// synthesizer needs to distinguish this fallback from an explicitly
// configured port: an explicit port overrides the persisted document, the
// fallback does not.
const DefaultGatewayPort = 18789

// Settings is the top-level configuration container for the bootstrap
// binaries. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// dotenv file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Settings struct {
	// Paths holds every filesystem location the bootstrap touches: the
	// persistent state directory, the workspace, the configuration
	// document, the shipped template, and the proxy snippet directory.
	Paths Paths `envPrefix:"OPENCLAW_"`

	// Gateway holds settings describing the gateway process the bootstrap
	// ultimately hands control to.
	Gateway Gateway `envPrefix:"OPENCLAW_"`

	// Proxy holds settings for the reverse-proxy process started in the
	// background before the gateway hand-off.
	Proxy Proxy `envPrefix:"OPENCLAW_"`

	// Auth holds the optional basic-auth credentials materialized into the
	// proxy auth snippet.
	Auth Auth `envPrefix:"AUTH_"`

	// EnvFile is the optional path to a dotenv file layered underneath the
	// real process environment. Populated via the OPENCLAW_ENV_FILE
	// variable or the -env-file flag.
	EnvFile string `env:"OPENCLAW_ENV_FILE"`

	// Environ is the one-time snapshot of the process environment (plus
	// any dotenv values not shadowed by it). Components that need
	// convention-named variables read this map, never os.Getenv.
	Environ map[string]string `env:"-"`
}

// Paths groups the filesystem locations used by the bootstrap sequence.
type Paths struct {
	// StateDir is the persistent directory owning the token file, the
	// configuration document, and lock markers. Survives restarts via an
	// external volume mount.
	// Env: OPENCLAW_STATE_DIR
	StateDir string `env:"STATE_DIR"`

	// WorkspaceDir is the default agent workspace directory.
	// Env: OPENCLAW_WORKSPACE_DIR
	WorkspaceDir string `env:"WORKSPACE_DIR"`

	// ConfigPath is the location of the persisted configuration document.
	// Defaults to <StateDir>/openclaw.json when unset.
	// Env: OPENCLAW_CONFIG_PATH
	ConfigPath string `env:"CONFIG_PATH"`

	// TemplatePath is the shipped configuration template the document is
	// seeded from on first boot.
	// Env: OPENCLAW_CUSTOM_CONFIG
	TemplatePath string `env:"CUSTOM_CONFIG"`

	// SnippetDir is the directory the proxy scans for generated
	// configuration snippets.
	// Env: OPENCLAW_CADDY_DIR
	SnippetDir string `env:"CADDY_DIR"`
}

// Gateway describes the gateway process and its hand-off arguments.
type Gateway struct {
	// Port is the local TCP port the gateway listens on.
	// Env: OPENCLAW_GATEWAY_PORT
	Port int `env:"GATEWAY_PORT"`

	// Token is an explicit bearer-token override. When set it is
	// authoritative and persisted so later boots without it recover the
	// same token.
	// Env: OPENCLAW_GATEWAY_TOKEN
	Token string `env:"GATEWAY_TOKEN"`

	// Binary is the gateway executable name or path.
	// Env: OPENCLAW_GATEWAY_BIN
	Binary string `env:"GATEWAY_BIN"`

	// LanBind controls the gateway bind scope: network-wide when true,
	// loopback-only otherwise.
	// Env: OPENCLAW_LAN_BIND
	LanBind bool `env:"LAN_BIND"`

	// Verbose enables debug logging on both the bootstrap and the gateway.
	// Env: OPENCLAW_VERBOSE
	Verbose bool `env:"VERBOSE"`
}

// Proxy describes the reverse-proxy process.
type Proxy struct {
	// Binary is the proxy executable name or path.
	// Env: OPENCLAW_PROXY_BIN
	Binary string `env:"PROXY_BIN"`

	// ConfigFile is the static proxy configuration whose include directive
	// pulls in the generated snippets.
	// Env: OPENCLAW_CADDYFILE
	ConfigFile string `env:"CADDYFILE"`

	// AdminAddr is the proxy admin endpoint polled for readiness after the
	// background start.
	// Env: OPENCLAW_CADDY_ADMIN
	AdminAddr string `env:"CADDY_ADMIN"`
}

// Auth holds the optional basic-auth credentials for the proxy.
type Auth struct {
	// Username for the basic-auth snippet. Defaults to "admin".
	// Env: AUTH_USERNAME
	Username string `env:"USERNAME"`

	// Password gates the auth snippet: when empty the snippet is written
	// explicitly permissive.
	// Env: AUTH_PASSWORD
	Password string `env:"PASSWORD"`
}

// TokenPath returns the location of the persisted gateway token file.
func (s *Settings) TokenPath() string {
	return filepath.Join(s.Paths.StateDir, "gateway.token")
}

// LockGlob returns the glob matching stale lock markers under the state
// directory. Locks surviving a restart are always stale and are removed
// unconditionally at the start of every boot.
func (s *Settings) LockGlob() string {
	return filepath.Join(s.Paths.StateDir, "*.lock")
}

// PortExplicit reports whether the gateway port came from explicit input
// (environment or flag) rather than the baked-in default.
func (s *Settings) PortExplicit() bool {
	if _, ok := s.Environ["OPENCLAW_GATEWAY_PORT"]; ok {
		return true
	}
	return s.Gateway.Port != DefaultGatewayPort
}

// EnvironSlice renders the captured environment snapshot back into
// os.Environ form, sorted by name, for handing to child processes and the
// final gateway exec.
func (s *Settings) EnvironSlice() []string {
	out := make([]string, 0, len(s.Environ))
	for k, v := range s.Environ {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// GetSettings loads, merges, and validates the bootstrap settings from all
// available sources in the following priority order (first non-zero value
// wins):
//  1. Environment variables
//  2. Command-line flags
//  3. Dotenv file (path resolved from sources 1 and 2)
//  4. Shipped defaults
//
// environ is the raw os.Environ() slice and args the command line without
// the program name. Both are captured here once; no other package reads
// ambient process state.
//
// Returns a fully populated *Settings or an error if any source fails to
// load or the final settings fail validation.
func GetSettings(environ []string, args []string) (*Settings, error) {
	return newSettingsBuilder(environ, args).
		withEnv().
		withFlags().
		withEnvFile().
		withDefaults().
		build()
}

// defaultSettings returns the values baked into the container image. They
// sit at the bottom of the merge stack and only fill fields no other source
// provided.
func defaultSettings() *Settings {
	return &Settings{
		Paths: Paths{
			StateDir:     "/data/.openclaw",
			WorkspaceDir: "/data/workspace",
			TemplatePath: "/app/config/openclaw.json",
			SnippetDir:   "/app/caddy.d",
		},
		Gateway: Gateway{
			Port:   DefaultGatewayPort,
			Binary: "openclaw",
		},
		Proxy: Proxy{
			Binary:     "caddy",
			ConfigFile: "/app/Caddyfile",
			AdminAddr:  "localhost:2019",
		},
		Auth: Auth{
			Username: "admin",
		},
	}
}
