// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the given environment snapshot using the
// caarlos0/env library. Struct fields are mapped via their `env` and
// `envPrefix` tags defined on [Settings] and its nested types.
//
// Parsing from the snapshot instead of the live environment keeps the
// one-snapshot rule honest: everything the bootstrap reads comes from the
// same captured map.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg *Settings, environ map[string]string) error {
	err := env.ParseWithOptions(cfg, env.Options{Environment: environ})
	if err != nil {
		return fmt.Errorf("error getting env settings: %w", err)
	}

	return nil
}

// Snapshot converts an os.Environ-shaped slice into a name → value map.
// Malformed entries without "=" are skipped.
func Snapshot(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		out[name] = value
	}
	return out
}
