// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [Settings] satisfy all bootstrap
// invariants before any step runs.
//
// Returns nil if the settings are valid, or one of the sentinel errors from
// errors.go otherwise.
func (s *Settings) validate() error {
	if s.Paths.StateDir == "" || s.Paths.WorkspaceDir == "" || s.Paths.SnippetDir == "" || s.Paths.ConfigPath == "" {
		return ErrInvalidPaths
	}

	if s.Gateway.Port < 1 || s.Gateway.Port > 65535 || s.Gateway.Binary == "" {
		return ErrInvalidGateway
	}

	if s.Proxy.Binary == "" || s.Proxy.ConfigFile == "" {
		return ErrInvalidProxy
	}

	if s.Auth.Password != "" && s.Auth.Username == "" {
		return ErrInvalidAuth
	}

	return nil
}
