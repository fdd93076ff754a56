package config

import "errors"

// Validation errors returned by [Settings.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidPaths indicates missing filesystem locations (for example,
	// an empty state directory or snippet directory).
	ErrInvalidPaths = errors.New("invalid path configuration")
	// ErrInvalidGateway indicates invalid gateway settings (for example, a
	// port outside the valid TCP range or an empty binary name).
	ErrInvalidGateway = errors.New("invalid gateway configuration")
	// ErrInvalidProxy indicates invalid proxy settings (for example, an
	// empty binary name or static configuration path).
	ErrInvalidProxy = errors.New("invalid proxy configuration")
	// ErrInvalidAuth indicates inconsistent basic-auth settings (a password
	// configured without a username to attach it to).
	ErrInvalidAuth = errors.New("invalid auth configuration")
)
