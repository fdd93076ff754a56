// SPDX-License-Identifier: Apache-2.0

// Package token resolves the gateway bearer token.
//
// Exactly one authoritative token exists for the lifetime of a state
// directory: an explicit override always wins and is persisted, a persisted
// file is reused as-is, and only when neither exists is a fresh token
// generated. The token is never silently rotated; rotation would break
// every client session across a container restart.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// tokenBytes is the entropy of a generated token; rendered as hex the token
// is twice this many characters.
const tokenBytes = 32

// Resolve returns the authoritative gateway token.
//
// Source precedence:
//  1. explicit, when non-empty, persisted to path (overwriting prior
//     content) so later boots without an override recover the same value;
//  2. the trimmed content of the file at path, when it exists;
//  3. a freshly generated token from the OS CSPRNG, persisted to path.
//
// The file is written with owner-only permissions. Any persistence failure
// is returned as an error and must be treated as fatal by the caller: a
// token that only lives in memory would rotate on the next restart.
func Resolve(explicit string, path string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if err := persist(path, explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if existing := strings.TrimSpace(string(raw)); existing != "" {
			return existing, nil
		}
		// An empty file carries no token; fall through to generation.
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("reading token file %s: %w", path, err)
	}

	generated, err := generate()
	if err != nil {
		return "", err
	}
	if err := persist(path, generated); err != nil {
		return "", err
	}
	return generated, nil
}

func generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func persist(path, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(value+"\n"), 0o600); err != nil {
		return fmt.Errorf("persisting token to %s: %w", path, err)
	}
	return nil
}
