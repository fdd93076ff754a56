// SPDX-License-Identifier: Apache-2.0

package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "gateway.token")
}

func TestResolve_GeneratesAndPersists(t *testing.T) {
	path := tokenPath(t)

	got, err := Resolve("", path)

	require.NoError(t, err)
	assert.Len(t, got, tokenBytes*2, "hex rendering doubles the byte length")
	assert.Regexp(t, "^[0-9a-f]+$", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestResolve_Continuity(t *testing.T) {
	path := tokenPath(t)

	first, err := Resolve("", path)
	require.NoError(t, err)

	// Repeated resolutions without an override must return the same value.
	for range 3 {
		again, err := Resolve("", path)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolve_ExplicitOverrideWinsAndPersists(t *testing.T) {
	path := tokenPath(t)
	_, err := Resolve("", path)
	require.NoError(t, err)

	got, err := Resolve("  explicit-token  ", path)
	require.NoError(t, err)
	assert.Equal(t, "explicit-token", got)

	// The override survives a later boot without the override.
	again, err := Resolve("", path)
	require.NoError(t, err)
	assert.Equal(t, "explicit-token", again)
}

func TestResolve_TrimsPersistedContent(t *testing.T) {
	path := tokenPath(t)
	require.NoError(t, os.WriteFile(path, []byte("  padded-token\n\n"), 0o600))

	got, err := Resolve("", path)

	require.NoError(t, err)
	assert.Equal(t, "padded-token", got)
}

func TestResolve_EmptyFileRegenerates(t *testing.T) {
	path := tokenPath(t)
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	got, err := Resolve("", path)

	require.NoError(t, err)
	assert.Len(t, got, tokenBytes*2)
}

func TestResolve_CreatesMissingStateDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "nested", "gateway.token")

	_, err := Resolve("", path)

	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestResolve_PersistFailure(t *testing.T) {
	// The parent is a file, so creating the token directory must fail.
	parent := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	_, err := Resolve("", filepath.Join(parent, "sub", "gateway.token"))

	require.Error(t, err)
}
