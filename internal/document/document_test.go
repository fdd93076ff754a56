// SPDX-License-Identifier: Apache-2.0

package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPath_CreatesIntermediateObjects(t *testing.T) {
	doc := Document{}

	SetPath(doc, "agents.defaults.maxConcurrent", float64(10))

	want := Document{
		"agents": map[string]any{
			"defaults": map[string]any{
				"maxConcurrent": float64(10),
			},
		},
	}
	assert.Equal(t, want, doc)
}

func TestSetPath_OverwritesConflictingScalar(t *testing.T) {
	// A binding targeting a.b.c while a.b holds a string must replace
	// the string with an object, last writer wins.
	doc := Document{"a": map[string]any{"b": "scalar"}}

	SetPath(doc, "a.b.c", true)

	assert.Equal(t, true, GetPath(doc, "a.b.c"))
}

func TestSetPath_ReplacesLeaf(t *testing.T) {
	doc := Document{}
	SetPath(doc, "hooks.path", "/hooks")

	SetPath(doc, "hooks.path", "/webhooks")

	assert.Equal(t, "/webhooks", GetString(doc, "hooks.path", ""))
}

func TestGetPath(t *testing.T) {
	doc := Document{
		"gateway": map[string]any{
			"port": float64(18789),
			"auth": map[string]any{"mode": "token"},
		},
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{name: "nested leaf", path: "gateway.auth.mode", want: "token"},
		{name: "intermediate object", path: "gateway.auth", want: map[string]any{"mode": "token"}},
		{name: "missing leaf", path: "gateway.auth.token", want: nil},
		{name: "missing root", path: "nothing.here", want: nil},
		{name: "walk through scalar", path: "gateway.port.x", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPath(doc, tt.path))
		})
	}
}

func TestGetStringAndGetBool(t *testing.T) {
	doc := Document{
		"hooks": map[string]any{"enabled": true, "path": "/hooks"},
	}

	assert.Equal(t, "/hooks", GetString(doc, "hooks.path", "/fallback"))
	assert.Equal(t, "/fallback", GetString(doc, "hooks.missing", "/fallback"))
	assert.True(t, GetBool(doc, "hooks.enabled"))
	assert.False(t, GetBool(doc, "hooks.missing"))
	assert.False(t, GetBool(doc, "hooks.path"), "non-bool reads as false")
}

func TestEnsure(t *testing.T) {
	doc := Document{"models": "not-an-object"}

	inner := Ensure(doc, "models", "providers")
	inner["ollama"] = map[string]any{"api": "openai-completions"}

	assert.NotNil(t, GetPath(doc, "models.providers.ollama"))
}

func TestDeletePath(t *testing.T) {
	doc := Document{
		"models": map[string]any{
			"providers": map[string]any{"stale": map[string]any{}},
		},
	}

	DeletePath(doc, "models.providers.stale")
	DeletePath(doc, "models.providers.missing")
	DeletePath(doc, "nothing.at.all")

	assert.Nil(t, GetPath(doc, "models.providers.stale"))
}

func TestMerge_PreservesUntouchedKeys(t *testing.T) {
	dst := Document{
		"keep":    "me",
		"gateway": map[string]any{"port": float64(18789), "mode": "local"},
	}
	src := Document{
		"gateway": map[string]any{"port": float64(9000)},
	}

	merged, err := Merge(dst, src)

	require.NoError(t, err)
	assert.Equal(t, "me", merged["keep"])
	assert.Equal(t, float64(9000), GetPath(merged, "gateway.port"))
	assert.Equal(t, "local", GetPath(merged, "gateway.mode"), "sibling key survives")
}

func TestMerge_ReplacesSequences(t *testing.T) {
	dst := Document{"list": []any{"a", "b"}}
	src := Document{"list": []any{"c"}}

	merged, err := Merge(dst, src)

	require.NoError(t, err)
	assert.Equal(t, []any{"c"}, merged["list"], "sequences are replaced, not unioned")
}

func TestClone_Independent(t *testing.T) {
	orig := Document{
		"nested": map[string]any{"list": []any{float64(1)}},
	}

	cp := Clone(orig)
	SetPath(cp, "nested.extra", "added")

	assert.Nil(t, GetPath(orig, "nested.extra"))
	assert.Equal(t, "added", GetPath(cp, "nested.extra"))
}

func TestClone_Nil(t *testing.T) {
	cp := Clone(nil)

	require.NotNil(t, cp)
	assert.Empty(t, cp)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openclaw.json")
	doc := Document{
		"gateway": map[string]any{"port": float64(18789)},
		"flag":    true,
	}

	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openclaw.json")

	require.NoError(t, Save(path, Document{"a": "b"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "openclaw.json", entries[0].Name())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o600))

	_, err := Load(path)

	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestSave_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	doc := Document{
		"z": "last", "a": "first",
		"nested": map[string]any{"x": float64(1), "b": false},
	}

	require.NoError(t, Save(a, doc))
	require.NoError(t, Save(b, doc))

	rawA, err := os.ReadFile(a)
	require.NoError(t, err)
	rawB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, rawA, rawB, "identical documents serialize byte-identically")
}
