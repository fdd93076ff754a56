// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
)

// Load reads and decodes the document at path.
//
// A missing file surfaces as an error satisfying errors.Is(err,
// os.ErrNotExist) so callers can distinguish first boot from corruption. A
// file that exists but does not decode is returned as a decode error: the
// boot sequence treats that as fatal rather than silently discarding the
// persisted document.
func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", path, err)
	}

	return doc, nil
}

// Save writes doc to path with owner-only permissions using a
// write-temp-then-rename sequence, so an interrupted boot never leaves a
// truncated document behind.
func Save(path string, doc Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	raw = append(raw, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp document in %s: %w", dir, err)
	}

	// Clean up the temp file on any failure past this point.
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting document permissions: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing document: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming document into place: %w", err)
	}
	return nil
}

// Merge deep-merges src into dst: objects are merged recursively, while
// scalars and sequences from src replace whatever dst held at the same key.
func Merge(dst Document, src Document) (Document, error) {
	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merging documents: %w", err)
	}
	return dst, nil
}

// Clone returns a deep copy of doc. The synthesizer works on a copy so a
// failed run never leaves the caller's document half-modified.
func Clone(doc Document) Document {
	if doc == nil {
		return Document{}
	}
	return cloneValue(doc).(map[string]any)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
