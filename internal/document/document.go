// SPDX-License-Identifier: Apache-2.0

// Package document implements the persisted configuration document: a JSON
// tree of string keys addressed by dot-separated paths.
//
// The document is the hand-off format between the bootstrap and the gateway
// application. The synthesizer builds it from the shipped template, the
// previously persisted file, and environment input; the gateway consumes it
// at startup. Values are the usual encoding/json shapes: string, float64,
// bool, map[string]any, []any and nil.
package document

import (
	"strings"
)

// Document is the in-memory form of the configuration document.
type Document = map[string]any

// SetPath sets value at the dot-separated path, creating intermediate
// objects for any missing segment. A non-object node sitting in the middle
// of the path is overwritten with a fresh object: last writer wins, no
// error.
func SetPath(doc Document, dotpath string, value any) {
	keys := strings.Split(dotpath, ".")
	cur := doc
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[k] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = value
}

// GetPath returns the value at the dot-separated path, or nil when any
// segment is missing or a non-object node blocks the walk.
func GetPath(doc Document, dotpath string) any {
	var cur any = doc
	for _, k := range strings.Split(dotpath, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = obj[k]
		if !ok {
			return nil
		}
	}
	return cur
}

// GetString returns the string at path, or fallback when the path is
// missing or holds a non-string value.
func GetString(doc Document, dotpath, fallback string) string {
	if s, ok := GetPath(doc, dotpath).(string); ok {
		return s
	}
	return fallback
}

// GetBool returns the boolean at path, or false when the path is missing
// or holds a non-boolean value.
func GetBool(doc Document, dotpath string) bool {
	b, _ := GetPath(doc, dotpath).(bool)
	return b
}

// Ensure walks keys from the document root, creating missing intermediate
// objects (and replacing non-object nodes), and returns the innermost
// object.
func Ensure(doc Document, keys ...string) map[string]any {
	cur := doc
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[k] = next
		}
		cur = next
	}
	return cur
}

// DeletePath removes the value at the dot-separated path. Missing paths are
// a no-op.
func DeletePath(doc Document, dotpath string) {
	keys := strings.Split(dotpath, ".")
	cur := doc
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, keys[len(keys)-1])
}
