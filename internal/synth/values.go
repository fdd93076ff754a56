// SPDX-License-Identifier: Apache-2.0

package synth

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// fieldKind is the declared type of a schema field. It controls how the
// raw environment string is coerced before landing in the document.
type fieldKind int

const (
	// kindString passes the raw value through unmodified.
	kindString fieldKind = iota
	// kindInt parses a base-10 integer; a non-numeric value is an error.
	kindInt
	// kindBoolTrue defaults to true: only the literal "false" turns it off.
	kindBoolTrue
	// kindBoolFalse defaults to false: only the literal "true" turns it on.
	kindBoolFalse
	// kindCSV splits on commas into a list of trimmed strings.
	kindCSV
	// kindCSVSmart splits on commas, keeping numeric entries as numbers
	// (Telegram user IDs) and everything else as strings.
	kindCSVSmart
)

// parseValue coerces a raw environment string according to the declared
// field kind. Numbers become float64 to match the shapes encoding/json
// produces when the document is read back.
func parseValue(raw string, kind fieldKind) (any, error) {
	switch kind {
	case kindString:
		return raw, nil
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("expected integer, got %q: %w", raw, err)
		}
		return float64(n), nil
	case kindBoolTrue:
		return !strings.EqualFold(raw, "false"), nil
	case kindBoolFalse:
		return strings.EqualFold(raw, "true"), nil
	case kindCSV:
		var out []any
		for s := range strings.SplitSeq(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	case kindCSVSmart:
		var out []any
		for s := range strings.SplitSeq(raw, ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			} else if n, err := strconv.Atoi(s); err == nil {
				out = append(out, float64(n))
			} else {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return raw, nil
	}
}

// autoType infers a value's type from its string form for convention
// bindings, in fixed precedence: boolean literal, numeral, structured JSON
// literal, plain string.
func autoType(raw string) any {
	lower := strings.ToLower(raw)
	if lower == "true" || lower == "false" {
		return lower == "true"
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		// NaN and infinities are not representable in the JSON document;
		// keep their string form.
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		return raw
	}

	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		var structured any
		if err := json.Unmarshal([]byte(raw), &structured); err == nil {
			return structured
		}
	}

	return raw
}
