package parser

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoSalvage is returned when a malformed document yields no parseable
// objects at all. This is distinct from a valid document with zero results.
var ErrNoSalvage = errors.New("no valid JSON objects could be salvaged")

// Salvage scans text that failed strict JSON decoding and extracts every
// well-balanced brace span that parses on its own. Files with multiple
// concatenated or loosely separated objects are the usual case. Candidates
// that do not parse are dropped silently; dropping is the recovery path,
// not a failure.
func Salvage(text string) ([]map[string]any, error) {
	// Literal "\n" sequences show up in exports that double-escaped their
	// newlines; collapse them so they cannot split a candidate span.
	content := strings.TrimSpace(strings.ReplaceAll(text, `\n`, " "))

	var objects []map[string]any
	start := 0
	for start < len(content) {
		open := strings.IndexByte(content[start:], '{')
		if open == -1 {
			break
		}
		open += start

		// Walk forward counting brace depth until the span closes. No
		// recursion: depth counter plus start index only, so adversarial
		// nesting cannot grow the stack.
		depth := 1
		pos := open + 1
		for depth > 0 && pos < len(content) {
			switch content[pos] {
			case '{':
				depth++
			case '}':
				depth--
			}
			pos++
		}

		if depth == 0 {
			var obj map[string]any
			if err := json.Unmarshal([]byte(content[open:pos]), &obj); err == nil {
				objects = append(objects, obj)
			}
		}
		// pos is just past the matched close, or end-of-text when the last
		// span never closed; either way the scan resumes there.
		start = pos
	}

	if len(objects) == 0 {
		return nil, ErrNoSalvage
	}
	return objects, nil
}

// SalvagedFormat decides how a salvage list should be normalized: when every
// one of the first few objects looks like an HbbTV report the whole list is
// treated as an HbbTV batch, otherwise the objects pass through as opaque
// records.
func SalvagedFormat(objects []map[string]any) Format {
	if len(objects) == 0 {
		return FormatUnrecognized
	}
	probe := objects
	if len(probe) > 3 {
		probe = probe[:3]
	}
	for _, obj := range probe {
		if !hasHbbTVKeys(obj) {
			return FormatUnrecognized
		}
	}
	return FormatHbbTVBatch
}
