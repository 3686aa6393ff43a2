package parser

import (
	"fmt"
	"strconv"
	"strings"

	"tmi/internal/domain"
)

// Normalize maps a strictly decoded JSON document into the canonical
// payload. The dialect is detected internally; source is the original file
// name, used only for synthesized run names. Normalize performs no
// persistence and is deterministic: identical input yields an identical
// payload.
func Normalize(doc any, source string) domain.Payload {
	switch Detect(doc) {
	case FormatStandardBundle:
		return normalizeBundle(doc.(map[string]any), domain.RunMeta{})
	case FormatResultsOnly:
		return normalizeBundle(doc.(map[string]any), domain.RunMeta{Name: "Import: " + source})
	case FormatHbbTVBatch:
		return normalizeHbbTVBatch(doc.([]any), source)
	case FormatHbbTVSingle:
		return normalizeHbbTVSingle(doc.(map[string]any))
	}

	// Unrecognized input passes through: a mapping may still carry results
	// under a legacy key, a sequence is treated as opaque row records.
	switch v := doc.(type) {
	case map[string]any:
		return normalizeBundle(v, domain.RunMeta{})
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
		return NormalizeRows(rows, source)
	}
	return domain.Payload{}
}

// NormalizeObjects maps a salvage list from the recovery scanner. When the
// list classifies as an HbbTV batch it gets the full HbbTV treatment,
// otherwise the objects are opaque rows.
func NormalizeObjects(objects []map[string]any, source string) domain.Payload {
	if SalvagedFormat(objects) == FormatHbbTVBatch {
		items := make([]any, len(objects))
		for i, obj := range objects {
			items[i] = obj
		}
		return normalizeHbbTVBatch(items, source)
	}
	return NormalizeRows(objects, source)
}

// NormalizeRows maps opaque row records (spreadsheet rows keyed by column
// header, or salvaged objects of no known dialect). The case identifier is
// read from test_case_id, falling back to a generic id column; numeric
// identifiers are coerced to their string form.
func NormalizeRows(rows []map[string]any, source string) domain.Payload {
	p := domain.Payload{}
	for _, row := range rows {
		p.Results = append(p.Results, domain.ResultDef{
			CaseID:    firstString(row, "test_case_id", "id"),
			Title:     firstString(row, "title"),
			SuiteName: firstString(row, "test_suite"),
			Result:    stringOr(row, "result", "Unknown"),
			Logs:      firstString(row, "logs"),
			Comment:   firstString(row, "comment"),
			Artifacts: firstString(row, "artifacts"),
		})
	}
	return p
}

// normalizeBundle handles the standard and results-only bundles. fallback
// supplies run metadata for documents that carry none.
func normalizeBundle(doc map[string]any, fallback domain.RunMeta) domain.Payload {
	p := domain.Payload{Run: fallback}

	if runMeta, ok := doc["test_run"].(map[string]any); ok {
		p.Run = domain.RunMeta{
			Name: firstString(runMeta, "name"),
			Date: firstString(runMeta, "date"),
		}
	}

	for _, item := range sequence(doc, "test_cases") {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p.Cases = append(p.Cases, domain.CaseDef{
			CaseID:         firstString(m, "case_id"),
			Title:          firstString(m, "title"),
			Version:        intOr(m, "version", 0),
			VersionString:  firstString(m, "version_string"),
			Description:    firstString(m, "description"),
			Area:           firstString(m, "area"),
			Automatability: firstString(m, "automatability"),
			// Suite references in case definitions historically arrived
			// under test_suite_id; test_suite is the newer spelling.
			SuiteName: firstString(m, "test_suite_id", "test_suite"),
		})
	}

	for _, item := range sequence(doc, "test_case_results", "test_results") {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p.Results = append(p.Results, domain.ResultDef{
			CaseID:    firstString(m, "test_case_id"),
			Title:     firstString(m, "title"),
			SuiteName: firstString(m, "test_suite"),
			Result:    stringOr(m, "result", "Unknown"),
			Logs:      firstString(m, "logs"),
			Comment:   firstString(m, "comment"),
			Artifacts: firstString(m, "artifacts"),
		})
	}

	return p
}

func normalizeHbbTVBatch(items []any, source string) domain.Payload {
	p := domain.Payload{Run: domain.RunMeta{Name: "HbbTV Import: " + source}}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["test_case_id"]; !ok {
			continue
		}
		p.Results = append(p.Results, hbbTVResult(m))
	}
	return p
}

func normalizeHbbTVSingle(m map[string]any) domain.Payload {
	p := domain.Payload{
		Run: domain.RunMeta{
			Name: "HbbTV Single Test: " + stringOr(m, "title", "Unknown"),
			Date: datePart(firstString(m, "created")),
		},
		Results: []domain.ResultDef{hbbTVResult(m)},
	}
	return p
}

// hbbTVResult maps one HbbTV report to a result record. Successful/Failed
// become Pass/Fail, any other state string passes through verbatim.
func hbbTVResult(m map[string]any) domain.ResultDef {
	state := stringOr(m, "state", "Unknown")
	result := state
	switch state {
	case "Successful":
		result = "Pass"
	case "Failed":
		result = "Fail"
	}

	caseID := firstString(m, "test_case_id")
	return domain.ResultDef{
		CaseID:  caseID,
		Title:   stringOr(m, "title", "Test "+caseID),
		Result:  result,
		Comment: fmt.Sprintf("Test run ID: %s", stringOr(m, "test_run_id", "Unknown")),
		Logs: fmt.Sprintf("Created: %s, Last changed: %s",
			stringOr(m, "created", "Unknown"), stringOr(m, "last_changed", "Unknown")),
		Artifacts: nestedString(m, "steps", "collectionUrl"),
	}
}

// datePart returns the date portion of an ISO timestamp (before the first
// 'T'), or empty when there is no timestamp.
func datePart(created string) string {
	if created == "" {
		return ""
	}
	if i := strings.IndexByte(created, 'T'); i >= 0 {
		return created[:i]
	}
	return created
}

// sequence returns the first sequence found under the named keys, checked
// in order.
func sequence(m map[string]any, keys ...string) []any {
	for _, k := range keys {
		if seq, ok := m[k].([]any); ok {
			return seq
		}
	}
	return nil
}

// firstString evaluates an ordered list of named fallbacks and returns the
// first non-empty value in string form.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// stringOr is firstString over a single key with an explicit default.
func stringOr(m map[string]any, key, fallback string) string {
	if s := firstString(m, key); s != "" {
		return s
	}
	return fallback
}

func intOr(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// nestedString reads sub from a nested mapping under key. A non-mapping
// value under key yields empty, never an error.
func nestedString(m map[string]any, key, sub string) string {
	if inner, ok := m[key].(map[string]any); ok {
		return asString(inner[sub])
	}
	return ""
}

// asString coerces the JSON scalar forms to a string identity. Numbers drop
// a trailing ".0" so spreadsheet ids compare equal to their JSON spelling.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
