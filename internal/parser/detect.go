package parser

// Format identifies which input dialect a decoded document is in.
type Format int

const (
	FormatUnrecognized Format = iota
	FormatStandardBundle
	FormatResultsOnly
	FormatHbbTVBatch
	FormatHbbTVSingle
)

// String returns the format name for log output.
func (f Format) String() string {
	switch f {
	case FormatStandardBundle:
		return "standard bundle"
	case FormatResultsOnly:
		return "results-only bundle"
	case FormatHbbTVBatch:
		return "HbbTV batch"
	case FormatHbbTVSingle:
		return "HbbTV single report"
	default:
		return "unrecognized"
	}
}

// Detect classifies a decoded JSON document. Rules are checked in priority
// order: a mapping with both test_cases and test_case_results is a standard
// bundle; test_case_results alone is a results-only bundle; a non-empty
// sequence whose first few elements carry test_case_id and state is an HbbTV
// batch; a mapping with those two keys is a single HbbTV report. Detect
// never modifies its input.
func Detect(doc any) Format {
	switch v := doc.(type) {
	case map[string]any:
		_, hasCases := v["test_cases"]
		_, hasResults := v["test_case_results"]
		if hasCases && hasResults {
			return FormatStandardBundle
		}
		if hasResults {
			return FormatResultsOnly
		}
		if hasHbbTVKeys(v) {
			return FormatHbbTVSingle
		}
	case []any:
		if len(v) == 0 {
			return FormatUnrecognized
		}
		probe := v
		if len(probe) > 5 {
			probe = probe[:5]
		}
		for _, item := range probe {
			if m, ok := item.(map[string]any); ok && hasHbbTVKeys(m) {
				return FormatHbbTVBatch
			}
		}
	}
	return FormatUnrecognized
}

func hasHbbTVKeys(m map[string]any) bool {
	if _, ok := m["test_case_id"]; !ok {
		return false
	}
	_, ok := m["state"]
	return ok
}
