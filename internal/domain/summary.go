package domain

// SkippedRecord describes a record that was dropped during an import.
type SkippedRecord struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"` // "case" or "result"
	Reason   string `json:"reason"`
	Reviewed bool   `json:"reviewed,omitempty"` // set from the skips viewer
}

// ImportSummary is the outcome of one import invocation.
type ImportSummary struct {
	Filename  string          `json:"filename"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	RunID     int64           `json:"run_id,omitempty"`
	Imported  int             `json:"imported"`
	Skipped   []SkippedRecord `json:"skipped,omitempty"`
	Timestamp string          `json:"timestamp"`
}
