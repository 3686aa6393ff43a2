package domain

// RunMeta is the run-level metadata carried by a normalized document.
// Name and Date may be empty; the coordinator applies defaults.
type RunMeta struct {
	Name string
	Date string
}

// CaseDef is a test-case definition from an ingestion document. Absent
// fields are zero values; the resolver fills in explicit defaults when it
// creates a placeholder case.
type CaseDef struct {
	CaseID         string
	Title          string
	Version        int
	VersionString  string
	Description    string
	Area           string
	Automatability string
	SuiteName      string
}

// ResultDef is one normalized result record.
type ResultDef struct {
	CaseID    string
	Title     string
	SuiteName string
	Result    string
	Logs      string
	Comment   string
	Artifacts string
}

// Payload is the canonical structure every input dialect is mapped to.
type Payload struct {
	Run     RunMeta
	Cases   []CaseDef
	Results []ResultDef
}
