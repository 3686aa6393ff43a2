package ingest

import (
	"tmi/internal/domain"
	"tmi/internal/storage"
)

// SuiteFormat is the format tag placeholder suites are created with.
const SuiteFormat = "JSON"

// noSuite is the sentinel suite name meaning "no suite"; it must never
// trigger creation.
const noSuite = "default"

// Resolver provides create-or-find resolution for suites and cases within
// one import. Resolutions are cached per natural key, so resolving the same
// key twice reuses the first entity and never duplicates it. Not safe for
// concurrent use.
type Resolver struct {
	tx     storage.Tx
	suites map[string]int64
	cases  map[string]int64
}

// NewResolver creates a Resolver bound to one import's transaction.
func NewResolver(tx storage.Tx) *Resolver {
	return &Resolver{
		tx:     tx,
		suites: make(map[string]int64),
		cases:  make(map[string]int64),
	}
}

// ResolveSuite finds the suite by name, creating it with defaults when
// absent, and returns its id. An empty name or the "default" sentinel means
// "no suite" and returns nil without creating anything.
func (r *Resolver) ResolveSuite(name string) (*int64, error) {
	if name == "" || name == noSuite {
		return nil, nil
	}
	if id, ok := r.suites[name]; ok {
		return &id, nil
	}

	suite, err := r.tx.FindSuiteByName(name)
	if err != nil {
		return nil, err
	}
	if suite == nil {
		suite = &domain.TestSuite{
			Name:          name,
			Format:        SuiteFormat,
			Version:       1,
			VersionString: "1.0",
		}
		if err := r.tx.CreateSuite(suite); err != nil {
			return nil, err
		}
	}

	r.suites[name] = suite.ID
	id := suite.ID
	return &id, nil
}

// ResolveCase finds the case by its natural key, creating a placeholder
// when absent, and returns its id. The hint carries whatever fields the
// ingestion record had; absent ones get explicit defaults (synthetic title,
// version 1, version string "1.0"). A record without a natural key cannot
// be resolved: ResolveCase returns ok=false and the caller skips it.
func (r *Resolver) ResolveCase(caseID string, hint domain.CaseDef) (id int64, ok bool, err error) {
	if caseID == "" {
		return 0, false, nil
	}
	if id, ok := r.cases[caseID]; ok {
		return id, true, nil
	}

	tc, err := r.tx.FindCaseByCaseID(caseID)
	if err != nil {
		return 0, false, err
	}
	if tc == nil {
		suiteID, err := r.ResolveSuite(hint.SuiteName)
		if err != nil {
			return 0, false, err
		}

		title := hint.Title
		if title == "" {
			title = "Test Case " + caseID
		}
		version := hint.Version
		if version <= 0 {
			version = 1
		}
		versionString := hint.VersionString
		if versionString == "" {
			versionString = "1.0"
		}

		tc = &domain.TestCase{
			CaseID:         caseID,
			Title:          title,
			Version:        version,
			VersionString:  versionString,
			Description:    hint.Description,
			Area:           hint.Area,
			Automatability: hint.Automatability,
			SuiteID:        suiteID,
		}
		if err := r.tx.CreateCase(tc); err != nil {
			return 0, false, err
		}
	}

	r.cases[caseID] = tc.ID
	return tc.ID, true, nil
}
