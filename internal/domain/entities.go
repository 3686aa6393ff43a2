package domain

// TestSuite groups test cases. Name is a soft key: lookups go by name, but
// uniqueness is not enforced at the storage level.
type TestSuite struct {
	ID            int64
	Name          string
	URL           string
	Format        string
	Version       int
	VersionString string
	IsFinal       bool
}

// TestCase is a single test definition. CaseID is the externally assigned
// natural key (e.g. "TC001"); ID is the storage surrogate.
type TestCase struct {
	ID                int64
	CaseID            string
	Title             string
	Version           int
	VersionString     string
	Description       string
	Steps             string
	Precondition      string
	Area              string
	Automatability    string
	Author            string
	Material          string
	IsChallenged      bool
	ChallengeIssueURL string
	AppliesTo         string
	SuiteID           *int64 // nil: the case belongs to no suite
}

// TestOperator is the actor a test run is attributed to.
type TestOperator struct {
	ID    int64
	Name  string
	Mail  string
	Login string
}

// DUT is a device under test. Runs may reference one; imports store the
// reference without resolving it.
type DUT struct {
	ID          int64
	ProductName string
	Make        string
	Model       string
	Countries   string
	Parent      string
}

// TestRun represents one ingestion event.
type TestRun struct {
	ID          int64
	Status      string
	Name        string
	Description string
	RunDate     string
	DUTID       *int64
	OperatorID  int64
}

// TestCaseResult links one test case to at most one run. Result is free
// text, stored verbatim ("Pass"/"Fail"/anything else).
type TestCaseResult struct {
	ID         int64
	TestRunID  int64
	TestCaseID int64
	Result     string
	Logs       string
	Comment    string
	Artifacts  string
}

// RunListing is the read-side view of a run for the runs command.
type RunListing struct {
	ID      int64
	Name    string
	Status  string
	RunDate string
	Results int
}
