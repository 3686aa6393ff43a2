package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSummaryFile is the file the last import summary is written to
	DefaultSummaryFile = "import-summary.json"
	// DefaultSummaryDir is the directory for summary output
	DefaultSummaryDir = "storage"
	// DefaultRunLimit is how many runs the runs command lists
	DefaultRunLimit = 20

	// DefaultDBHost is the default database host
	DefaultDBHost = "127.0.0.1"
	// DefaultDBPort is the default database port
	DefaultDBPort = "3306"
	// DefaultDBUser is the default database user
	DefaultDBUser = "root"
	// DefaultDBName is the default database name
	DefaultDBName = "test_management"

	// DefaultOperatorLogin is the actor imports are attributed to when no
	// explicit operator id is given
	DefaultOperatorLogin = "admin"
)
