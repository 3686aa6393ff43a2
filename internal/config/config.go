package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DB holds database connection settings.
type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	SummaryFile string
	SummaryDir  string

	// Database settings
	DB DB

	// Actor the import is attributed to when no operator id is given
	OperatorLogin string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	OperatorID int64
	RunName    string
	DUTID      int64
	Limit      int
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath: DefaultProjectPath,
		SummaryFile: DefaultSummaryFile,
		SummaryDir:  DefaultSummaryDir,
		DB: DB{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		OperatorLogin: DefaultOperatorLogin,
		Flags:         Flags{Limit: DefaultRunLimit},
	}
}

// LoadEnv overlays settings from the environment, reading a .env file from
// the project directory first. A missing .env file is fine - plain
// environment variables still apply.
func (c *Config) LoadEnv() {
	_ = godotenv.Load(filepath.Join(c.ProjectPath, ".env"))

	c.DB.Host = envOr("DB_HOST", c.DB.Host)
	c.DB.Port = envOr("DB_PORT", c.DB.Port)
	c.DB.User = envOr("DB_USERNAME", c.DB.User)
	c.DB.Password = envOr("DB_PASSWORD", c.DB.Password)
	c.DB.Name = envOr("DB_DATABASE", c.DB.Name)
	c.OperatorLogin = envOr("TMI_OPERATOR", c.OperatorLogin)
}

// DSN returns the MySQL data source name for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// ServerDSN returns the data source name without a database, for bootstrap
// work that creates the database itself.
func (c *Config) ServerDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port)
}

// GetSummaryPath returns the full path to the import summary JSON file.
// Resolves to an absolute path so import and skips always read/write the
// same file regardless of cwd.
func (c *Config) GetSummaryPath() string {
	p := filepath.Join(c.ProjectPath, c.SummaryDir, c.SummaryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
