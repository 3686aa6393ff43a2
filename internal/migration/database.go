package migration

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"tmi/internal/config"
)

// DatabaseManager bootstraps the backing database.
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// EnsureDatabase checks that the configured database exists and creates it
// when it does not.
func (dm *DatabaseManager) EnsureDatabase() error {
	// Connect to the MySQL server without selecting a database.
	db, err := sql.Open("mysql", dm.config.ServerDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	name := dm.config.DB.Name
	exists, err := dm.databaseExists(db, name)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if !exists {
		if err := dm.createDatabase(db, name); err != nil {
			return fmt.Errorf("failed to create database %s: %w", name, err)
		}
	}
	return nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (dm *DatabaseManager) createDatabase(db *sql.DB, dbName string) error {
	// Sanitize database name to prevent SQL injection
	if !dm.isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.Exec(query)
	return err
}

// isValidDatabaseName validates database name (basic check)
func (dm *DatabaseManager) isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalidChars := []string{"'", "\"", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, char := range invalidChars {
		if strings.Contains(upperName, char) {
			return false
		}
	}
	return true
}
