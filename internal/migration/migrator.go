package migration

import (
	"database/sql"
	"fmt"

	"tmi/internal/config"
)

// Migrator prepares the backing database schema
type Migrator interface {
	Run() error
}

// SchemaMigrator creates the database and applies the table DDL. The soft
// keys (test_suites.name, test_cases.case_id) get plain indexes, not UNIQUE
// constraints: concurrent imports referencing the same new name may race
// and both create it, which the import pipeline tolerates.
type SchemaMigrator struct {
	config    *config.Config
	dbManager *DatabaseManager
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{config: cfg, dbManager: dbManager}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS test_suites (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		url VARCHAR(512) NULL,
		format VARCHAR(32) NOT NULL,
		version INT NOT NULL,
		version_string VARCHAR(32) NOT NULL,
		is_final BOOLEAN NOT NULL DEFAULT FALSE,
		KEY idx_test_suites_name (name)
	)`,
	`CREATE TABLE IF NOT EXISTS test_cases (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		case_id VARCHAR(255) NOT NULL,
		title VARCHAR(512) NOT NULL,
		version INT NOT NULL,
		version_string VARCHAR(32) NOT NULL,
		description TEXT NULL,
		steps TEXT NULL,
		precondition TEXT NULL,
		area VARCHAR(255) NULL,
		automatability VARCHAR(255) NULL,
		author VARCHAR(255) NULL,
		material TEXT NULL,
		is_challenged BOOLEAN NOT NULL DEFAULT FALSE,
		challenge_issue_url VARCHAR(512) NULL,
		applies_to VARCHAR(255) NULL,
		test_suite_id BIGINT NULL,
		KEY idx_test_cases_case_id (case_id),
		CONSTRAINT fk_test_cases_suite FOREIGN KEY (test_suite_id) REFERENCES test_suites (id)
	)`,
	`CREATE TABLE IF NOT EXISTS test_operators (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		mail VARCHAR(255) NOT NULL,
		login VARCHAR(255) NOT NULL,
		KEY idx_test_operators_login (login)
	)`,
	`CREATE TABLE IF NOT EXISTS duts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		make VARCHAR(255) NOT NULL,
		model VARCHAR(255) NOT NULL,
		countries VARCHAR(255) NULL,
		parent VARCHAR(255) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_runs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		status VARCHAR(64) NOT NULL,
		name VARCHAR(512) NULL,
		description TEXT NULL,
		run_date VARCHAR(64) NULL,
		dut_id BIGINT NULL,
		operator_id BIGINT NULL,
		CONSTRAINT fk_test_runs_operator FOREIGN KEY (operator_id) REFERENCES test_operators (id)
	)`,
	`CREATE TABLE IF NOT EXISTS test_case_results (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		test_run_id BIGINT NULL,
		test_case_id BIGINT NOT NULL,
		result VARCHAR(255) NOT NULL,
		logs TEXT NULL,
		comment TEXT NULL,
		artifacts TEXT NULL,
		CONSTRAINT fk_results_run FOREIGN KEY (test_run_id) REFERENCES test_runs (id),
		CONSTRAINT fk_results_case FOREIGN KEY (test_case_id) REFERENCES test_cases (id)
	)`,
}

// Run creates the database if needed, applies the schema and seeds the
// default operator so first imports have an actor to attribute runs to.
func (m *SchemaMigrator) Run() error {
	if err := m.dbManager.EnsureDatabase(); err != nil {
		return err
	}

	db, err := sql.Open("mysql", m.config.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return m.seedDefaultOperator(db)
}

func (m *SchemaMigrator) seedDefaultOperator(db *sql.DB) error {
	login := m.config.OperatorLogin
	var count int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM test_operators WHERE login = ?", login).Scan(&count); err != nil {
		return fmt.Errorf("check default operator: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := db.Exec(
		"INSERT INTO test_operators (name, mail, login) VALUES (?, ?, ?)",
		"Administrator", login+"@localhost", login)
	if err != nil {
		return fmt.Errorf("seed default operator: %w", err)
	}
	return nil
}
