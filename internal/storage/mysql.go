package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"tmi/internal/config"
	"tmi/internal/domain"
)

// MySQLStore implements Store on a database/sql connection pool.
type MySQLStore struct {
	db *sql.DB
}

// Open connects to the configured MySQL database and verifies the
// connection.
func Open(cfg *config.Config) (*MySQLStore, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

// Close releases the connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Begin starts one import's transaction.
func (s *MySQLStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &mysqlTx{tx: tx}, nil
}

// ListRuns returns the most recent runs with their result counts.
func (s *MySQLStore) ListRuns(ctx context.Context, limit int) ([]domain.RunListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.status, r.run_date, COUNT(res.id)
		FROM test_runs r
		LEFT JOIN test_case_results res ON res.test_run_id = r.id
		GROUP BY r.id, r.name, r.status, r.run_date
		ORDER BY r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var listings []domain.RunListing
	for rows.Next() {
		var l domain.RunListing
		var name, runDate sql.NullString
		if err := rows.Scan(&l.ID, &name, &l.Status, &runDate, &l.Results); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		l.Name = name.String
		l.RunDate = runDate.String
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

type mysqlTx struct {
	tx *sql.Tx
}

func (t *mysqlTx) FindSuiteByName(name string) (*domain.TestSuite, error) {
	var s domain.TestSuite
	var url sql.NullString
	err := t.tx.QueryRow(`
		SELECT id, name, url, format, version, version_string, is_final
		FROM test_suites WHERE name = ? LIMIT 1`, name).
		Scan(&s.ID, &s.Name, &url, &s.Format, &s.Version, &s.VersionString, &s.IsFinal)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find suite %q: %w", name, err)
	}
	s.URL = url.String
	return &s, nil
}

func (t *mysqlTx) CreateSuite(s *domain.TestSuite) error {
	res, err := t.tx.Exec(`
		INSERT INTO test_suites (name, url, format, version, version_string, is_final)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.Name, nullString(s.URL), s.Format, s.Version, s.VersionString, s.IsFinal)
	if err != nil {
		return fmt.Errorf("create suite %q: %w", s.Name, err)
	}
	s.ID, err = res.LastInsertId()
	return err
}

func (t *mysqlTx) FindCaseByCaseID(caseID string) (*domain.TestCase, error) {
	var c domain.TestCase
	var desc, steps, precond, area, autom, author, material, challengeURL, appliesTo sql.NullString
	var suiteID sql.NullInt64
	err := t.tx.QueryRow(`
		SELECT id, case_id, title, version, version_string, description, steps,
		       precondition, area, automatability, author, material,
		       is_challenged, challenge_issue_url, applies_to, test_suite_id
		FROM test_cases WHERE case_id = ? LIMIT 1`, caseID).
		Scan(&c.ID, &c.CaseID, &c.Title, &c.Version, &c.VersionString, &desc, &steps,
			&precond, &area, &autom, &author, &material,
			&c.IsChallenged, &challengeURL, &appliesTo, &suiteID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find case %q: %w", caseID, err)
	}
	c.Description = desc.String
	c.Steps = steps.String
	c.Precondition = precond.String
	c.Area = area.String
	c.Automatability = autom.String
	c.Author = author.String
	c.Material = material.String
	c.ChallengeIssueURL = challengeURL.String
	c.AppliesTo = appliesTo.String
	if suiteID.Valid {
		id := suiteID.Int64
		c.SuiteID = &id
	}
	return &c, nil
}

func (t *mysqlTx) CreateCase(c *domain.TestCase) error {
	res, err := t.tx.Exec(`
		INSERT INTO test_cases (case_id, title, version, version_string, description,
		       steps, precondition, area, automatability, author, material,
		       is_challenged, challenge_issue_url, applies_to, test_suite_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CaseID, c.Title, c.Version, c.VersionString, nullString(c.Description),
		nullString(c.Steps), nullString(c.Precondition), nullString(c.Area),
		nullString(c.Automatability), nullString(c.Author), nullString(c.Material),
		c.IsChallenged, nullString(c.ChallengeIssueURL), nullString(c.AppliesTo),
		nullInt(c.SuiteID))
	if err != nil {
		return fmt.Errorf("create case %q: %w", c.CaseID, err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (t *mysqlTx) FindOperator(id int64) (*domain.TestOperator, error) {
	var op domain.TestOperator
	err := t.tx.QueryRow(`
		SELECT id, name, mail, login FROM test_operators WHERE id = ?`, id).
		Scan(&op.ID, &op.Name, &op.Mail, &op.Login)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find operator %d: %w", id, err)
	}
	return &op, nil
}

func (t *mysqlTx) FindOperatorByLogin(login string) (*domain.TestOperator, error) {
	var op domain.TestOperator
	err := t.tx.QueryRow(`
		SELECT id, name, mail, login FROM test_operators WHERE login = ? LIMIT 1`, login).
		Scan(&op.ID, &op.Name, &op.Mail, &op.Login)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find operator %q: %w", login, err)
	}
	return &op, nil
}

func (t *mysqlTx) CreateRun(r *domain.TestRun) error {
	res, err := t.tx.Exec(`
		INSERT INTO test_runs (status, name, description, run_date, dut_id, operator_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.Status, nullString(r.Name), nullString(r.Description), nullString(r.RunDate),
		nullInt(r.DUTID), r.OperatorID)
	if err != nil {
		return fmt.Errorf("create test run: %w", err)
	}
	r.ID, err = res.LastInsertId()
	return err
}

func (t *mysqlTx) CreateResult(r *domain.TestCaseResult) error {
	res, err := t.tx.Exec(`
		INSERT INTO test_case_results (test_run_id, test_case_id, result, logs, comment, artifacts)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.TestRunID, r.TestCaseID, r.Result, nullString(r.Logs),
		nullString(r.Comment), nullString(r.Artifacts))
	if err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	r.ID, err = res.LastInsertId()
	return err
}

func (t *mysqlTx) Commit() error {
	return t.tx.Commit()
}

func (t *mysqlTx) Rollback() error {
	return t.tx.Rollback()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
