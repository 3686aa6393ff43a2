package storage

import (
	"context"

	"tmi/internal/domain"
)

// Store opens transactional sessions against the backing database and
// serves the read side of the runs listing.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
	ListRuns(ctx context.Context, limit int) ([]domain.RunListing, error)
}

// Tx is one import invocation's unit of work. Writes made through a Tx
// become visible only after Commit; Rollback discards everything written
// since Begin. Find methods return (nil, nil) when no row matches.
//
// A Tx is not safe for concurrent use; records for one import are processed
// strictly in sequence.
type Tx interface {
	FindSuiteByName(name string) (*domain.TestSuite, error)
	CreateSuite(s *domain.TestSuite) error

	FindCaseByCaseID(caseID string) (*domain.TestCase, error)
	CreateCase(c *domain.TestCase) error

	FindOperator(id int64) (*domain.TestOperator, error)
	FindOperatorByLogin(login string) (*domain.TestOperator, error)

	CreateRun(r *domain.TestRun) error
	CreateResult(r *domain.TestCaseResult) error

	Commit() error
	Rollback() error
}

// SummaryStorage persists import summaries (e.g. for the skips viewer).
type SummaryStorage interface {
	Save(summaries []domain.ImportSummary) error
	Load() ([]domain.ImportSummary, error)
}
