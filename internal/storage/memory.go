package storage

import (
	"context"
	"sync"

	"tmi/internal/domain"
)

// MemoryStore is an in-memory Store. It backs the ingest tests and local
// dry runs; transaction staging mirrors the SQL store's semantics closely
// enough that the coordinator cannot tell them apart.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int64
	suites    []domain.TestSuite
	cases     []domain.TestCase
	operators []domain.TestOperator
	runs      []domain.TestRun
	results   []domain.TestCaseResult
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SeedOperator adds a committed operator row, bypassing any transaction.
func (s *MemoryStore) SeedOperator(name, mail, login string) domain.TestOperator {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := domain.TestOperator{ID: s.allocID(), Name: name, Mail: mail, Login: login}
	s.operators = append(s.operators, op)
	return op
}

// Begin starts a staged transaction. Writes stay local to the transaction
// until Commit.
func (s *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memTx{store: s}, nil
}

// ListRuns returns committed runs, newest first.
func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]domain.RunListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[int64]int)
	for _, r := range s.results {
		counts[r.TestRunID]++
	}

	var listings []domain.RunListing
	for i := len(s.runs) - 1; i >= 0 && len(listings) < limit; i-- {
		run := s.runs[i]
		listings = append(listings, domain.RunListing{
			ID:      run.ID,
			Name:    run.Name,
			Status:  run.Status,
			RunDate: run.RunDate,
			Results: counts[run.ID],
		})
	}
	return listings, nil
}

// Counts reports committed row counts (suites, cases, runs, results) for
// assertions in tests.
func (s *MemoryStore) Counts() (suites, cases, runs, results int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.suites), len(s.cases), len(s.runs), len(s.results)
}

// Suites returns a copy of the committed suites.
func (s *MemoryStore) Suites() []domain.TestSuite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TestSuite(nil), s.suites...)
}

// Cases returns a copy of the committed cases.
func (s *MemoryStore) Cases() []domain.TestCase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TestCase(nil), s.cases...)
}

// Results returns a copy of the committed results.
func (s *MemoryStore) Results() []domain.TestCaseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TestCaseResult(nil), s.results...)
}

// allocID hands out surrogate ids. Caller holds the lock. Ids burned by a
// rolled-back transaction are not reused, same as auto increment.
func (s *MemoryStore) allocID() int64 {
	s.nextID++
	return s.nextID
}

type memTx struct {
	store   *MemoryStore
	suites  []domain.TestSuite
	cases   []domain.TestCase
	runs    []domain.TestRun
	results []domain.TestCaseResult
}

func (t *memTx) FindSuiteByName(name string) (*domain.TestSuite, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.suites {
		if t.store.suites[i].Name == name {
			s := t.store.suites[i]
			return &s, nil
		}
	}
	for i := range t.suites {
		if t.suites[i].Name == name {
			s := t.suites[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (t *memTx) CreateSuite(s *domain.TestSuite) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	s.ID = t.store.allocID()
	t.suites = append(t.suites, *s)
	return nil
}

func (t *memTx) FindCaseByCaseID(caseID string) (*domain.TestCase, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.cases {
		if t.store.cases[i].CaseID == caseID {
			c := t.store.cases[i]
			return &c, nil
		}
	}
	for i := range t.cases {
		if t.cases[i].CaseID == caseID {
			c := t.cases[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (t *memTx) CreateCase(c *domain.TestCase) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	c.ID = t.store.allocID()
	t.cases = append(t.cases, *c)
	return nil
}

func (t *memTx) FindOperator(id int64) (*domain.TestOperator, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.operators {
		if t.store.operators[i].ID == id {
			op := t.store.operators[i]
			return &op, nil
		}
	}
	return nil, nil
}

func (t *memTx) FindOperatorByLogin(login string) (*domain.TestOperator, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := range t.store.operators {
		if t.store.operators[i].Login == login {
			op := t.store.operators[i]
			return &op, nil
		}
	}
	return nil, nil
}

func (t *memTx) CreateRun(r *domain.TestRun) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	r.ID = t.store.allocID()
	t.runs = append(t.runs, *r)
	return nil
}

func (t *memTx) CreateResult(r *domain.TestCaseResult) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	r.ID = t.store.allocID()
	t.results = append(t.results, *r)
	return nil
}

func (t *memTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.suites = append(t.store.suites, t.suites...)
	t.store.cases = append(t.store.cases, t.cases...)
	t.store.runs = append(t.store.runs, t.runs...)
	t.store.results = append(t.store.results, t.results...)
	t.clear()
	return nil
}

func (t *memTx) Rollback() error {
	t.clear()
	return nil
}

func (t *memTx) clear() {
	t.suites = nil
	t.cases = nil
	t.runs = nil
	t.results = nil
}
