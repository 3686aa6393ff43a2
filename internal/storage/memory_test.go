package storage

import (
	"context"
	"testing"

	"tmi/internal/domain"
)

func TestMemoryStore_TransactionStaging(t *testing.T) {
	t.Run("writes invisible until commit", func(t *testing.T) {
		store := NewMemoryStore()
		tx, err := store.Begin(context.Background())
		if err != nil {
			t.Fatalf("begin: %v", err)
		}

		if err := tx.CreateSuite(&domain.TestSuite{Name: "Smoke", Format: "JSON", Version: 1, VersionString: "1.0"}); err != nil {
			t.Fatalf("create suite: %v", err)
		}

		if suites := store.Suites(); len(suites) != 0 {
			t.Errorf("uncommitted suite already visible: %+v", suites)
		}

		if err := tx.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
		if suites := store.Suites(); len(suites) != 1 {
			t.Errorf("expected 1 suite after commit, got %d", len(suites))
		}
	})

	t.Run("rollback discards everything", func(t *testing.T) {
		store := NewMemoryStore()
		op := store.SeedOperator("Admin", "a@b", "admin")

		tx, _ := store.Begin(context.Background())
		run := &domain.TestRun{Status: "Completed", Name: "doomed", OperatorID: op.ID}
		tx.CreateRun(run)
		tx.CreateResult(&domain.TestCaseResult{TestRunID: run.ID, TestCaseID: 1, Result: "Pass"})
		if err := tx.Rollback(); err != nil {
			t.Fatalf("rollback: %v", err)
		}

		suites, cases, runs, results := store.Counts()
		if suites+cases+runs+results != 0 {
			t.Errorf("rollback left rows behind: %d %d %d %d", suites, cases, runs, results)
		}
	})

	t.Run("transaction sees its own staged writes", func(t *testing.T) {
		store := NewMemoryStore()
		tx, _ := store.Begin(context.Background())

		created := &domain.TestCase{CaseID: "TC1", Title: "t", Version: 1, VersionString: "1.0"}
		tx.CreateCase(created)

		found, err := tx.FindCaseByCaseID("TC1")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if found == nil || found.ID != created.ID {
			t.Errorf("staged case not visible to its own transaction: %+v", found)
		}
	})
}

func TestMemoryStore_ListRuns(t *testing.T) {
	store := NewMemoryStore()
	op := store.SeedOperator("Admin", "a@b", "admin")

	tx, _ := store.Begin(context.Background())
	first := &domain.TestRun{Status: "Completed", Name: "first", OperatorID: op.ID}
	second := &domain.TestRun{Status: "Completed", Name: "second", OperatorID: op.ID}
	tx.CreateRun(first)
	tx.CreateRun(second)
	tx.CreateResult(&domain.TestCaseResult{TestRunID: second.ID, TestCaseID: 1, Result: "Pass"})
	tx.Commit()

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "second" {
		t.Errorf("expected newest first, got %q", runs[0].Name)
	}
	if runs[0].Results != 1 || runs[1].Results != 0 {
		t.Errorf("unexpected result counts: %d, %d", runs[0].Results, runs[1].Results)
	}

	t.Run("limit", func(t *testing.T) {
		runs, _ := store.ListRuns(context.Background(), 1)
		if len(runs) != 1 {
			t.Errorf("expected 1 run with limit, got %d", len(runs))
		}
	})
}
