package ingest

import (
	"context"
	"testing"

	"tmi/internal/domain"
	"tmi/internal/storage"
)

func beginTx(t *testing.T, store *storage.MemoryStore) storage.Tx {
	t.Helper()
	tx, err := store.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	return tx
}

func TestResolver_ResolveSuite(t *testing.T) {
	t.Run("creates missing suite with defaults", func(t *testing.T) {
		store := storage.NewMemoryStore()
		tx := beginTx(t, store)
		r := NewResolver(tx)

		id, err := r.ResolveSuite("Smoke")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == nil {
			t.Fatal("expected a suite id")
		}

		if err := tx.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
		suites := store.Suites()
		if len(suites) != 1 {
			t.Fatalf("expected 1 suite, got %d", len(suites))
		}
		s := suites[0]
		if s.Format != "JSON" || s.Version != 1 || s.VersionString != "1.0" {
			t.Errorf("unexpected suite defaults: %+v", s)
		}
	})

	t.Run("repeated resolution reuses the first suite", func(t *testing.T) {
		store := storage.NewMemoryStore()
		tx := beginTx(t, store)
		r := NewResolver(tx)

		first, err := r.ResolveSuite("Smoke")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := r.ResolveSuite("Smoke")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *first != *second {
			t.Errorf("expected same suite id, got %d and %d", *first, *second)
		}

		tx.Commit()
		if suites := store.Suites(); len(suites) != 1 {
			t.Errorf("expected 1 suite, got %d", len(suites))
		}
	})

	t.Run("empty and sentinel names mean no suite", func(t *testing.T) {
		store := storage.NewMemoryStore()
		tx := beginTx(t, store)
		r := NewResolver(tx)

		for _, name := range []string{"", "default"} {
			id, err := r.ResolveSuite(name)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", name, err)
			}
			if id != nil {
				t.Errorf("expected no suite for %q, got id %d", name, *id)
			}
		}

		tx.Commit()
		if suites := store.Suites(); len(suites) != 0 {
			t.Errorf("expected no suites created, got %d", len(suites))
		}
	})
}

func TestResolver_ResolveCase(t *testing.T) {
	t.Run("creates placeholder with explicit defaults", func(t *testing.T) {
		store := storage.NewMemoryStore()
		tx := beginTx(t, store)
		r := NewResolver(tx)

		id, ok, err := r.ResolveCase("TC001", domain.CaseDef{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || id == 0 {
			t.Fatal("expected a resolved case")
		}

		tx.Commit()
		cases := store.Cases()
		if len(cases) != 1 {
			t.Fatalf("expected 1 case, got %d", len(cases))
		}
		c := cases[0]
		if c.Title != "Test Case TC001" {
			t.Errorf("unexpected synthetic title: %q", c.Title)
		}
		if c.Version != 1 || c.VersionString != "1.0" {
			t.Errorf("unexpected version defaults: %+v", c)
		}
		if c.SuiteID != nil {
			t.Errorf("expected suite-less case, got suite %d", *c.SuiteID)
		}
	})

	t.Run("hinted suite is created and linked", func(t *testing.T) {
		store := storage.NewMemoryStore()
		tx := beginTx(t, store)
		r := NewResolver(tx)

		_, ok, err := r.ResolveCase("TC002", domain.CaseDef{Title: "Tuning", SuiteName: "RF"})
		if err != nil || !ok {
			t.Fatalf("resolve failed: ok=%v err=%v", ok, err)
		}

		tx.Commit()
		suites := store.Suites()
		if len(suites) != 1 || suites[0].Name != "RF" {
			t.Fatalf("expected created suite RF, got %+v", suites)
		}
		c := store.Cases()[0]
		if c.SuiteID == nil || *c.SuiteID != suites[0].ID {
			t.Errorf("case not linked to suite: %+v", c)
		}
		if c.Title != "Tuning" {
			t.Errorf("hint title not applied: %q", c.Title)
		}
	})

	t.Run("duplicate natural key within one import resolves once", func(t *testing.T) {
		store := storage.NewMemoryStore()
		tx := beginTx(t, store)
		r := NewResolver(tx)

		first, _, err := r.ResolveCase("TC003", domain.CaseDef{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, _, err := r.ResolveCase("TC003", domain.CaseDef{Title: "different hint"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Errorf("expected same case id, got %d and %d", first, second)
		}

		tx.Commit()
		if cases := store.Cases(); len(cases) != 1 {
			t.Errorf("expected 1 case, got %d", len(cases))
		}
	})

	t.Run("existing case is found, not recreated", func(t *testing.T) {
		store := storage.NewMemoryStore()

		setup := beginTx(t, store)
		existing := &domain.TestCase{CaseID: "TC004", Title: "Original", Version: 3, VersionString: "3.0"}
		if err := setup.CreateCase(existing); err != nil {
			t.Fatalf("seed case: %v", err)
		}
		setup.Commit()

		tx := beginTx(t, store)
		r := NewResolver(tx)
		id, ok, err := r.ResolveCase("TC004", domain.CaseDef{Title: "ignored hint"})
		if err != nil || !ok {
			t.Fatalf("resolve failed: ok=%v err=%v", ok, err)
		}
		if id != existing.ID {
			t.Errorf("expected existing id %d, got %d", existing.ID, id)
		}
		tx.Commit()

		if cases := store.Cases(); len(cases) != 1 {
			t.Errorf("expected 1 case, got %d", len(cases))
		}
	})

	t.Run("empty natural key is a no-op", func(t *testing.T) {
		store := storage.NewMemoryStore()
		tx := beginTx(t, store)
		r := NewResolver(tx)

		_, ok, err := r.ResolveCase("", domain.CaseDef{Title: "has a title but no key"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected ok=false for empty natural key")
		}
	})
}
