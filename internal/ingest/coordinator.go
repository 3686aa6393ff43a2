package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tmi/internal/domain"
	"tmi/internal/parser"
	"tmi/internal/storage"
)

// RunStatus is the status every imported run is stored with.
const RunStatus = "Completed"

// Options carries caller-supplied metadata for one import invocation.
type Options struct {
	// Source is the original filename or path, used only for default naming.
	Source string
	// RunName overrides the run name when non-empty.
	RunName string
	// OperatorID attributes the run to an explicit operator. Zero means
	// "the actor performing the import".
	OperatorID int64
	// ActorLogin identifies the actor performing the import.
	ActorLogin string
	// DUTID optionally references a device under test; stored, not resolved.
	DUTID *int64
}

// Progress receives per-record updates while results are persisted.
type Progress interface {
	Start(total int)
	Step(imported, skipped int)
	Finish()
}

// Coordinator drives one import invocation end to end: decode, detect,
// normalize, resolve and persist per record, then commit - or roll back
// everything written when a hard failure hits. Per-record skips are soft:
// they are counted in the summary and never fail the import.
type Coordinator struct {
	store    storage.Store
	progress Progress
}

// NewCoordinator creates a Coordinator on the given store.
func NewCoordinator(store storage.Store) *Coordinator {
	return &Coordinator{store: store}
}

// SetProgress attaches a progress reporter for long imports.
func (c *Coordinator) SetProgress(p Progress) {
	c.progress = p
}

// ImportJSON decodes raw JSON bytes and runs the full pipeline. When strict
// decoding fails the recovery scanner salvages what it can; only zero
// salvage makes the input unreadable.
func (c *Coordinator) ImportJSON(ctx context.Context, raw []byte, opts Options) (domain.ImportSummary, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		objects, serr := parser.Salvage(string(raw))
		if serr != nil {
			return c.fail(opts, fmt.Errorf("%w: %v", ErrUnreadableInput, serr))
		}
		return c.Import(ctx, parser.NormalizeObjects(objects, opts.Source), opts)
	}
	return c.Import(ctx, parser.Normalize(doc, opts.Source), opts)
}

// ImportDocument ingests an already-decoded document, the path for callers
// that hold a pre-parsed object instead of raw bytes.
func (c *Coordinator) ImportDocument(ctx context.Context, doc any, opts Options) (domain.ImportSummary, error) {
	return c.Import(ctx, parser.Normalize(doc, opts.Source), opts)
}

// ImportRows ingests pre-flattened row records (spreadsheet rows keyed by
// column header).
func (c *Coordinator) ImportRows(ctx context.Context, rows []map[string]any, opts Options) (domain.ImportSummary, error) {
	return c.Import(ctx, parser.NormalizeRows(rows, opts.Source), opts)
}

// Import ingests a canonical payload as one new test run inside a single
// transaction.
func (c *Coordinator) Import(ctx context.Context, payload domain.Payload, opts Options) (domain.ImportSummary, error) {
	tx, err := c.store.Begin(ctx)
	if err != nil {
		return c.fail(opts, fmt.Errorf("begin import: %w", err))
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	// Operator resolution happens before any write so an unknown operator
	// aborts with nothing persisted.
	operatorID, err := c.resolveOperator(tx, opts)
	if err != nil {
		return c.fail(opts, err)
	}

	run := &domain.TestRun{
		Status:     RunStatus,
		Name:       runName(opts, payload.Run),
		RunDate:    payload.Run.Date,
		DUTID:      opts.DUTID,
		OperatorID: operatorID,
	}
	if err := tx.CreateRun(run); err != nil {
		return c.fail(opts, hardErr("create test run", err))
	}

	resolver := NewResolver(tx)
	var skipped []domain.SkippedRecord

	// Explicit case definitions are upserted first so result records
	// resolve against them. A bad definition is skipped, never fatal.
	for i, def := range payload.Cases {
		if def.CaseID == "" {
			skipped = append(skipped, domain.SkippedRecord{
				Index: i, Kind: "case", Reason: "case definition has no case_id",
			})
			continue
		}
		if _, _, err := resolver.ResolveCase(def.CaseID, def); err != nil {
			skipped = append(skipped, domain.SkippedRecord{
				Index: i, Kind: "case",
				Reason: fmt.Sprintf("upsert case %s: %v", def.CaseID, err),
			})
		}
	}

	if c.progress != nil {
		c.progress.Start(len(payload.Results))
	}

	// The progress bar is sized to the result records alone, so only
	// result-kind skips feed its counter.
	imported := 0
	resultSkips := 0
	for i, rec := range payload.Results {
		caseID, ok, err := resolver.ResolveCase(rec.CaseID, domain.CaseDef{
			Title:     rec.Title,
			SuiteName: rec.SuiteName,
		})
		if err != nil {
			return c.fail(opts, hardErr("resolve case "+rec.CaseID, err))
		}
		if !ok {
			skipped = append(skipped, domain.SkippedRecord{
				Index: i, Kind: "result", Reason: "record has no test case id",
			})
			resultSkips++
			if c.progress != nil {
				c.progress.Step(imported, resultSkips)
			}
			continue
		}

		result := rec.Result
		if result == "" {
			result = "Unknown"
		}
		err = tx.CreateResult(&domain.TestCaseResult{
			TestRunID:  run.ID,
			TestCaseID: caseID,
			Result:     result,
			Logs:       rec.Logs,
			Comment:    rec.Comment,
			Artifacts:  rec.Artifacts,
		})
		if err != nil {
			return c.fail(opts, hardErr("persist result for "+rec.CaseID, err))
		}
		imported++
		if c.progress != nil {
			c.progress.Step(imported, resultSkips)
		}
	}

	if c.progress != nil {
		c.progress.Finish()
	}

	if err := tx.Commit(); err != nil {
		return c.fail(opts, hardErr("commit", err))
	}
	committed = true

	return domain.ImportSummary{
		Filename: opts.Source,
		Success:  true,
		Message: fmt.Sprintf(
			"Test results imported successfully. Created test run with %d results.", imported),
		RunID:     run.ID,
		Imported:  imported,
		Skipped:   skipped,
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

func (c *Coordinator) resolveOperator(tx storage.Tx, opts Options) (int64, error) {
	if opts.OperatorID != 0 {
		op, err := tx.FindOperator(opts.OperatorID)
		if err != nil {
			return 0, fmt.Errorf("resolve operator: %w", err)
		}
		if op == nil {
			return 0, fmt.Errorf("%w: operator %d not found", ErrUnknownOperator, opts.OperatorID)
		}
		return op.ID, nil
	}

	op, err := tx.FindOperatorByLogin(opts.ActorLogin)
	if err != nil {
		return 0, fmt.Errorf("resolve operator: %w", err)
	}
	if op == nil {
		return 0, fmt.Errorf("%w: no operator with login %q", ErrUnknownOperator, opts.ActorLogin)
	}
	return op.ID, nil
}

// runName applies the naming precedence: explicit caller name, then the
// normalized document's run metadata, then a source-derived default.
func runName(opts Options, meta domain.RunMeta) string {
	if opts.RunName != "" {
		return opts.RunName
	}
	if meta.Name != "" {
		return meta.Name
	}
	return "Imported from " + opts.Source
}

func (c *Coordinator) fail(opts Options, err error) (domain.ImportSummary, error) {
	return domain.ImportSummary{
		Filename:  opts.Source,
		Success:   false,
		Message:   fmt.Sprintf("Error importing test results: %v", err),
		Timestamp: time.Now().Format(time.RFC3339),
	}, err
}

func hardErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrImportFailed, op, err)
}
