package storage

import (
	"testing"

	"tmi/internal/config"
	"tmi/internal/domain"
)

func TestJSONSummaryStorage(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := NewJSONSummaryStorage(cfg)

	t.Run("load before any save fails", func(t *testing.T) {
		if _, err := st.Load(); err == nil {
			t.Error("expected error when no summary file exists")
		}
	})

	t.Run("reviewed state survives save and load", func(t *testing.T) {
		in := []domain.ImportSummary{{
			Filename: "results.json",
			Success:  true,
			Message:  "Test results imported successfully. Created test run with 2 results.",
			RunID:    7,
			Imported: 2,
			Skipped: []domain.SkippedRecord{
				{Index: 3, Kind: "result", Reason: "record has no test case id", Reviewed: true},
			},
		}}

		if err := st.Save(in); err != nil {
			t.Fatalf("save: %v", err)
		}
		out, err := st.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}

		if len(out) != 1 || out[0].RunID != 7 || out[0].Imported != 2 {
			t.Fatalf("unexpected summaries: %+v", out)
		}
		if len(out[0].Skipped) != 1 || !out[0].Skipped[0].Reviewed {
			t.Errorf("skipped record not preserved: %+v", out[0].Skipped)
		}
	})
}
