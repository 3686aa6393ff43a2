package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"test_case_id", "result", "comment"},
		{"TC1", "Pass", "all good"},
		{"TC2", "Fail", ""},
		{123, "Pass", ""},
	})

	records, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0]["test_case_id"] != "TC1" || records[0]["result"] != "Pass" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[2]["test_case_id"] != "123" {
		t.Errorf("numeric cell should come back as string, got %v", records[2]["test_case_id"])
	}
}

func TestRead_ShortRowsPadded(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"test_case_id", "result", "logs"},
		{"TC1"},
	})

	records, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["result"] != "" || records[0]["logs"] != "" {
		t.Errorf("missing cells should be empty strings: %+v", records[0])
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"test_case_id", "result"}})

	records, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestRead_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	if err := os.WriteFile(path, []byte("definitely not a zip"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Error("expected error for invalid workbook")
	}
}

func TestRead_LegacyXLSNotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xls")
	if err := os.WriteFile(path, []byte("definitely not a compound file"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Error("expected error for invalid legacy workbook")
	}
}

func TestFlattenRows(t *testing.T) {
	rows := [][]string{
		{"test_case_id", "result", ""},
		{"TC1", "Pass", "under empty header"},
		{"TC2"},
	}

	records := flattenRows(rows)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["test_case_id"] != "TC1" || records[0]["result"] != "Pass" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if _, ok := records[0][""]; ok {
		t.Error("empty headers must not produce columns")
	}
	if records[1]["result"] != "" {
		t.Errorf("missing cells should be empty strings: %+v", records[1])
	}

	if got := flattenRows([][]string{{"test_case_id"}}); got != nil {
		t.Errorf("header-only input should yield no records, got %+v", got)
	}
}

func TestReadFrom(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"id", "result"},
		{"77", "Fail"},
	})

	fh, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer fh.Close()

	records, err := ReadFrom(fh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "77" {
		t.Errorf("unexpected records: %+v", records)
	}
}
