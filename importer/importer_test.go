// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/term-mapper/store"
	"github.com/danielhkuo/term-mapper/testutil"
)

func newTestImporter(t *testing.T, path string) (*Importer, *store.Store) {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	cfg := testutil.GetTestConfig(t).DataImport
	cfg.CSVPath = path
	return New(st, cfg), st
}

func TestImport_CSV(t *testing.T) {
	path := testutil.WriteFile(t, "terms.csv", []byte(
		"Kategorie,Item,Notes\n"+
			"Diagnose,Fieber,x\n"+
			" Diagnose , Husten ,\n"+
			"Diagnose,Fieber,duplicate\n"+
			",Leer,\n"+
			"Symptom,,\n"))
	im, st := newTestImporter(t, path)

	result, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.TotalProcessed != 5 {
		t.Errorf("Expected 5 rows processed, got %d", result.TotalProcessed)
	}
	if result.Created != 2 {
		t.Errorf("Expected 2 terms created, got %d", result.Created)
	}
	if result.Skipped != 3 {
		t.Errorf("Expected 3 rows skipped, got %d", result.Skipped)
	}
	if result.Encoding != "utf-8" {
		t.Errorf("Expected utf-8, got %q", result.Encoding)
	}

	n, _ := st.CountTerms(context.Background())
	if n != 2 {
		t.Errorf("Expected 2 terms stored, got %d", n)
	}
}

func TestImport_Twice(t *testing.T) {
	path := testutil.WriteFile(t, "terms.csv", []byte("Kategorie,Item\nA,one\nA,two\n"))
	im, st := newTestImporter(t, path)
	ctx := context.Background()

	if _, err := im.Import(ctx); err != nil {
		t.Fatalf("First import failed: %v", err)
	}
	second, err := im.Import(ctx)
	if err != nil {
		t.Fatalf("Second import failed: %v", err)
	}
	if second.Created != 0 || second.Skipped != 2 {
		t.Errorf("Expected second import to skip everything, got %+v", second)
	}

	n, _ := st.CountTerms(ctx)
	if n != 2 {
		t.Errorf("Expected 2 terms after double import, got %d", n)
	}
}

func TestImportIfEmpty(t *testing.T) {
	path := testutil.WriteFile(t, "terms.csv", []byte("Kategorie,Item\nA,one\n"))
	im, st := newTestImporter(t, path)
	ctx := context.Background()

	if _, err := st.InsertTerm(ctx, "Existing", "term"); err != nil {
		t.Fatalf("Failed to seed term: %v", err)
	}

	result, err := im.ImportIfEmpty(ctx)
	if err != nil {
		t.Fatalf("ImportIfEmpty failed: %v", err)
	}
	if result.Created != 0 {
		t.Errorf("Expected no import when terms exist, got %+v", result)
	}
}

func TestImportIfEmpty_MissingFile(t *testing.T) {
	im, _ := newTestImporter(t, filepath.Join(t.TempDir(), "missing.csv"))

	result, err := im.ImportIfEmpty(context.Background())
	if err != nil {
		t.Fatalf("Expected missing file to be tolerated, got %v", err)
	}
	if result.Created != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}

func TestImport_MissingColumn(t *testing.T) {
	path := testutil.WriteFile(t, "terms.csv", []byte("Category,Item\nA,one\n"))
	im, _ := newTestImporter(t, path)

	_, err := im.Import(context.Background())
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestImport_Semicolon(t *testing.T) {
	path := testutil.WriteFile(t, "terms.csv", []byte("Kategorie;Item\nA;one, with comma\n"))
	im, st := newTestImporter(t, path)
	im.cfg.Delimiter = ";"

	result, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("Expected 1 term created, got %d", result.Created)
	}

	terms, err := st.TermsForSession(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("Failed to read terms: %v", err)
	}
	if len(terms) != 1 || terms[0].Term != "one, with comma" {
		t.Errorf("Unexpected terms: %+v", terms)
	}
}

func TestImport_Latin1Fallback(t *testing.T) {
	// "Größe" in ISO-8859-1; invalid as UTF-8
	latin1 := []byte("Kategorie,Item\nMa\xdfe,Gr\xf6\xdfe\n")
	path := testutil.WriteFile(t, "terms.csv", latin1)
	im, st := newTestImporter(t, path)

	result, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Encoding != "latin-1" {
		t.Errorf("Expected latin-1 fallback, got %q", result.Encoding)
	}

	terms, _ := st.TermsForSession(context.Background(), 0, 5)
	if len(terms) != 1 || terms[0].Category != "Maße" || terms[0].Term != "Größe" {
		t.Errorf("Unexpected decoded terms: %+v", terms)
	}
}

func TestImport_ConfiguredEncodingFirst(t *testing.T) {
	// 0x80 is the euro sign in cp1252 but a control character in latin-1
	path := testutil.WriteFile(t, "terms.csv", []byte("Kategorie,Item\nPreis,5 \x80\n"))
	im, st := newTestImporter(t, path)
	im.cfg.Encoding = "cp1252"

	result, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Encoding != "cp1252" {
		t.Errorf("Expected cp1252, got %q", result.Encoding)
	}

	terms, _ := st.TermsForSession(context.Background(), 0, 5)
	if len(terms) != 1 || terms[0].Term != "5 €" {
		t.Errorf("Unexpected decoded terms: %+v", terms)
	}
}

func TestImport_UTF8BOM(t *testing.T) {
	path := testutil.WriteFile(t, "terms.csv", []byte("\xef\xbb\xbfKategorie,Item\nA,one\n"))
	im, _ := newTestImporter(t, path)

	result, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("Expected BOM header to resolve, got %+v", result)
	}
}

func TestImport_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.xlsx")

	f := excelize.NewFile()
	rows := [][]string{
		{"Item", "Kategorie"},
		{"Fieber", "Diagnose"},
		{"Husten", "Diagnose"},
		{"", "Diagnose"},
	}
	for i, row := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("Failed to write sheet row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	f.Close()

	im, st := newTestImporter(t, path)
	result, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Created != 2 || result.Skipped != 1 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if result.Encoding != "xlsx" {
		t.Errorf("Expected xlsx source, got %q", result.Encoding)
	}

	n, _ := st.CountTerms(context.Background())
	if n != 2 {
		t.Errorf("Expected 2 terms, got %d", n)
	}
}

func TestDecode_Order(t *testing.T) {
	tests := []struct {
		name       string
		raw        []byte
		configured string
		want       string
		wantEnc    string
	}{
		{"valid utf-8", []byte("Grüße"), "utf-8", "Grüße", "utf-8"},
		{"invalid utf-8 falls back", []byte("Gr\xfc\xdfe"), "utf-8", "Grüße", "latin-1"},
		{"unknown configured name skipped", []byte("abc"), "no-such-encoding", "abc", "utf-8"},
		{"empty configured", []byte("abc"), "", "abc", "utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := decode(tt.raw, tt.configured)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if got != tt.want || enc != tt.wantEnc {
				t.Errorf("decode() = %q, %q; want %q, %q", got, enc, tt.want, tt.wantEnc)
			}
		})
	}
}
