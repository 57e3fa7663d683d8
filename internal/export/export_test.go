package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hied-data/deitrack/pkg/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{
			Institution: "Alpha University",
			State:       "TX",
			Impacts:     "Diversity office closed",
			Source:      "Senate Bill 17",
			SourceLinks: []string{"https://example.org/sb17?ref=a&b=c", "https://example.org/doc"},
			Details:     `Offices closed under "SB 17".`,
			StateStatus: "Enacted",
			RowID:       "101",
		},
		{
			Institution: "Beta College",
			State:       "FL",
			Impacts:     "Training ended",
			Source:      "House Bill 7",
			SourceLinks: []string{},
			Details:     "",
			StateStatus: "Pending",
			RowID:       "102",
		},
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	records := sampleRecords()

	if err := SaveJSON(records, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	// Query strings must survive unescaped.
	if !strings.Contains(string(data), "ref=a&b=c") {
		t.Error("HTML escaping mangled a source link")
	}

	var got []models.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, records)
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := sampleRecords()

	if err := SaveCSV(records, path); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], models.FieldNames) {
		t.Errorf("unexpected header: %v", rows[0])
	}
	wantLinks := "https://example.org/sb17?ref=a&b=c; https://example.org/doc"
	if rows[1][4] != wantLinks {
		t.Errorf("source links cell = %q, want %q", rows[1][4], wantLinks)
	}
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	records := sampleRecords()

	if err := SaveXLSX(records, path); err != nil {
		t.Fatalf("SaveXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if header, err := f.GetCellValue(sheetName, "A1"); err != nil || header != "institution" {
		t.Errorf("A1 = %q, %v; want institution", header, err)
	}
	if cell, err := f.GetCellValue(sheetName, "A2"); err != nil || cell != "Alpha University" {
		t.Errorf("A2 = %q, %v; want Alpha University", cell, err)
	}
	if cell, err := f.GetCellValue(sheetName, "H3"); err != nil || cell != "102" {
		t.Errorf("H3 = %q, %v; want 102", cell, err)
	}
}

func TestSaveMarkdownResolvesLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	records := sampleRecords()
	records[0].DetailsHTML = `<b>Details</b><br>Closed. See <a href="/article/sb17">the bill</a>.`

	if err := SaveMarkdown(records, path, "https://www.chronicle.com/article/tracker"); err != nil {
		t.Fatalf("SaveMarkdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "## Alpha University (TX)") {
		t.Error("missing record heading")
	}
	if !strings.Contains(out, "https://www.chronicle.com/article/sb17") {
		t.Error("relative detail link was not resolved")
	}
	if !strings.Contains(out, "**Status:** Enacted") {
		t.Error("missing status line")
	}
}

func TestRunBestEffort(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()

	// An unwritable XLSX path must not cost the other formats.
	opts := Options{
		CSVPath:  filepath.Join(dir, "out.csv"),
		JSONPath: filepath.Join(dir, "out.json"),
		XLSXPath: filepath.Join(dir, "missing", "out.xlsx"),
	}
	if err := Run(records, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, p := range []string{opts.CSVPath, opts.JSONPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
}

func TestRunAllFormatsFailed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	opts := Options{
		CSVPath:  filepath.Join(dir, "out.csv"),
		JSONPath: filepath.Join(dir, "out.json"),
	}
	if err := Run(sampleRecords(), opts); err == nil {
		t.Fatal("expected an error when every format fails")
	}
}
