package parser

import (
	"reflect"
	"testing"
)

const baseURL = "https://www.chronicle.com/article/tracker"

const trackerPage = `<html><body><table><tbody>
<tr class="result" id="101">
  <td>Alpha University</td>
  <td>TX</td>
  <td>Diversity office closed</td>
  <td>Senate Bill 17 <a href="/article/sb17">SB 17</a> <a href="https://example.org/doc">doc</a> <a href="/article/sb17">SB 17</a></td>
</tr>
<tr id="details_101"><td class="details" colspan="4"><b>Details</b><br>"The university closed its DEI office."<br><b>status:</b> Enacted</td></tr>
<tr class="result" id="102">
  <td>Beta College</td>
  <td>FL</td>
</tr>
<tr class="result" id="103">
  <td>Gamma State</td>
  <td>OH</td>
  <td>Training program renamed</td>
  <td>House Bill 8</td>
</tr>
<tr id="details_103"><td class="details"><b>Details</b><br>Program renamed.<br>status: "Pending"</td></tr>
<tr class="result" id="104">
  <td>Delta Tech</td>
  <td>UT</td>
  <td>Budget reallocation</td>
  <td>News report</td>
</tr>
<tr id="details_104"><td class="details">Details<br>Budget cut enacted.<br>status: Signed</td></tr>
</tbody></table></body></html>`

func TestParsePage(t *testing.T) {
	records, err := ParsePage(trackerPage, baseURL)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}

	// Row 102 has too few cells and must be skipped.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.RowID == "102" {
			t.Fatal("row with too few cells was not skipped")
		}
	}
}

func TestParsePageStructuredExtraction(t *testing.T) {
	records, err := ParsePage(trackerPage, baseURL)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}

	rec := records[0]
	if rec.RowID != "101" {
		t.Fatalf("expected row_id 101, got %q", rec.RowID)
	}
	if rec.Institution != "Alpha University" || rec.State != "TX" {
		t.Errorf("unexpected main cells: %q / %q", rec.Institution, rec.State)
	}
	if rec.Impacts != "Diversity office closed" {
		t.Errorf("unexpected impacts: %q", rec.Impacts)
	}
	if rec.Details != "The university closed its DEI office." {
		t.Errorf("unexpected details: %q", rec.Details)
	}
	if rec.StateStatus != "Enacted" {
		t.Errorf("unexpected status: %q", rec.StateStatus)
	}

	// Links keep document order, duplicates included, relative hrefs
	// resolved against the page URL.
	wantLinks := []string{
		"https://www.chronicle.com/article/sb17",
		"https://example.org/doc",
		"https://www.chronicle.com/article/sb17",
	}
	if !reflect.DeepEqual(rec.SourceLinks, wantLinks) {
		t.Errorf("unexpected source links: %v", rec.SourceLinks)
	}
}

func TestParsePageFallbackFillsOnlyEmptyFields(t *testing.T) {
	records, err := ParsePage(trackerPage, baseURL)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}

	// Row 103: structured walk finds the details text but no bold
	// status marker; the line fallback supplies only the status.
	rec := records[1]
	if rec.RowID != "103" {
		t.Fatalf("expected row_id 103, got %q", rec.RowID)
	}
	if rec.Details != "Program renamed." {
		t.Errorf("structured details overwritten: %q", rec.Details)
	}
	if rec.StateStatus != "Pending" {
		t.Errorf("fallback status not applied: %q", rec.StateStatus)
	}
}

func TestParsePageLineFallback(t *testing.T) {
	records, err := ParsePage(trackerPage, baseURL)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}

	// Row 104 has no bold markers at all.
	rec := records[2]
	if rec.RowID != "104" {
		t.Fatalf("expected row_id 104, got %q", rec.RowID)
	}
	if rec.Details != "Budget cut enacted." {
		t.Errorf("unexpected fallback details: %q", rec.Details)
	}
	if rec.StateStatus != "Signed" {
		t.Errorf("unexpected fallback status: %q", rec.StateStatus)
	}
}

func TestParsePageMissingDetailRow(t *testing.T) {
	page := `<table><tbody>
<tr class="result" id="7"><td>Epsilon</td><td>GA</td><td>Policy review</td><td>Memo</td></tr>
</tbody></table>`

	records, err := ParsePage(page, baseURL)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Details != "" || rec.StateStatus != "" || rec.DetailsHTML != "" {
		t.Errorf("expected empty detail fields, got %+v", rec)
	}
	if rec.SourceLinks == nil || len(rec.SourceLinks) != 0 {
		t.Errorf("expected empty non-nil source links, got %#v", rec.SourceLinks)
	}
}

func TestParsePageRowClassFallback(t *testing.T) {
	// Markup drift: no tr.result class, but identified rows with 4 cells.
	page := `<table><tbody>
<tr id="205"><td>Zeta University</td><td>IA</td><td>Office merged</td><td>Bill text</td></tr>
<tr id="header"><td>a</td><td>b</td><td>c</td><td>d</td></tr>
</tbody></table>`

	records, err := ParsePage(page, baseURL)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record from fallback selection, got %d", len(records))
	}
	if records[0].RowID != "205" {
		t.Errorf("unexpected row id %q", records[0].RowID)
	}
}

func TestParsePageNoRows(t *testing.T) {
	records, err := ParsePage("<html><body><p>maintenance</p></body></html>", baseURL)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
