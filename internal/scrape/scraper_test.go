package scrape

import (
	"context"
	"fmt"
	"testing"

	"github.com/hied-data/deitrack/internal/config"
	"github.com/hied-data/deitrack/internal/ratelimit"
)

func pageFixture(rowID string) string {
	return fmt.Sprintf(`<table><tbody>
<tr class="result" id="%s"><td>School %s</td><td>TX</td><td>Impact</td><td>Source</td></tr>
</tbody></table>`, rowID, rowID)
}

type fakeSession struct {
	pages []string
	page  int
}

func (f *fakeSession) Ctx() context.Context  { return context.Background() }
func (f *fakeSession) Navigate(string) error { return nil }
func (f *fakeSession) HTML(context.Context) (string, error) {
	i := f.page
	if i >= len(f.pages) {
		i = len(f.pages) - 1
	}
	return f.pages[i], nil
}
func (f *fakeSession) Eval(context.Context, string, interface{}) error { return nil }

type fakePager struct {
	session  *fakeSession
	total    int
	allowed  int
	advances int
}

func (f *fakePager) TotalPages(context.Context) int { return f.total }
func (f *fakePager) Advance(context.Context) bool {
	if f.advances >= f.allowed {
		return false
	}
	f.advances++
	f.session.page++
	return true
}

type fakeExpander struct{ calls int }

func (f *fakeExpander) ExpandAll(context.Context) int {
	f.calls++
	return 0
}

func newTestScraper(cfg *config.Config, session *fakeSession, pager *fakePager) *Scraper {
	return &Scraper{
		cfg:      cfg,
		session:  session,
		limiter:  ratelimit.New(1000, 1000),
		expander: &fakeExpander{},
		pager:    pager,
		ready:    func() error { return nil },
		Prompter: StdinPrompter{},
	}
}

func TestRunStopsWhenNextDisabled(t *testing.T) {
	session := &fakeSession{pages: []string{pageFixture("1"), pageFixture("2")}}
	pager := &fakePager{session: session, total: 2, allowed: 1}
	cfg := &config.Config{TargetURL: "https://example.org/tracker", JSONLog: true}

	records, err := newTestScraper(cfg, session, pager).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].RowID != "1" || records[1].RowID != "2" {
		t.Errorf("unexpected record order: %v", records)
	}
	if pager.advances != 1 {
		t.Errorf("expected exactly 1 advance, got %d", pager.advances)
	}
}

func TestRunHonorsMaxPages(t *testing.T) {
	session := &fakeSession{pages: []string{pageFixture("1"), pageFixture("2")}}
	pager := &fakePager{session: session, total: 2, allowed: 5}
	cfg := &config.Config{TargetURL: "https://example.org/tracker", JSONLog: true, MaxPages: 1}

	records, err := newTestScraper(cfg, session, pager).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if pager.advances != 0 {
		t.Errorf("expected no advance past the page limit, got %d", pager.advances)
	}
}

func TestRunStopsAtHardPageCap(t *testing.T) {
	session := &fakeSession{pages: []string{pageFixture("1")}}
	pager := &fakePager{session: session, total: 100, allowed: 100}
	cfg := &config.Config{TargetURL: "https://example.org/tracker", JSONLog: true}

	records, err := newTestScraper(cfg, session, pager).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(records) != HardPageCap {
		t.Fatalf("expected %d records, got %d", HardPageCap, len(records))
	}
	if pager.advances != HardPageCap-1 {
		t.Errorf("expected %d advances, got %d", HardPageCap-1, pager.advances)
	}
}

func TestRunReturnsPartialOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := &fakeSession{pages: []string{pageFixture("1")}}
	pager := &fakePager{session: session, total: 3, allowed: 3}
	cfg := &config.Config{TargetURL: "https://example.org/tracker", JSONLog: true}

	records, err := newTestScraper(cfg, session, pager).Run(ctx)
	if err == nil {
		t.Fatal("expected a context error")
	}
	if records == nil {
		t.Fatal("expected a non-nil record slice for export")
	}
}

func TestRunExpandsRowsWhenEnabled(t *testing.T) {
	session := &fakeSession{pages: []string{pageFixture("1")}}
	pager := &fakePager{session: session, total: 1}
	cfg := &config.Config{TargetURL: "https://example.org/tracker", JSONLog: true, ExpandRows: true}

	s := newTestScraper(cfg, session, pager)
	exp := &fakeExpander{}
	s.expander = exp

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if exp.calls != 1 {
		t.Errorf("expected 1 expansion pass, got %d", exp.calls)
	}
}
