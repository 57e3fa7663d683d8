package scrape

import "time"

// Delays holds the fixed settle pauses used throughout a scrape run. The
// target page gives no reliable readiness signal after its JS mutations,
// so timing is fixed rather than event-driven. Fast mode shortens the
// pauses for development against a responsive connection.
type Delays struct {
	// Initial is the pause after the first navigation.
	Initial time.Duration
	// LoginNav is the pause after clicking through to the login form.
	LoginNav time.Duration
	// LoginStep is the pause between login form interactions.
	LoginStep time.Duration
	// Submit is the pause after submitting credentials.
	Submit time.Duration
	// Table is the pause after the results table is first located.
	Table time.Duration
	// ExpandGap is the pause between consecutive row expansions.
	ExpandGap time.Duration
	// AfterClick is the pause after each expand click.
	AfterClick time.Duration
	// Render is the pause after expanding a page, before the snapshot.
	Render time.Duration
	// Scroll is the pause after scrolling to the pagination controls.
	Scroll time.Duration
	// Advance is the pause after clicking to the next page.
	Advance time.Duration
}

// NewDelays returns the standard delay profile, or the shortened fast
// profile.
func NewDelays(fast bool) Delays {
	d := Delays{
		Initial:    3 * time.Second,
		LoginNav:   2 * time.Second,
		LoginStep:  time.Second,
		Submit:     5 * time.Second,
		Table:      2 * time.Second,
		ExpandGap:  300 * time.Millisecond,
		AfterClick: time.Second,
		Render:     2 * time.Second,
		Scroll:     500 * time.Millisecond,
		Advance:    3 * time.Second,
	}
	if fast {
		d.Table = time.Second
		d.ExpandGap = 100 * time.Millisecond
		d.AfterClick = 500 * time.Millisecond
		d.Render = 500 * time.Millisecond
		d.Scroll = 300 * time.Millisecond
		d.Advance = 1500 * time.Millisecond
	}
	return d
}
