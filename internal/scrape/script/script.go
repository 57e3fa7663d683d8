// Package script builds the JavaScript snippets dispatched to the page
// for DOM mutation (row expansion, pagination clicks). Synthetic JS
// clicks are used instead of CDP mouse events because the controls are
// frequently covered by sticky headers or live inside restyled wrappers.
//
// Snippets are assembled from selector lists, so each one is
// compile-checked with goja before it is sent to the browser; a snippet
// that does not parse is reported instead of silently failing in the
// page.
package script

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// RowSelector matches the main data rows of the results table.
const RowSelector = "tr.result"

// toggleSelectors are probed, in order, inside a row's first cell to
// find an explicit expand control.
var toggleSelectors = []string{
	"button",
	"[role='button']",
	"a",
	".toggle",
	".expand",
	".collapse",
	"[class*='toggle']",
	"[class*='expand']",
	"[class*='icon']",
	"span[class*='icon']",
	"span[class*='chevron']",
}

// nextSelectors are class-name heuristics for the next-page control.
var nextSelectors = []string{
	".pagination-next",
	".next-page",
	"[class*='pagination'] a[class*='next']",
	"[class*='next']",
	"button.next",
	"a.next",
}

// nextAriaLabels are aria-label substrings identifying a next control.
var nextAriaLabels = []string{"next", "Next", "next page", "Go to next page"}

// nextLinkTexts are visible texts identifying a next control.
var nextLinkTexts = []string{"Next", "Next page", "»", "›"}

// Check parses src with goja and reports a syntax error, if any.
func Check(src string) error {
	_, err := goja.Compile("snippet", src, true)
	return err
}

func jsStringArray(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// RowCount returns an expression counting the visible data rows.
func RowCount() string {
	return fmt.Sprintf("document.querySelectorAll(%q).length", RowSelector)
}

// ScrollToBottom returns an expression scrolling the page to the bottom,
// bringing pagination controls into the rendered viewport.
func ScrollToBottom() string {
	return "window.scrollTo(0, document.body.scrollHeight)"
}

// ExpandRow returns a snippet that expands the row at the given index.
//
// The row is re-queried by position on every call: expanding a row
// re-renders the table and invalidates previously fetched handles. The
// snippet reports which action was taken: "opened" (already expanded),
// "toggle", "cell", "row", or "missing" (index out of range).
func ExpandRow(index int) string {
	return fmt.Sprintf(`(function() {
	var rows = document.querySelectorAll(%q);
	if (%d >= rows.length) { return "missing"; }
	var row = rows[%d];
	if ((row.className || "").indexOf("opened") !== -1) { return "opened"; }
	row.scrollIntoView({block: "center"});
	var visible = function(el) { return !!el && el.offsetParent !== null; };
	var cell = row.querySelector("td:first-child");
	if (cell) {
		var toggles = %s;
		for (var i = 0; i < toggles.length; i++) {
			var btn = cell.querySelector(toggles[i]);
			if (visible(btn)) { btn.click(); return "toggle"; }
		}
		cell.click();
		return "cell";
	}
	row.click();
	return "row";
})()`, RowSelector, index, index, jsStringArray(toggleSelectors))
}

// ClickNext returns a snippet that finds and clicks an enabled next-page
// control, cascading through aria-label, link-text, class-name and
// data-attribute heuristics. It evaluates to true when a click was
// dispatched and false when no enabled candidate exists (end of data).
func ClickNext() string {
	return fmt.Sprintf(`(function() {
	var visible = function(el) { return !!el && el.offsetParent !== null; };
	var enabled = function(el) {
		if (el.disabled) { return false; }
		if (el.getAttribute("aria-disabled") === "true") { return false; }
		return (el.className || "").indexOf("disabled") === -1;
	};
	var candidates = [];
	var labels = %s;
	for (var i = 0; i < labels.length; i++) {
		var tags = ["button", "a"];
		for (var j = 0; j < tags.length; j++) {
			var el = document.querySelector(tags[j] + '[aria-label*="' + labels[i] + '"]');
			if (visible(el)) { candidates.push(el); }
		}
	}
	var texts = %s;
	var linkish = document.querySelectorAll("a, button");
	for (var i = 0; i < texts.length; i++) {
		for (var j = 0; j < linkish.length; j++) {
			var el = linkish[j];
			if (visible(el) && (el.textContent || "").indexOf(texts[i]) !== -1) {
				candidates.push(el);
				break;
			}
		}
	}
	var selectors = %s;
	for (var i = 0; i < selectors.length; i++) {
		var els = document.querySelectorAll(selectors[i]);
		for (var j = 0; j < els.length; j++) {
			if (visible(els[j])) { candidates.push(els[j]); }
		}
	}
	var dataEl = document.querySelector("[data-page='next'], [data-action='next']");
	if (visible(dataEl)) { candidates.push(dataEl); }
	for (var i = 0; i < candidates.length; i++) {
		var el = candidates[i];
		if (!enabled(el)) { continue; }
		el.scrollIntoView({block: "center"});
		try { el.click(); return true; } catch (e) { continue; }
	}
	return false;
})()`, jsStringArray(nextAriaLabels), jsStringArray(nextLinkTexts), jsStringArray(nextSelectors))
}
