// Package locator resolves cascading element probes against the live page.
//
// The target page's markup is not stable, so interactive elements are
// found by trying an ordered list of candidate specs and taking the first
// one that matches. A candidate that doesn't match is expected, not an
// error; callers only learn whether the whole cascade failed.
package locator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Kind discriminates how a Spec is matched against the document.
type Kind int

const (
	// KindCSS matches a CSS selector.
	KindCSS Kind = iota
	// KindText matches elements of a given tag whose text contains Value.
	KindText
)

// Spec is one candidate in a probe cascade.
type Spec struct {
	Kind    Kind
	Value   string
	Element string // tag name for KindText ("a", "button", ...)
}

// CSS builds a CSS selector spec.
func CSS(selector string) Spec {
	return Spec{Kind: KindCSS, Value: selector}
}

// Text builds a text-containment spec scoped to a tag name.
func Text(element, text string) Spec {
	return Spec{Kind: KindText, Value: text, Element: element}
}

// Selector returns the query string and matching option for chromedp.
func (s Spec) Selector() (string, chromedp.QueryOption) {
	if s.Kind == KindText {
		return textXPath(s.Element, s.Value), chromedp.BySearch
	}
	return s.Value, chromedp.ByQuery
}

func (s Spec) String() string {
	if s.Kind == KindText {
		return fmt.Sprintf("%s:contains(%q)", s.Element, s.Value)
	}
	return s.Value
}

// textXPath builds an XPath matching elements of the given tag whose
// normalized text contains the given string.
func textXPath(element, text string) string {
	return fmt.Sprintf("//%s[contains(normalize-space(.), %s)]", element, xpathLiteral(text))
}

// xpathLiteral quotes a string for embedding in an XPath expression.
// XPath 1.0 has no escape sequences, so strings containing both quote
// kinds need a concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// FirstVisible probes each spec in order with a bounded wait and returns
// the first visible match. The boolean result is false when the whole
// cascade came up empty; that outcome is for the caller to judge.
func FirstVisible(ctx context.Context, specs []Spec, probeTimeout time.Duration) (*cdp.Node, Spec, bool) {
	return first(ctx, specs, probeTimeout, true)
}

// FirstPresent is FirstVisible without the visibility requirement, for
// structural checks like table presence.
func FirstPresent(ctx context.Context, specs []Spec, probeTimeout time.Duration) (*cdp.Node, Spec, bool) {
	return first(ctx, specs, probeTimeout, false)
}

func first(ctx context.Context, specs []Spec, probeTimeout time.Duration, visible bool) (*cdp.Node, Spec, bool) {
	for _, spec := range specs {
		if ctx.Err() != nil {
			return nil, Spec{}, false
		}

		sel, opt := spec.Selector()
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)

		var nodes []*cdp.Node
		wait := chromedp.WaitReady(sel, opt)
		if visible {
			wait = chromedp.WaitVisible(sel, opt)
		}
		err := chromedp.Run(probeCtx, wait, chromedp.Nodes(sel, &nodes, opt))
		cancel()

		if err == nil && len(nodes) > 0 {
			log.Debug().Stringer("spec", spec).Msg("Locator matched")
			return nodes[0], spec, true
		}
		// Missing candidate is the expected case while probing.
		log.Debug().Stringer("spec", spec).Msg("Locator candidate not found")
	}
	return nil, Spec{}, false
}

// Click dispatches a mouse click on a located node.
func Click(ctx context.Context, node *cdp.Node) error {
	return chromedp.Run(ctx, chromedp.MouseClickNode(node))
}

// Fill clears a located input and types the given value into it.
func Fill(ctx context.Context, node *cdp.Node, value string) error {
	ids := []cdp.NodeID{node.NodeID}
	return chromedp.Run(ctx,
		chromedp.SetValue(ids, "", chromedp.ByNodeID),
		chromedp.SendKeys(ids, value, chromedp.ByNodeID),
	)
}
