package locator

import (
	"strings"
	"testing"
)

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Next", "'Next'"},
		{`Say "hi"`, `'Say "hi"'`},
		{"Don't stop", `"Don't stop"`},
		{`Mix 'n "match"`, `concat('Mix ', "'", 'n "match"')`},
	}
	for _, tt := range tests {
		if got := xpathLiteral(tt.in); got != tt.want {
			t.Errorf("xpathLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTextXPath(t *testing.T) {
	got := textXPath("button", "Sign In")
	want := "//button[contains(normalize-space(.), 'Sign In')]"
	if got != want {
		t.Errorf("textXPath = %s, want %s", got, want)
	}
}

func TestSpecSelector(t *testing.T) {
	sel, _ := CSS("input[type='email']").Selector()
	if sel != "input[type='email']" {
		t.Errorf("CSS selector = %s", sel)
	}

	sel, _ = Text("a", "Log In").Selector()
	if !strings.HasPrefix(sel, "//a[") {
		t.Errorf("text selector is not an XPath: %s", sel)
	}
}

func TestSpecString(t *testing.T) {
	if s := CSS(".login").String(); s != ".login" {
		t.Errorf("CSS String = %s", s)
	}
	if s := Text("button", "Sign In").String(); s != `button:contains("Sign In")` {
		t.Errorf("Text String = %s", s)
	}
}
