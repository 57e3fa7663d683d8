package export

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	urlutil "github.com/hied-data/deitrack/internal/utils/url"
	"github.com/hied-data/deitrack/pkg/models"
)

// SaveMarkdown writes a per-record report, converting each record's
// detail markup to Markdown. Relative links are resolved against
// baseURL.
func SaveMarkdown(records []models.Record, filepath, baseURL string) error {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	// Add rule to resolve relative links
	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}

			resolved := urlutil.Resolve(baseURL, href)
			title, hasTitle := selec.Attr("title")
			var titlePart string
			if hasTitle {
				titlePart = fmt.Sprintf(" %q", title)
			}
			str := fmt.Sprintf("[%s](%s)%s", selec.Text(), resolved, titlePart)
			return &str
		},
	})

	var b strings.Builder
	b.WriteString("# DEI Legislation Tracker\n\n")
	fmt.Fprintf(&b, "%d records\n\n", len(records))

	for _, rec := range records {
		fmt.Fprintf(&b, "## %s (%s)\n\n", rec.Institution, rec.State)
		if rec.Impacts != "" {
			fmt.Fprintf(&b, "**Impacts:** %s\n\n", rec.Impacts)
		}
		if rec.StateStatus != "" {
			fmt.Fprintf(&b, "**Status:** %s\n\n", rec.StateStatus)
		}
		if rec.DetailsHTML != "" {
			mdStr, err := converter.ConvertString(rec.DetailsHTML)
			if err != nil {
				return fmt.Errorf("failed to convert details for %s: %w", rec.RowID, err)
			}
			b.WriteString(strings.TrimSpace(mdStr))
			b.WriteString("\n\n")
		} else if rec.Details != "" {
			b.WriteString(rec.Details)
			b.WriteString("\n\n")
		}
		for _, link := range rec.SourceLinks {
			fmt.Fprintf(&b, "- <%s>\n", link)
		}
		if len(rec.SourceLinks) > 0 {
			b.WriteString("\n")
		}
	}

	return os.WriteFile(filepath, []byte(b.String()), 0644)
}
