// Package convert turns raw wiki HTML into clean, hierarchically structured
// Markdown suitable for LLM consumption.
//
// The pipeline runs four passes over a single mutable document tree:
// sanitization (boilerplate and interactive markup removal), heading
// promotion (inline bold section labels become real headings), special-block
// transformation (classification bars, collapsible blocks, redaction
// markers, tab containers), and linearization into Markdown fragments. When
// the rule-based path produces nothing, the whole document is handed to a
// general-purpose HTML-to-Markdown converter as a last resort.
package convert

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Laurian/scp-mcp/internal/logger"
)

// ErrNoContent is returned when the input yields no usable Markdown. It is
// the designated absence signal: callers processing many documents log and
// skip, they never treat it as fatal.
var ErrNoContent = errors.New("convert: no usable content")

// minContentLength is the floor below which input is rejected outright.
// Degenerate fragments (nav stubs, empty pages) are shorter than this.
const minContentLength = 50

// HTMLToMarkdown converts raw HTML to Markdown.
//
// Inputs shorter than minContentLength after trimming return ErrNoContent.
// If the rule-based pipeline yields nothing, the entire original input is
// run through the fallback converter; if that is also empty, ErrNoContent.
// Internal failures at any stage are converted to ErrNoContent, never
// propagated.
func HTMLToMarkdown(rawHTML string) (markdown string, err error) {
	if len(strings.TrimSpace(rawHTML)) < minContentLength {
		return "", ErrNoContent
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("conversion failed, treating as no content", "panic", r)
			markdown = ""
			err = ErrNoContent
		}
	}()

	out := convertPrimary(rawHTML)
	if out == "" {
		logger.Debug("primary pipeline empty, trying fallback converter")
		out = ConvertDocument(rawHTML)
	}
	if out == "" {
		return "", ErrNoContent
	}
	return out, nil
}

// convertPrimary runs the rule-based pipeline and returns its Markdown, or
// "" when the document produced nothing.
func convertPrimary(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		logger.Debug("html parse failed", "error", err)
		return ""
	}

	main := mainContent(doc)
	sanitize(main)
	promoteHeadings(main)
	transformSpecialBlocks(main)
	return linearize(main)
}

// mainContent selects the article body, preferring the wiki's main content
// container over the whole page.
func mainContent(doc *goquery.Document) *goquery.Selection {
	if s := doc.Find("div#page-content").First(); s.Length() > 0 {
		return s
	}
	if s := doc.Find("body").First(); s.Length() > 0 {
		return s
	}
	return doc.Selection
}
