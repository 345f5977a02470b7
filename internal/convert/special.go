package convert

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// classificationBarKeywords gate promotion of classification-bar divs.
var classificationBarKeywords = []string{
	"classified", "restricted", "confidential", "top secret",
}

// transformSpecialBlocks rewrites the structured widgets of newer articles
// into plain heading and inline elements. Runs after heading promotion, so
// aggregate banners have already been flattened and the per-widget rules
// here only see standalone occurrences.
func transformSpecialBlocks(root *goquery.Selection) {
	flattenFoldedBlocks(root)
	flattenTabViews(root)
	promoteClassificationBars(root)
	promoteAnomalyBars(root)
	promoteContainmentClass(root)
	markRedacted(root)
	italicizeAnomalous(root)
}

// flattenFoldedBlocks turns a folded disclosure block into a level-3
// heading named after its toggle link.
func flattenFoldedBlocks(root *goquery.Selection) {
	root.Find("div.collapsible-block-folded").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.collapsible-block-link").First()
		if link.Length() == 0 {
			return
		}
		s.ReplaceWithHtml("<h3>" + html.EscapeString(strings.TrimSpace(link.Text())) + "</h3>")
	})
}

// flattenTabViews converts a tab widget into sequential sections, one
// level-3 heading per panel, numbered in original tab order.
func flattenTabViews(root *goquery.Selection) {
	root.Find("div.yui-navset").Each(func(_ int, s *goquery.Selection) {
		content := s.Find("div.yui-content").First()
		if content.Length() == 0 {
			return
		}
		content.Find("div.yui-tab-content").Each(func(i int, panel *goquery.Selection) {
			panel.PrependHtml(fmt.Sprintf("<h3>Section %d</h3>", i+1))
		})
		s.ReplaceWithSelection(content)
	})
}

// promoteClassificationBars turns classification bars carrying actual
// classification keywords into level-2 headings; others are left alone.
func promoteClassificationBars(root *goquery.Selection) {
	root.Find("div.classification-bar").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		for _, kw := range classificationBarKeywords {
			if strings.Contains(lower, kw) {
				s.ReplaceWithHtml("<h2>" + html.EscapeString(text) + "</h2>")
				return
			}
		}
	})
}

// promoteAnomalyBars turns a standalone anomaly bar into a level-1 heading
// combining item, number, and (when present) level.
func promoteAnomalyBars(root *goquery.Selection) {
	root.Find("div.anom-bar").Each(func(_ int, s *goquery.Selection) {
		item := strings.TrimSpace(s.Find("span.item").First().Text())
		number := strings.TrimSpace(s.Find("span.number").First().Text())
		if item == "" || number == "" {
			return
		}
		text := item + " " + number
		if level := strings.TrimSpace(s.Find("div.level").First().Text()); level != "" {
			text += " - " + level
		}
		s.ReplaceWithHtml("<h1>" + html.EscapeString(text) + "</h1>")
	})
}

// promoteContainmentClass turns a standalone containment-class widget into
// a level-2 "Object Class" heading.
func promoteContainmentClass(root *goquery.Selection) {
	root.Find("div.contain-class").Each(func(_ int, s *goquery.Selection) {
		classText := strings.TrimSpace(s.Find("div.class-text").First().Text())
		if classText == "" {
			return
		}
		s.ReplaceWithHtml("<h2>" + html.EscapeString("Object Class: "+classText) + "</h2>")
	})
}

// markRedacted rewrites redaction spans so the censoring is explicit in
// text form. Already-bracketed text is left untouched.
func markRedacted(root *goquery.Selection) {
	root.Find("span.redacted, div.redacted").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if strings.HasPrefix(text, "[") {
			return
		}
		s.SetText("[REDACTED: " + text + "]")
	})
}

// italicizeAnomalous retags anomalous-text markers as plain emphasis.
func italicizeAnomalous(root *goquery.Selection) {
	root.Find("span.anomalous, div.anomalous").Each(func(_ int, s *goquery.Selection) {
		s.Get(0).Data = "em"
		s.RemoveAttr("class")
	})
}
