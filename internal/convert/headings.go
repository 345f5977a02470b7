package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// headingPatternSource is the ordered heading classification table. Labels
// are tried level-major (1 before 2 before 3) and declaration order within a
// level; the first match wins. Labels matching nothing default to level 2.
var headingPatternSource = []struct {
	level int
	expr  string
}{
	{1, `^Item #?:?\s*SCP-\d+`},
	{1, `^Object Class:?`},
	{1, `^Special Containment Procedures[\s\w\d\-\.]*:?`},
	{1, `^Description:?`},

	{2, `^Addendum[\s\w\d\-\.]*:?`},
	{2, `^Discovery:?`},
	{2, `^Interview Log[\s\w\d\-\.]*:?`},
	{2, `^Test Log[\s\w\d\-\.]*:?`},
	{2, `^Incident[\s\w\d\-\.]*:?`},
	{2, `^Experiment[\s\w\d\-\.]*:?`},
	{2, `^Update[\s\w\d\-\.]*:?`},
	{2, `^Appendix[\s\w\d\-\.]*:?`},
	{2, `^Status Report[\s\w\d\-\.]*:?`},
	{2, `^Timeline[\s\w\d\-\.]*:?`},
	{2, `^Personnel[\s\w\d\-\.]*:?`},
	{2, `^Technical Specifications?:?`},
	{2, `^Recovery Log[\s\w\d\-\.]*:?`},
	{2, `^Classification[\s\w\d\-\.]*:?`},
	{2, `^Cross-[Rr]eference[\s\w\d\-\.]*:?`},
	{2, `^Foundation[\s\w\d\-\.]*:?`},
	{2, `^Site[\s\w\d\-\.]*:?`},
	{2, `^Clearance[\s\w\d\-\.]*:?`},
	{2, `^Access[\s\w\d\-\.]*:?`},
	{2, `^Warning[\s\w\d\-\.]*:?`},
	{2, `^Notice[\s\w\d\-\.]*:?`},
	{2, `^Memo[\s\w\d\-\.]*:?`},
	{2, `^Report[\s\w\d\-\.]*:?`},
	{2, `^Log[\s\w\d\-\.]*:?`},
	{2, `^Analysis[\s\w\d\-\.]*:?`},
	{2, `^Summary[\s\w\d\-\.]*:?`},

	{3, `^History:?`},
	{3, `^Background:?`},
	{3, `^Recovery:?`},
	{3, `^Origin:?`},
	{3, `^Note:?`},
	{3, `^Researcher Note:?`},
	{3, `^Administrator Note:?`},
	{3, `^HMCL Note:?`},
	{3, `^Overseer Note:?`},
	{3, `^Threat Level:?`},
	{3, `^\d+\.?\s*`},
	{3, `^[A-Z][a-z]+ed?:\s*`},
	{3, `^[A-Z][a-z]+ing?:\s*`},
}

type headingPattern struct {
	level int
	re    *regexp.Regexp
}

var headingPatterns = compileHeadingPatterns()

// sectionPattern gates promotion: only labels fully matching a level 1 or 2
// pattern become headings. Level 3 patterns are deliberately excluded from
// the gate; they only refine the level of labels that already pass.
var sectionPattern = compileSectionPattern()

func compileHeadingPatterns() []headingPattern {
	out := make([]headingPattern, 0, len(headingPatternSource))
	for _, p := range headingPatternSource {
		out = append(out, headingPattern{p.level, regexp.MustCompile(`(?i)` + p.expr)})
	}
	return out
}

func compileSectionPattern() *regexp.Regexp {
	var alts []string
	for _, p := range headingPatternSource {
		if p.level <= 2 {
			alts = append(alts, strings.TrimPrefix(p.expr, "^"))
		}
	}
	return regexp.MustCompile(`(?i)^(` + strings.Join(alts, "|") + `)$`)
}

// classifyLevel returns the heading level for a section label.
func classifyLevel(label string) int {
	for _, p := range headingPatterns {
		if p.re.MatchString(label) {
			return p.level
		}
	}
	return 2
}

// promoteHeadings rewrites paragraphs that open with a bold section label
// into real heading elements, and flattens aggregate classification banners
// into a single summary line. Paragraphs inside blockquotes are exempt so
// quoted transcripts keep their bold speaker labels.
func promoteHeadings(root *goquery.Selection) {
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		promoteParagraph(p)
	})
	promoteClassificationBanner(root)
}

const maxFoldedTextLen = 100

func promoteParagraph(p *goquery.Selection) {
	if p.ParentsFiltered("blockquote").Length() > 0 {
		return
	}
	strong := p.Find("strong").First()
	if strong.Length() == 0 {
		return
	}
	pNode := p.Get(0)
	if pNode.FirstChild == nil || pNode.FirstChild != strong.Get(0) {
		return
	}

	label := strings.TrimSpace(strong.Text())
	if !sectionPattern.MatchString(label) {
		return
	}
	level := classifyLevel(label)
	headingText := strings.TrimRight(label, ":")

	// Short trailing text in the same paragraph joins the heading.
	var rest []string
	for child := pNode.FirstChild; child != nil; child = child.NextSibling {
		if child == strong.Get(0) {
			continue
		}
		if t := strings.TrimSpace(nodeText(child)); t != "" {
			rest = append(rest, t)
		}
	}
	if len(rest) > 0 {
		combined := strings.Join(rest, " ")
		if len(combined) < maxFoldedTextLen && !looksLikeURL(combined) {
			insertHeadingBefore(p, level, headingText+": "+combined)
			detach(pNode)
			return
		}
	}

	// A short plain next sibling folds into the heading.
	next := p.Next()
	if next.Length() > 0 && next.Is("p, div") &&
		next.Find("div, blockquote, ul, ol, table").Length() == 0 {
		nextText := strings.TrimSpace(next.Text())
		if nextText != "" && len(nextText) < maxFoldedTextLen && !looksLikeURL(nextText) {
			insertHeadingBefore(p, level, headingText+": "+nextText)
			detach(next.Get(0))
			detach(pNode)
			return
		}
	}

	insertHeadingBefore(p, level, headingText)
	detach(strong.Get(0))
	if strings.TrimSpace(p.Text()) == "" {
		detach(pNode)
	}
}

// promoteClassificationBanner collapses the structured anomaly banner into
// one pipe-delimited line of bold fields. The whole container is replaced,
// so the per-field widget rules never see its sub-elements.
func promoteClassificationBanner(root *goquery.Selection) {
	root.Find("div.anom-bar-container").Each(func(_ int, container *goquery.Selection) {
		var fields []string

		item := strings.TrimSpace(container.Find("span.item").First().Text())
		number := strings.TrimSpace(container.Find("span.number").First().Text())
		if item != "" && number != "" {
			fields = append(fields, fmt.Sprintf("**%s** %s", item, number))
		}
		if level := strings.TrimSpace(container.Find("div.level").First().Text()); level != "" {
			fields = append(fields, "**Level:** "+level)
		}
		for _, c := range []struct{ selector, label string }{
			{"div.contain-class", "Object Class"},
			{"div.second-class", "Secondary Class"},
			{"div.disrupt-class", "Disruption Class"},
			{"div.risk-class", "Risk Class"},
		} {
			text := strings.TrimSpace(container.Find(c.selector).First().
				Find("div.class-text").First().Text())
			if text != "" {
				fields = append(fields, fmt.Sprintf("**%s:** %s", c.label, text))
			}
		}

		if len(fields) > 0 {
			container.ReplaceWithHtml("<div>" + html.EscapeString(strings.Join(fields, " | ")) + "</div>")
		}
	})
}

func insertHeadingBefore(s *goquery.Selection, level int, text string) {
	s.BeforeHtml(fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(text), level))
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http") || strings.HasPrefix(s, "www")
}
