package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// walkSelector lists every element kind the linearizer emits a fragment
// for, visited in document order.
const walkSelector = "h1, h2, h3, h4, h5, h6, p, blockquote, ul, ol, div, table, img, br"

// walkBatchSize bounds how many elements are mapped per batch. Batching is
// purely a memory-management measure; output order and content are
// identical to a single pass.
const walkBatchSize = 50

// linearize walks the transformed tree and joins per-element Markdown
// fragments with blank lines, then normalizes whitespace.
func linearize(root *goquery.Selection) string {
	parts := classificationSummary(root)

	var batch []*goquery.Selection
	root.Find(walkSelector).Each(func(_ int, s *goquery.Selection) {
		batch = append(batch, s)
	})
	for start := 0; start < len(batch); start += walkBatchSize {
		end := start + walkBatchSize
		if end > len(batch) {
			end = len(batch)
		}
		for _, s := range batch[start:end] {
			name := goquery.NodeName(s)
			if name == "script" || name == "style" {
				continue
			}
			if strings.TrimSpace(s.Text()) == "" && name != "br" {
				continue
			}
			if fragment := elementMarkdown(s); fragment != "" {
				parts = append(parts, fragment)
			}
		}
	}

	return normalizeWhitespace(strings.Join(parts, "\n\n"))
}

// classificationSummary special-cases the leading classification table into
// bold summary fields, then removes the table so the generic walk cannot
// emit it a second time.
func classificationSummary(root *goquery.Selection) []string {
	table := root.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	var parts []string
	rows := table.Find("tr")
	if rows.Length() >= 2 {
		if cols := rows.Eq(0).Find("td, th"); cols.Length() >= 2 {
			item := strings.TrimSpace(cols.Eq(0).Text())
			level := strings.TrimSpace(cols.Eq(1).Text())
			if strings.HasPrefix(item, "Item #:") {
				item = strings.TrimSpace(strings.TrimPrefix(item, "Item #:"))
			}
			parts = append(parts, "## "+item, "**Level:** "+level)
		}
		if cols := rows.Eq(1).Find("td, th"); cols.Length() >= 2 {
			objectClass := strings.TrimSpace(cols.Eq(0).Text())
			classified := strings.TrimSpace(cols.Eq(1).Text())
			if strings.HasPrefix(objectClass, "Object Class:") {
				objectClass = strings.TrimSpace(strings.TrimPrefix(objectClass, "Object Class:"))
			}
			parts = append(parts, "**Object Class:** "+objectClass)
			if classified != "" && !strings.HasPrefix(classified, "Classified") {
				parts = append(parts, "**Classified:** "+classified)
			}
		}
	}

	detach(table.Get(0))
	return parts
}

// elementMarkdown maps one element to its Markdown fragment. The mapping
// depends only on element kind, attributes, and descendant text.
func elementMarkdown(s *goquery.Selection) string {
	name := goquery.NodeName(s)
	text := strings.TrimSpace(s.Text())

	switch name {
	case "p":
		return text
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if text == "" {
			return ""
		}
		return strings.Repeat("#", int(name[1]-'0')) + " " + text
	case "blockquote":
		return blockquoteMarkdown(text)
	case "ul":
		var items []string
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := strings.TrimSpace(li.Text()); t != "" {
				items = append(items, "- "+t)
			}
		})
		return strings.Join(items, "\n")
	case "ol":
		// Numbering tracks list position, so an empty item leaves a gap
		// rather than renumbering what follows.
		var items []string
		s.Find("li").Each(func(i int, li *goquery.Selection) {
			if t := strings.TrimSpace(li.Text()); t != "" {
				items = append(items, fmt.Sprintf("%d. %s", i+1, t))
			}
		})
		return strings.Join(items, "\n")
	case "strong", "b":
		if text == "" {
			return ""
		}
		return "**" + text + "**"
	case "em", "i":
		if text == "" {
			return ""
		}
		return "*" + text + "*"
	case "a":
		href := s.AttrOr("href", "")
		if href != "" && text != "" {
			return "[" + text + "](" + href + ")"
		}
		return text
	case "br":
		return "\n"
	case "div":
		return divMarkdown(s, text)
	case "table":
		outer, err := goquery.OuterHtml(s)
		if err != nil {
			return ""
		}
		return ConvertTable(outer)
	case "img":
		return imageMarkdown(s)
	default:
		return text
	}
}

func blockquoteMarkdown(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, "> "+line)
	}
	return strings.Join(out, "\n")
}

// divMarkdown applies the class-specific div rules; unclassed divs fall
// back to their plain text.
func divMarkdown(s *goquery.Selection, text string) string {
	switch {
	case s.HasClass("collapsible-block"):
		content := s.Find("div.collapsible-block-unfolded").First().
			Find("div.collapsible-block-content").First()
		return strings.TrimSpace(content.Text())
	case s.HasClass("anomalous"):
		if text == "" {
			return ""
		}
		return "*" + text + "*"
	case s.HasClass("redacted"):
		if text == "" {
			return ""
		}
		if strings.HasPrefix(text, "[") {
			return text
		}
		return "[REDACTED: " + text + "]"
	case s.HasClass("scp-image-block"):
		img := s.Find("img").First()
		if img.Length() == 0 {
			return ""
		}
		return imageMarkdown(img)
	default:
		return text
	}
}

func imageMarkdown(s *goquery.Selection) string {
	alt := s.AttrOr("alt", "")
	src := s.AttrOr("src", "")
	switch {
	case alt != "" && src != "":
		return "![" + alt + "](" + src + ")"
	case src != "":
		return "![Image](" + src + ")"
	default:
		return ""
	}
}

var (
	newlineRuns   = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
)

// normalizeWhitespace collapses newline runs and trailing whitespace. The
// three passes are idempotent: running them on already-normalized text is
// the identity.
func normalizeWhitespace(s string) string {
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
