package convert

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, htmlStr string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Object Class:", 1},
		{"Special Containment Procedures", 1},
		{"Description:", 1},
		{"Item #: SCP-173", 1},
		{"Addendum 3-A:", 2},
		{"Interview Log 914-1:", 2},
		{"History:", 3},
		{"Threat Level: High", 3},
		// Level 2 "Recovery Log" is declared before level 3 "Recovery";
		// level-major ordering wins.
		{"Recovery Log:", 2},
		// Unknown labels default to level 2.
		{"Random Heading", 2},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := classifyLevel(tt.label); got != tt.want {
				t.Errorf("classifyLevel(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestSectionPattern(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Description", true},
		{"Description:", true},
		{"Object Class:", true},
		{"Addendum 1:", true},
		{"Test Log 914-1:", true},
		{"special containment procedures:", true},
		// Level 3 labels are not in the promotion gate.
		{"History:", false},
		{"He said hello", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := sectionPattern.MatchString(tt.label); got != tt.want {
				t.Errorf("sectionPattern.MatchString(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestPromoteHeadingsSameParagraphText(t *testing.T) {
	doc := parseDoc(t, `<p><strong>Object Class:</strong> Euclid</p>`)
	promoteHeadings(doc.Selection)

	h1 := doc.Find("h1")
	if h1.Length() != 1 {
		t.Fatalf("expected 1 h1, got %d", h1.Length())
	}
	if got := h1.Text(); got != "Object Class: Euclid" {
		t.Errorf("heading = %q, want %q", got, "Object Class: Euclid")
	}
	if n := doc.Find("p").Length(); n != 0 {
		t.Errorf("expected paragraph to be consumed, %d left", n)
	}
}

func TestPromoteHeadingsBareLabel(t *testing.T) {
	doc := parseDoc(t, `<p><strong>Special Containment Procedures:</strong></p>`)
	promoteHeadings(doc.Selection)

	if got := doc.Find("h1").Text(); got != "Special Containment Procedures" {
		t.Errorf("heading = %q, want %q", got, "Special Containment Procedures")
	}
	if n := doc.Find("p").Length(); n != 0 {
		t.Errorf("expected empty paragraph to be dropped, %d left", n)
	}
}

func TestPromoteHeadingsShortTrailingText(t *testing.T) {
	doc := parseDoc(t, `<p><strong>Addendum 1:</strong> Something happened.</p>`)
	promoteHeadings(doc.Selection)

	if got := doc.Find("h2").Text(); got != "Addendum 1: Something happened." {
		t.Errorf("heading = %q, want %q", got, "Addendum 1: Something happened.")
	}
	if n := doc.Find("p").Length(); n != 0 {
		t.Errorf("expected paragraph to be consumed, %d left", n)
	}
}

func TestPromoteHeadingsFoldsShortSibling(t *testing.T) {
	doc := parseDoc(t, `<p><strong>Discovery:</strong></p><p>Recovered from a drained lake.</p>`)
	promoteHeadings(doc.Selection)

	if got := doc.Find("h2").Text(); got != "Discovery: Recovered from a drained lake." {
		t.Errorf("heading = %q", got)
	}
	if n := doc.Find("p").Length(); n != 0 {
		t.Errorf("expected both paragraphs to be consumed, %d left", n)
	}
}

func TestPromoteHeadingsKeepsLongBody(t *testing.T) {
	body := strings.Repeat("The subject resists all attempts at analysis. ", 4)
	doc := parseDoc(t, `<p><strong>Description:</strong> `+body+`</p>`)
	promoteHeadings(doc.Selection)

	if got := doc.Find("h1").Text(); got != "Description" {
		t.Errorf("heading = %q, want %q", got, "Description")
	}
	p := doc.Find("p")
	if p.Length() != 1 {
		t.Fatalf("expected body paragraph to survive, got %d", p.Length())
	}
	if got := strings.TrimSpace(p.Text()); got != strings.TrimSpace(body) {
		t.Errorf("body = %q", got)
	}
}

func TestPromoteHeadingsSkipsBlockquotes(t *testing.T) {
	doc := parseDoc(t, `<blockquote><p><strong>Description:</strong> Short.</p></blockquote>`)
	promoteHeadings(doc.Selection)

	if n := doc.Find("h1, h2, h3").Length(); n != 0 {
		t.Errorf("expected no promotion inside blockquote, got %d headings", n)
	}
	if n := doc.Find("blockquote p").Length(); n != 1 {
		t.Errorf("expected quoted paragraph to survive, got %d", n)
	}
}

func TestPromoteHeadingsIgnoresUnmatchedLabels(t *testing.T) {
	doc := parseDoc(t, `<p><strong>History:</strong> Something.</p>`)
	promoteHeadings(doc.Selection)

	if n := doc.Find("h1, h2, h3").Length(); n != 0 {
		t.Errorf("expected no promotion for level-3-only label, got %d headings", n)
	}
}

func TestPromoteClassificationBanner(t *testing.T) {
	doc := parseDoc(t, `<div class="anom-bar-container"><div class="anom-bar">`+
		`<span class="item">Item #:</span><span class="number">SCP-4000</span>`+
		`<div class="level">Level 4</div>`+
		`<div class="contain-class"><div class="class-text">Keter</div></div>`+
		`</div></div>`)
	promoteHeadings(doc.Selection)

	if n := doc.Find("div.anom-bar-container").Length(); n != 0 {
		t.Fatal("expected banner container to be replaced")
	}
	want := "**Item #:** SCP-4000 | **Level:** Level 4 | **Object Class:** Keter"
	if got := doc.Text(); !strings.Contains(got, want) {
		t.Errorf("document text %q missing summary %q", got, want)
	}
}

func TestPromoteClassificationBannerEmpty(t *testing.T) {
	doc := parseDoc(t, `<div class="anom-bar-container"><p>No fields here.</p></div>`)
	promoteHeadings(doc.Selection)

	if n := doc.Find("div.anom-bar-container").Length(); n != 1 {
		t.Errorf("expected fieldless banner to be left alone, got %d containers", n)
	}
}
