package convert

import (
	"strings"
	"testing"
)

// linearized parses a pre-cleaned fragment and runs only the linearizer.
func linearized(t *testing.T, htmlStr string) string {
	t.Helper()
	doc := parseDoc(t, htmlStr)
	return linearize(mainContent(doc))
}

func TestLinearizeElements(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraph",
			html: `<div id="page-content"><p>Hello world.</p></div>`,
			want: "Hello world.",
		},
		{
			name: "heading",
			html: `<div id="page-content"><h2>Addendum</h2></div>`,
			want: "## Addendum",
		},
		{
			name: "blockquote",
			html: `<div id="page-content"><blockquote>Line one.
Line two.</blockquote></div>`,
			want: "> Line one.\n> Line two.",
		},
		{
			name: "unordered list",
			html: `<div id="page-content"><ul><li>Alpha</li><li>Beta</li></ul></div>`,
			want: "- Alpha\n- Beta",
		},
		{
			name: "ordered list keeps position through empty items",
			html: `<div id="page-content"><ol><li>First</li><li> </li><li>Third</li></ol></div>`,
			want: "1. First\n3. Third",
		},
		{
			name: "link",
			html: `<div id="page-content"><p><a href="/scp-173">SCP-173</a></p></div>`,
			want: "SCP-173",
		},
		{
			name: "line break joins paragraphs",
			html: `<div id="page-content"><p>A</p><br><p>B</p></div>`,
			want: "A\n\nB",
		},
		{
			name: "anomalous div",
			html: `<div id="page-content"><div class="anomalous">strange text</div></div>`,
			want: "*strange text*",
		},
		{
			name: "redacted div",
			html: `<div id="page-content"><div class="redacted">name withheld</div></div>`,
			want: "[REDACTED: name withheld]",
		},
		{
			name: "already-redacted div is not rewrapped",
			html: `<div id="page-content"><div class="redacted">[REDACTED: foo]</div></div>`,
			want: "[REDACTED: foo]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := linearized(t, tt.html); got != tt.want {
				t.Errorf("linearize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinearizeSkipsBareImages(t *testing.T) {
	got := linearized(t, `<div id="page-content"><p>Before.</p><img src="/x.png" alt="X"><p>After.</p></div>`)
	if got != "Before.\n\nAfter." {
		t.Errorf("linearize = %q", got)
	}
}

func TestLinearizeImageBlock(t *testing.T) {
	doc := parseDoc(t, `<div class="scp-image-block">`+
		`<img src="/i/173.jpg" alt="SCP-173"><p>SCP-173 in containment.</p></div>`)
	s := doc.Find("div.scp-image-block").First()
	if got := elementMarkdown(s); got != "![SCP-173](/i/173.jpg)" {
		t.Errorf("elementMarkdown = %q", got)
	}
}

func TestLinearizeCollapsibleBlock(t *testing.T) {
	doc := parseDoc(t, `<div class="collapsible-block">`+
		`<div class="collapsible-block-unfolded">`+
		`<div class="collapsible-block-content">Hidden interview content.</div>`+
		`</div></div>`)
	s := doc.Find("div.collapsible-block").First()
	if got := elementMarkdown(s); got != "Hidden interview content." {
		t.Errorf("elementMarkdown = %q", got)
	}
}

func TestClassificationTableSummary(t *testing.T) {
	got := linearized(t, `<div id="page-content"><table>`+
		`<tr><td>Item #: SCP-002</td><td>Level 3/4</td></tr>`+
		`<tr><td>Object Class: Keter</td><td>Classified</td></tr>`+
		`</table><p>Body.</p></div>`)

	for _, want := range []string{"## SCP-002", "**Level:** Level 3/4", "**Object Class:** Keter", "Body."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// The table must not be emitted a second time by the generic walk.
	if strings.Contains(got, "Item #:") {
		t.Errorf("classification table emitted twice:\n%s", got)
	}
	if strings.Contains(got, "**Classified:**") {
		t.Errorf("redundant Classified field emitted:\n%s", got)
	}
}

func TestClassificationTableSecondColumn(t *testing.T) {
	got := linearized(t, `<div id="page-content"><table>`+
		`<tr><td>Item #: SCP-055</td><td>Level 5</td></tr>`+
		`<tr><td>Object Class: Keter</td><td>Top Secret</td></tr>`+
		`</table></div>`)
	if !strings.Contains(got, "**Classified:** Top Secret") {
		t.Errorf("output missing Classified field:\n%s", got)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newline runs collapse", "A\n\n\n\n\nB", "A\n\nB"},
		{"trailing spaces stripped", "A  \nB", "A\nB"},
		{"combined", "A \t\n\n\n\nB", "A\n\nB"},
		{"already normalized", "A\n\nB\nC", "A\n\nB\nC"},
		{"surrounding whitespace trimmed", "\n\nA\n\n", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWhitespace(tt.in)
			if got != tt.want {
				t.Fatalf("normalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := normalizeWhitespace(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}
