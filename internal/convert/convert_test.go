package convert

import (
	"errors"
	"strings"
	"testing"
)

func TestHTMLToMarkdownRejectsShortInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  "},
		{"short fragment", "<p>hi</p>"},
		{"just under the floor", strings.Repeat("x", 49)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := HTMLToMarkdown(tt.in)
			if !errors.Is(err, ErrNoContent) {
				t.Fatalf("err = %v, want ErrNoContent", err)
			}
			if out != "" {
				t.Errorf("out = %q, want empty", out)
			}
		})
	}
}

func TestHTMLToMarkdownBasicDocument(t *testing.T) {
	in := `<!DOCTYPE html><html><head><title>T</title></head><body><p>Hello</p></body></html>`
	out, err := HTMLToMarkdown(in)
	if err != nil {
		t.Fatalf("HTMLToMarkdown: %v", err)
	}
	if !strings.Contains(out, "Hello") {
		t.Errorf("output missing content: %q", out)
	}
}

func TestHTMLToMarkdownArticle(t *testing.T) {
	procedures := "SCP-9999 is to be contained in a reinforced chamber measuring " +
		"five by five meters, monitored at all times by no fewer than two guards."
	description := "SCP-9999 is a granite statue of unknown origin recovered " +
		"from a quarry. It exhibits locomotion when not under direct observation."
	in := `<html><body><div id="page-content">` +
		`<p><strong>Object Class:</strong> Euclid</p>` +
		`<p><strong>Special Containment Procedures:</strong> ` + procedures + `</p>` +
		`<p><strong>Description:</strong> ` + description + `</p>` +
		`</div></body></html>`

	out, err := HTMLToMarkdown(in)
	if err != nil {
		t.Fatalf("HTMLToMarkdown: %v", err)
	}
	for _, want := range []string{
		"# Object Class: Euclid",
		"# Special Containment Procedures",
		"# Description",
		procedures,
		description,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHTMLToMarkdownRedactedSpan(t *testing.T) {
	pad := `<p>Recovered documentation follows, partially censored for release.</p>`

	t.Run("span text is marked", func(t *testing.T) {
		in := `<div id="page-content">` + pad +
			`<p>Subject <span class="redacted">name withheld</span> escaped.</p></div>`
		out, err := HTMLToMarkdown(in)
		if err != nil {
			t.Fatalf("HTMLToMarkdown: %v", err)
		}
		if !strings.Contains(out, "Subject [REDACTED: name withheld] escaped.") {
			t.Errorf("output missing redaction marker:\n%s", out)
		}
	})

	t.Run("already marked text is not rewrapped", func(t *testing.T) {
		in := `<div id="page-content">` + pad +
			`<p>Subject <span class="redacted">[REDACTED: foo]</span> escaped.</p></div>`
		out, err := HTMLToMarkdown(in)
		if err != nil {
			t.Fatalf("HTMLToMarkdown: %v", err)
		}
		if strings.Contains(out, "[REDACTED: [REDACTED:") {
			t.Errorf("redaction double-wrapped:\n%s", out)
		}
		if !strings.Contains(out, "[REDACTED: foo]") {
			t.Errorf("output missing redaction marker:\n%s", out)
		}
	})
}

func TestHTMLToMarkdownFallbackOnBareText(t *testing.T) {
	// No walkable elements at all: the primary pipeline yields nothing and
	// the whole-document fallback converter takes over.
	in := strings.Repeat("Plain narrative text with no markup whatsoever. ", 3)
	out, err := HTMLToMarkdown(in)
	if err != nil {
		t.Fatalf("HTMLToMarkdown: %v", err)
	}
	if !strings.Contains(out, "Plain narrative text") {
		t.Errorf("fallback output missing text: %q", out)
	}
}

func TestHTMLToMarkdownAbsenceWhenNothingSurvives(t *testing.T) {
	in := `<div id="page-content"><script>var a = 1; function noop() { return a; }</script></div>`
	out, err := HTMLToMarkdown(in)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v (out %q), want ErrNoContent", err, out)
	}
}
