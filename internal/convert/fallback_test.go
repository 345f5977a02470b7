package convert

import (
	"strings"
	"testing"
)

func TestConvertTable(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		if got := ConvertTable(""); got != "" {
			t.Errorf("ConvertTable(\"\") = %q", got)
		}
		if got := ConvertTable("   \n"); got != "" {
			t.Errorf("ConvertTable(whitespace) = %q", got)
		}
	})

	t.Run("simple table", func(t *testing.T) {
		got := ConvertTable(`<table><tr><td>Alpha</td><td>Beta</td></tr></table>`)
		if got == "" {
			t.Fatal("expected non-empty conversion")
		}
		if !strings.Contains(got, "Alpha") || !strings.Contains(got, "Beta") {
			t.Errorf("cell text lost: %q", got)
		}
	})
}

func TestConvertDocument(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		if got := ConvertDocument("  "); got != "" {
			t.Errorf("ConvertDocument(whitespace) = %q", got)
		}
	})

	t.Run("fragment gets wrapped", func(t *testing.T) {
		got := ConvertDocument(`<p>Hello there, reader.</p>`)
		if !strings.Contains(got, "Hello there, reader.") {
			t.Errorf("fragment text lost: %q", got)
		}
	})

	t.Run("full document passes through", func(t *testing.T) {
		got := ConvertDocument(`<!DOCTYPE html><html><body><p>Complete document.</p></body></html>`)
		if !strings.Contains(got, "Complete document.") {
			t.Errorf("document text lost: %q", got)
		}
	})

	t.Run("heading markup survives", func(t *testing.T) {
		got := ConvertDocument(`<h2>Containment</h2><p>Chamber specifications follow.</p>`)
		if !strings.Contains(got, "## Containment") {
			t.Errorf("heading not converted: %q", got)
		}
	})
}
