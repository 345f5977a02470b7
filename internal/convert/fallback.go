package convert

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/Laurian/scp-mcp/internal/logger"
)

// ConvertTable converts a single table's outer markup through the
// general-purpose converter. The per-element mapping cannot faithfully
// flatten merged cells and irregular column counts; this path trades
// structural fidelity for guaranteed non-crashing output. Failures yield
// "", never an error.
func ConvertTable(tableHTML string) string {
	if strings.TrimSpace(tableHTML) == "" {
		return ""
	}
	return convertStandalone(wrapFragment(tableHTML, "Table"))
}

// ConvertDocument converts an entire document through the general-purpose
// converter, wrapping bare fragments in a minimal document skeleton first.
// Used as the last resort when the rule-based pipeline yields nothing.
func ConvertDocument(rawHTML string) string {
	trimmed := strings.TrimSpace(rawHTML)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		rawHTML = wrapFragment(rawHTML, "SCP Content")
	}
	return convertStandalone(rawHTML)
}

func wrapFragment(fragment, title string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
%s
</body>
</html>`, title, fragment)
}

// convertStandalone stages the document in a scoped temporary file and
// converts it. The file is removed on every exit path. Any failure,
// including a converter panic, yields "".
func convertStandalone(doc string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("fallback converter panic", "panic", r)
			out = ""
		}
	}()

	f, err := os.CreateTemp("", "scp-mcp-*.html")
	if err != nil {
		logger.Debug("temp file create failed", "error", err)
		return ""
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			logger.Debug("temp file cleanup failed", "path", path, "error", err)
		}
	}()

	if _, err := f.WriteString(doc); err != nil {
		f.Close()
		return ""
	}
	if err := f.Close(); err != nil {
		return ""
	}

	staged, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	markdown, err := md.ConvertString(string(staged))
	if err != nil {
		logger.Debug("fallback conversion failed", "error", err)
		return ""
	}
	return strings.TrimSpace(markdown)
}
