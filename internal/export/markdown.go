package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/scp"
)

// MarkdownExporter writes one Markdown file per item: YAML frontmatter,
// title, and the best available content rendering.
type MarkdownExporter struct {
	OutDir  string
	Convert ConvertFunc
	DryRun  bool
	Force   bool
}

// Export writes the item's Markdown file and returns its path. Existing
// files are skipped unless Force is set.
func (e *MarkdownExporter) Export(it *scp.Item, report *Report) (string, error) {
	path := itemPath(e.OutDir, it, ".md")

	if !e.Force {
		if _, err := os.Stat(path); err == nil {
			report.skipped()
			return path, nil
		}
	}

	content, err := e.render(it)
	if err != nil {
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return "", err
	}

	if e.DryRun {
		logger.Info("dry run, would write", "path", path)
		report.exported()
		return path, nil
	}
	if err := writeFileAtomic(path, []byte(content)); err != nil {
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	report.exported()
	return path, nil
}

func (e *MarkdownExporter) render(it *scp.Item) (string, error) {
	fm, err := newFrontmatter(it).render()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(fm)
	b.WriteString("\n# " + it.Title + "\n\n")
	b.WriteString("## Content\n\n")

	body, note := e.body(it)
	if note != "" {
		b.WriteString("*Note: " + note + "*\n\n")
	}
	if body == "" {
		b.WriteString("*No content available*\n")
	} else {
		b.WriteString(body + "\n")
	}
	return b.String(), nil
}

// body picks the best content rendering: stored markdown, converted HTML,
// then raw code-block fallbacks.
func (e *MarkdownExporter) body(it *scp.Item) (body, note string) {
	if it.Markdown != "" {
		return it.Markdown, ""
	}
	if it.RawContent != "" {
		if e.Convert != nil {
			md, err := e.Convert(it.RawContent)
			if err == nil && strings.TrimSpace(md) != "" {
				return md, "Content converted from HTML to Markdown"
			}
			logger.Warn("conversion yielded no content, using raw HTML", "id", it.SCP)
		}
		return "```html\n" + it.RawContent + "\n```", "Content displayed as raw HTML"
	}
	if it.RawSource != "" {
		return "```\n" + it.RawSource + "\n```", "Content displayed as raw source"
	}
	return "", ""
}
