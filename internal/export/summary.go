package export

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/scp"
	"github.com/Laurian/scp-mcp/internal/summary"
)

// DefaultMaxConcurrent bounds in-flight summary calls per batch.
const DefaultMaxConcurrent = 5

// summaryRate paces completions to stay under provider rate limits.
var summaryRate = rate.Limit(2)

// SummaryExporter generates AI summaries and stages them as Markdown files
// with frontmatter. Failures are logged and counted, never fatal to the
// batch.
type SummaryExporter struct {
	OutDir        string
	Provider      summary.Provider
	MaxConcurrent int
	Force         bool
	DryRun        bool
}

// ExportAll summarizes the given items with a bounded worker pool.
func (e *SummaryExporter) ExportAll(ctx context.Context, items []*scp.Item, report *Report) error {
	maxConcurrent := e.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	limiter := rate.NewLimiter(summaryRate, 1)

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrent)
	for _, it := range items {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(it *scp.Item) {
			defer wg.Done()
			defer func() { <-sem }()
			e.exportOne(ctx, it, limiter, report)
		}(it)
	}
	wg.Wait()
	return nil
}

func (e *SummaryExporter) exportOne(ctx context.Context, it *scp.Item, limiter *rate.Limiter, report *Report) {
	path := itemPath(e.OutDir, it, ".md")

	if !e.Force {
		if _, err := os.Stat(path); err == nil {
			report.skipped()
			return
		}
	}

	content := it.PrimaryContent()
	if strings.TrimSpace(content) == "" {
		logger.Warn("no content to summarize", "id", it.SCP)
		report.skipped()
		return
	}

	if err := limiter.Wait(ctx); err != nil {
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return
	}
	text, err := e.Provider.Summarize(ctx, it.SCP, it.Title, content)
	if err != nil {
		logger.Warn("summary generation failed", "id", it.SCP, "error", err)
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return
	}

	rendered, err := renderSummary(it, text)
	if err != nil {
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return
	}
	if e.DryRun {
		report.exported()
		return
	}
	if err := writeFileAtomic(path, []byte(rendered)); err != nil {
		report.failed(fmt.Sprintf("%s: %v", it.SCP, err))
		return
	}
	report.exported()
}

func renderSummary(it *scp.Item, text string) (string, error) {
	fm := newFrontmatter(it)
	fm.LicenseNote = aiSummaryLicenseNote
	fm.ContentType = "ai_summary"
	head, err := fm.render()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n# " + it.Title + "\n\n")
	b.WriteString("## Summary\n\n")
	b.WriteString(text + "\n")
	return b.String(), nil
}
