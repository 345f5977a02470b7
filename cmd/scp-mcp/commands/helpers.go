package commands

import (
	"os"
	"path/filepath"

	"github.com/Laurian/scp-mcp/internal/dataset"
	"github.com/Laurian/scp-mcp/internal/export"
	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/scp"
)

// loadItems loads the selected identifiers, logging and skipping failures.
func loadItems(loader *dataset.Loader, ids []string) []*scp.Item {
	items := make([]*scp.Item, 0, len(ids))
	for _, id := range ids {
		item, err := loader.Load(id)
		if err != nil {
			logger.Warn("could not load item", "id", id, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items
}

// stagedPath mirrors the exporters' sharded layout:
// {dir}/1/7/3/scp-173.md.
func stagedPath(dir string, it *scp.Item) string {
	name := it.Link
	if name == "" {
		name = scp.FileSlug(it.SCP)
	}
	return filepath.Join(dir, filepath.FromSlash(it.ShardPath()), name+".md")
}

// readStaged returns the frontmatter-stripped body of a staged file, or ""
// when the file does not exist.
func readStaged(dir string, it *scp.Item) string {
	data, err := os.ReadFile(stagedPath(dir, it))
	if err != nil {
		return ""
	}
	_, body := export.StripFrontmatter(string(data))
	return body
}
