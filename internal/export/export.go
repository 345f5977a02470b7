// Package export writes items to the staging area as Markdown, JSON, and
// AI-summary files, sharded one directory level per identifier character.
package export

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/Laurian/scp-mcp/internal/scp"
)

// ConvertFunc turns raw HTML into Markdown. A no-content result is an
// error; exporters fall back to raw code blocks.
type ConvertFunc func(html string) (string, error)

// Report accumulates batch counters. Safe for concurrent use.
type Report struct {
	mu       sync.Mutex
	Exported int
	Skipped  int
	Failed   int
	Errors   []string
}

func (r *Report) exported() {
	r.mu.Lock()
	r.Exported++
	r.mu.Unlock()
}

func (r *Report) skipped() {
	r.mu.Lock()
	r.Skipped++
	r.mu.Unlock()
}

func (r *Report) failed(msg string) {
	r.mu.Lock()
	r.Failed++
	r.Errors = append(r.Errors, msg)
	r.mu.Unlock()
}

// itemPath builds the sharded output path for an item, e.g.
// {root}/1/7/3/scp-173{ext}.
func itemPath(root string, it *scp.Item, ext string) string {
	name := it.Link
	if name == "" {
		name = scp.FileSlug(it.SCP)
	}
	return filepath.Join(root, filepath.FromSlash(it.ShardPath()), name+ext)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
