// Package dataset reads the raw wiki dataset snapshots from disk.
//
// A snapshot lives in a directory named scp-{timestamp}-{commit} containing
// an items/ directory with an index.json mapping canonical identifiers to
// per-shard content files. The newest snapshot (highest directory name, the
// timestamp sorts lexicographically) is always used.
package dataset

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/scp"
)

// ErrNotFound is returned when an identifier has no record in the current
// snapshot, or when no snapshot exists at all.
var ErrNotFound = errors.New("dataset: item not found")

// Loader reads items from the newest snapshot under its root directory.
type Loader struct {
	root string
}

// New returns a loader rooted at the raw data directory.
func New(root string) *Loader {
	return &Loader{root: root}
}

// LatestDir returns the newest snapshot directory, or "" when none exists.
func (l *Loader) LatestDir() string {
	matches, err := filepath.Glob(filepath.Join(l.root, "scp-*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	dirs := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	if len(dirs) == 0 {
		return ""
	}
	sort.Strings(dirs)
	return dirs[len(dirs)-1]
}

// Commit extracts the dataset commit from the snapshot directory name
// (scp-{timestamp}-{commit}), or "" when it cannot be determined.
func (l *Loader) Commit() string {
	dir := l.LatestDir()
	if dir == "" {
		return ""
	}
	parts := strings.Split(filepath.Base(dir), "-")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-1]
}

func (l *Loader) itemsPath() (string, error) {
	dir := l.LatestDir()
	if dir == "" {
		return "", fmt.Errorf("no snapshot under %s: %w", l.root, ErrNotFound)
	}
	return filepath.Join(dir, "items"), nil
}

type indexEntry struct {
	ContentFile string `json:"content_file"`
}

// IDs returns every identifier present in the snapshot index, sorted.
func (l *Loader) IDs() ([]string, error) {
	items, err := l.itemsPath()
	if err != nil {
		return nil, err
	}
	index, err := readJSONFile[map[string]indexEntry](filepath.Join(items, "index.json"))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads one item by identifier. The identifier may be given in any
// accepted spelling; it is normalized before the index lookup. The returned
// item carries the dataset commit and, when raw content is present, its
// hex-encoded SHA-1.
func (l *Loader) Load(identifier string) (*scp.Item, error) {
	label := scp.NormalizeID(identifier)

	items, err := l.itemsPath()
	if err != nil {
		return nil, err
	}
	index, err := readJSONFile[map[string]indexEntry](filepath.Join(items, "index.json"))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	entry, ok := index[label]
	if !ok || entry.ContentFile == "" {
		return nil, fmt.Errorf("%s: %w", label, ErrNotFound)
	}

	shard, err := readJSONFile[map[string]*scp.Item](filepath.Join(items, entry.ContentFile))
	if err != nil {
		return nil, fmt.Errorf("read content file %s: %w", entry.ContentFile, err)
	}
	item, ok := shard[label]
	if !ok || item == nil {
		logger.Debug("index entry points at shard without item", "id", label, "file", entry.ContentFile)
		return nil, fmt.Errorf("%s: %w", label, ErrNotFound)
	}

	item.ContentFile = entry.ContentFile
	if commit := l.Commit(); commit != "" {
		item.DatasetCommit = commit
	}
	if item.RawContent != "" {
		sum := sha1.Sum([]byte(item.RawContent))
		item.ContentSHA1 = hex.EncodeToString(sum[:])
	}
	return item, nil
}

func readJSONFile[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
