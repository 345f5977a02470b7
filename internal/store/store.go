// Package store persists imported items in a local SQLite table.
//
// The table is flat: list-valued fields (tags, images, hubs, references)
// and the edit history are serialized as JSON text columns, and each import
// replaces the whole table rather than merging.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/scp"
)

// ErrNotFound is returned when no row matches the requested identifier.
var ErrNotFound = errors.New("store: item not found")

// DefaultTable is the primary items table name.
const DefaultTable = "items"

// Store wraps the SQLite database holding imported items.
type Store struct {
	db    *sql.DB
	table string
}

// Open opens (creating if needed) the database at path. The parent
// directory is created when missing.
func Open(path, table string) (*Store, error) {
	if table == "" {
		table = DefaultTable
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db, table: table}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// "references" is an SQL keyword and must stay quoted everywhere.
const schemaColumns = `
	link TEXT PRIMARY KEY,
	scp TEXT NOT NULL,
	scp_number INTEGER NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	series TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	rating INTEGER NOT NULL DEFAULT 0,
	created_at TEXT,
	creator TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	domain TEXT NOT NULL DEFAULT '',
	page_id TEXT NOT NULL DEFAULT '',
	raw_source TEXT NOT NULL DEFAULT '',
	raw_content TEXT NOT NULL DEFAULT '',
	markdown TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	images TEXT NOT NULL DEFAULT '[]',
	hubs TEXT NOT NULL DEFAULT '[]',
	"references" TEXT NOT NULL DEFAULT '[]',
	history TEXT NOT NULL DEFAULT '[]',
	content_file TEXT NOT NULL DEFAULT '',
	content_sha1 TEXT NOT NULL DEFAULT '',
	dataset_commit TEXT NOT NULL DEFAULT ''`

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (%s)`, s.table, schemaColumns))
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_scp ON %q (scp)`, s.table, s.table))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Replace atomically replaces the table contents with the given batch.
func (s *Store) Replace(ctx context.Context, items []scp.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q`, s.table)); err != nil {
		return fmt.Errorf("clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q (
		link, scp, scp_number, title, series, tags, rating, created_at,
		creator, url, domain, page_id, raw_source, raw_content, markdown,
		summary, images, hubs, "references", history, content_file,
		content_sha1, dataset_commit
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range items {
		it := &items[i]
		var createdAt any
		if it.CreatedAt != nil && !it.CreatedAt.IsZero() {
			createdAt = it.CreatedAt.Format(time.RFC3339)
		}
		_, err := stmt.ExecContext(ctx,
			it.Link, it.SCP, it.SCPNumber, it.Title, it.Series,
			jsonList(it.Tags), it.Rating, createdAt, it.Creator, it.URL,
			it.Domain, it.PageID, it.RawSource, it.RawContent, it.Markdown,
			it.Summary, jsonList(it.Images), jsonList(it.Hubs),
			jsonList(it.References), jsonHistory(it.History),
			it.ContentFile, it.ContentSHA1, it.DatasetCommit,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", it.Link, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	logger.Debug("store replaced", "table", s.table, "items", len(items))
	return nil
}

// Get returns the item for an identifier in any accepted spelling.
func (s *Store) Get(ctx context.Context, identifier string) (*scp.Item, error) {
	label := scp.NormalizeID(identifier)
	link := scp.FileSlug(identifier)

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT %s FROM %q WHERE link = ? OR scp = ? LIMIT 1`, selectColumns, s.table),
		link, label)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", label, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", label, err)
	}
	return item, nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %q`, s.table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Dump returns stored items ordered by item number. A limit of 0 means no
// limit.
func (s *Store) Dump(ctx context.Context, limit, offset int) ([]scp.Item, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM %q ORDER BY scp_number, link LIMIT ? OFFSET ?`,
		selectColumns, s.table), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}
	defer rows.Close()

	var items []scp.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("dump scan: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

const selectColumns = `link, scp, scp_number, title, series, tags, rating,
	created_at, creator, url, domain, page_id, raw_source, raw_content,
	markdown, summary, images, hubs, "references", history, content_file,
	content_sha1, dataset_commit`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*scp.Item, error) {
	var (
		it        scp.Item
		createdAt sql.NullString
		tags      string
		images    string
		hubs      string
		refs      string
		history   string
	)
	err := row.Scan(
		&it.Link, &it.SCP, &it.SCPNumber, &it.Title, &it.Series, &tags,
		&it.Rating, &createdAt, &it.Creator, &it.URL, &it.Domain, &it.PageID,
		&it.RawSource, &it.RawContent, &it.Markdown, &it.Summary, &images,
		&hubs, &refs, &history, &it.ContentFile, &it.ContentSHA1,
		&it.DatasetCommit,
	)
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
			it.CreatedAt = scp.NewTimestamp(t)
		}
	}
	it.Tags = fromJSONList(tags)
	it.Images = fromJSONList(images)
	it.Hubs = fromJSONList(hubs)
	it.References = fromJSONList(refs)
	if err := json.Unmarshal([]byte(history), &it.History); err != nil {
		logger.Debug("bad history column", "link", it.Link, "error", err)
	}
	return &it, nil
}

func jsonList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func fromJSONList(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil || len(out) == 0 {
		return nil
	}
	return out
}

func jsonHistory(history []scp.HistoryEntry) string {
	if len(history) == 0 {
		return "[]"
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "[]"
	}
	return string(b)
}
