package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Laurian/scp-mcp/internal/scp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scp.db"), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleItems() []scp.Item {
	created := scp.NewTimestamp(time.Date(2008, 7, 25, 0, 0, 0, 0, time.UTC))
	return []scp.Item{
		{
			Link:          "scp-002",
			SCP:           "SCP-002",
			SCPNumber:     2,
			Title:         "SCP-002 - The \"Living\" Room",
			Series:        "series-1",
			Tags:          []string{"euclid", "alive"},
			Rating:        1200,
			CreatedAt:     created,
			Creator:       "Gears",
			URL:           "https://scp-wiki.wikidot.com/scp-002",
			Domain:        scp.DefaultDomain,
			Markdown:      "# SCP-002",
			References:    []string{"scp-173"},
			History:       []scp.HistoryEntry{{Author: "Gears", Comment: "initial"}},
			DatasetCommit: "abc123",
		},
		{
			Link:      "scp-173",
			SCP:       "SCP-173",
			SCPNumber: 173,
			Title:     "SCP-173 - The Sculpture",
		},
	}
}

func TestStoreReplaceAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Replace(ctx, sampleItems()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	item, err := s.Get(ctx, "SCP-002")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Title != "SCP-002 - The \"Living\" Room" {
		t.Errorf("Title = %q", item.Title)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "euclid" {
		t.Errorf("Tags = %v", item.Tags)
	}
	if len(item.References) != 1 || item.References[0] != "scp-173" {
		t.Errorf("References = %v", item.References)
	}
	if len(item.History) != 1 || item.History[0].Author != "Gears" {
		t.Errorf("History = %v", item.History)
	}
	if item.CreatedAt == nil || item.CreatedAt.Year() != 2008 {
		t.Errorf("CreatedAt = %v", item.CreatedAt)
	}
}

func TestStoreGetByAnySpelling(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Replace(ctx, sampleItems()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	for _, id := range []string{"scp-002", "SCP-002", "2", "002"} {
		if _, err := s.Get(ctx, id); err != nil {
			t.Errorf("Get(%q): %v", id, err)
		}
	}
}

func TestStoreGetNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "SCP-404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreReplaceOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Replace(ctx, sampleItems()); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	second := []scp.Item{{Link: "scp-049", SCP: "SCP-049", SCPNumber: 49}}
	if err := s.Replace(ctx, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
	if _, err := s.Get(ctx, "SCP-002"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old row survived replace: %v", err)
	}
}

func TestStoreDump(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Replace(ctx, sampleItems()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	items, err := s.Dump(ctx, 0, 0)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Dump returned %d items", len(items))
	}
	if items[0].SCPNumber > items[1].SCPNumber {
		t.Errorf("dump not ordered by number: %d before %d", items[0].SCPNumber, items[1].SCPNumber)
	}

	limited, err := s.Dump(ctx, 1, 1)
	if err != nil {
		t.Fatalf("dump limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Link != "scp-173" {
		t.Errorf("Dump(1, 1) = %+v", limited)
	}
}
