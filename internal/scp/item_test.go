package scp

import (
	"encoding/json"
	"testing"
	"time"
)

func TestItemPrimaryContent(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{"markdown preferred", Item{Markdown: "md", RawContent: "html", RawSource: "src"}, "md"},
		{"raw content next", Item{RawContent: "html", RawSource: "src"}, "html"},
		{"raw source last", Item{RawSource: "src"}, "src"},
		{"empty", Item{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.PrimaryContent(); got != tt.want {
				t.Errorf("PrimaryContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItemHasContent(t *testing.T) {
	if (&Item{}).HasContent() {
		t.Error("empty item reports content")
	}
	if !(&Item{RawSource: "x"}).HasContent() {
		t.Error("item with raw source reports no content")
	}
}

func TestItemShardPath(t *testing.T) {
	it := Item{SCP: "SCP-173"}
	if got := it.ShardPath(); got != "1/7/3" {
		t.Errorf("ShardPath() = %q", got)
	}
	empty := Item{}
	if got := empty.ShardPath(); got != "unknown" {
		t.Errorf("ShardPath() on empty item = %q", got)
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2010-04-25T10:11:12Z"`, time.Date(2010, 4, 25, 10, 11, 12, 0, time.UTC)},
		{"bare iso", `"2010-04-25T10:11:12"`, time.Date(2010, 4, 25, 10, 11, 12, 0, time.UTC)},
		{"space separated", `"2010-04-25 10:11:12"`, time.Date(2010, 4, 25, 10, 11, 12, 0, time.UTC)},
		{"date only", `"2010-04-25"`, time.Date(2010, 4, 25, 0, 0, 0, 0, time.UTC)},
		{"epoch seconds", `1272190272`, time.Unix(1272190272, 0).UTC()},
		{"unparseable to zero", `"not a date"`, time.Time{}},
		{"empty to zero", `""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !ts.Time.Equal(tt.want) {
				t.Errorf("Time = %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestTimestampMarshal(t *testing.T) {
	ts := NewTimestamp(time.Date(2010, 4, 25, 10, 11, 12, 0, time.UTC))
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2010-04-25T10:11:12Z"` {
		t.Errorf("marshal = %s", b)
	}

	var zero Timestamp
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("marshal zero = %s", b)
	}
}
