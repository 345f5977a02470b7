package scp

import (
	"encoding/json"
	"time"
)

// Timestamp wraps time.Time with tolerant JSON decoding. Dataset files mix
// RFC3339, bare ISO 8601 without a zone, and epoch seconds; unparseable
// values decode to the zero time rather than failing the whole record.
type Timestamp struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// UnmarshalJSON decodes a timestamp from a string or epoch-seconds number.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var epoch int64
		if err2 := json.Unmarshal(b, &epoch); err2 == nil {
			t.Time = time.Unix(epoch, 0).UTC()
			return nil
		}
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// MarshalJSON encodes the timestamp as RFC3339, or null when zero.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
