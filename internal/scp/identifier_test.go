package scp

import "testing"

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"173", "SCP-173"},
		{"2", "SCP-002"},
		{"682", "SCP-682"},
		{"1234", "SCP-1234"},
		{"scp-002", "SCP-002"},
		{"SCP-173", "SCP-173"},
		{"scp-173-j", "SCP-173-J"},
		{" 049 ", "SCP-049"},
		{"cn-001", "SCP-CN-001"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShardPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SCP-173", "1/7/3"},
		{"scp-1234", "1/2/3/4"},
		{"SCP-173-J", "1/7/3/-/j"},
		{"", "unknown"},
		{"scp-", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ShardPath(tt.in); got != tt.want {
				t.Errorf("ShardPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SCP-173", "scp-173"},
		{"173", "scp-173"},
		{"scp-049", "scp-049"},
	}
	for _, tt := range tests {
		if got := FileSlug(tt.in); got != tt.want {
			t.Errorf("FileSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	if n, ok := ParseNumber("SCP-682"); !ok || n != 682 {
		t.Errorf("ParseNumber(SCP-682) = %d, %v", n, ok)
	}
	if n, ok := ParseNumber("173"); !ok || n != 173 {
		t.Errorf("ParseNumber(173) = %d, %v", n, ok)
	}
	if _, ok := ParseNumber("SCP-173-J"); ok {
		t.Error("ParseNumber(SCP-173-J) should not parse")
	}
}
