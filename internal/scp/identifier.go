package scp

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeID converts any accepted identifier spelling ("173", "scp-173",
// "SCP-173", "scp-173-j") to the canonical "SCP-XXX" form. Numeric parts are
// zero-padded to three digits.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if isDigits(id) {
		n, _ := strconv.Atoi(id)
		return fmt.Sprintf("SCP-%03d", n)
	}
	if len(id) >= 4 && strings.EqualFold(id[:4], "scp-") {
		num := id[4:]
		if isDigits(num) {
			n, _ := strconv.Atoi(num)
			return fmt.Sprintf("SCP-%03d", n)
		}
		return strings.ToUpper(id)
	}
	up := strings.ToUpper(id)
	if !strings.HasPrefix(up, "SCP-") {
		return "SCP-" + up
	}
	return up
}

// ShardPath splits the identifier suffix into one directory level per
// character: "SCP-1234" -> "1/2/3/4". Identifiers without a usable suffix
// map to "unknown".
func ShardPath(id string) string {
	suffix := strings.TrimSpace(id)
	if len(suffix) >= 4 && strings.EqualFold(suffix[:4], "scp-") {
		suffix = suffix[4:]
	}
	suffix = strings.ToLower(suffix)
	if suffix == "" {
		return "unknown"
	}
	levels := make([]string, 0, len(suffix))
	for _, r := range suffix {
		levels = append(levels, string(r))
	}
	return strings.Join(levels, "/")
}

// FileSlug returns the canonical lowercase file name stem for an identifier
// or page link (always "scp-" prefixed).
func FileSlug(id string) string {
	slug := strings.ToLower(strings.TrimSpace(id))
	if !strings.HasPrefix(slug, "scp-") {
		slug = "scp-" + slug
	}
	return slug
}

// ParseNumber extracts the numeric part of an identifier ("SCP-682" -> 682).
func ParseNumber(id string) (int, bool) {
	norm := NormalizeID(id)
	num := strings.TrimPrefix(norm, "SCP-")
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func itoa(n int) string { return strconv.Itoa(n) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
