package commands

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Laurian/scp-mcp/internal/scp"
)

// rangePattern matches numeric ranges like "100-200".
var rangePattern = regexp.MustCompile(`^\d+-\d+$`)

// selection describes which items a batch command operates on.
type selection struct {
	ItemOrRange string
	Random      int
	Seed        int64
	SeedSet     bool
}

// resolve picks the item identifiers to process from the full sorted ID
// list. With no selector every item is returned.
func (s selection) resolve(allIDs []string) ([]string, error) {
	if len(allIDs) == 0 {
		return nil, fmt.Errorf("no items in dataset index")
	}

	if s.Random > 0 {
		if s.Random >= len(allIDs) {
			return allIDs, nil
		}
		seed := s.Seed
		if !s.SeedSet {
			seed = time.Now().UnixNano()
		}
		r := rand.New(rand.NewSource(seed))
		picked := make([]string, 0, s.Random)
		for _, i := range r.Perm(len(allIDs))[:s.Random] {
			picked = append(picked, allIDs[i])
		}
		return picked, nil
	}

	if s.ItemOrRange == "" {
		return allIDs, nil
	}

	if rangePattern.MatchString(s.ItemOrRange) {
		parts := strings.SplitN(s.ItemOrRange, "-", 2)
		start, _ := strconv.Atoi(parts[0])
		end, _ := strconv.Atoi(parts[1])
		if start > end {
			start, end = end, start
		}
		var inRange []string
		for _, id := range allIDs {
			if n, ok := scp.ParseNumber(id); ok && n >= start && n <= end {
				inRange = append(inRange, id)
			}
		}
		if len(inRange) == 0 {
			return nil, fmt.Errorf("no items found in range %d-%d", start, end)
		}
		return inRange, nil
	}

	id := scp.NormalizeID(s.ItemOrRange)
	for _, known := range allIDs {
		if known == id {
			return []string{id}, nil
		}
	}
	return nil, fmt.Errorf("item %s not found in dataset", id)
}

// addSelectionFlags wires the shared --random/--seed flags; the positional
// item-or-range argument is read by selectionFromArgs.
func selectionFromArgs(args []string, random int, seed int64, seedSet bool) selection {
	s := selection{Random: random, Seed: seed, SeedSet: seedSet}
	if len(args) > 0 {
		s.ItemOrRange = args[0]
	}
	return s
}
