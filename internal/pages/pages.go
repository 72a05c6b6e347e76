// Package pages parses page selections such as "1,3-5" into sorted page lists.
package pages

import (
	"fmt"
	"strconv"
	"strings"

	"artifex/internal/services"
)

// Range is an inclusive span of 1-based page numbers with First <= Last.
type Range struct {
	First int
	Last  int
}

// Set holds the parsed ranges in input order. A nil Set means every page.
// Ranges are expanded only by Select, against the document's page count.
type Set []Range

// ParseRanges parses a comma-separated list of pages and ranges. Reversed
// ranges are swapped and duplicates collapse. An empty expression yields nil.
func ParseRanges(expr string) (Set, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	set := make(Set, 0)
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		startText, endText, isRange := strings.Cut(part, "-")
		start, err := parsePage(startText, part)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parsePage(endText, part); err != nil {
				return nil, err
			}
		}
		if start > end {
			start, end = end, start
		}
		set = append(set, Range{First: start, Last: end})
	}
	return set, nil
}

func parsePage(text, entry string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, "pages", "parse", fmt.Sprintf("invalid page entry %q", entry), err)
	}
	return n, nil
}

// Select returns the pages of set that exist in a document of total pages,
// in ascending order. A nil set selects 1..total.
func Select(set Set, total int) []int {
	if set == nil {
		out := make([]int, 0, max(total, 0))
		for p := 1; p <= total; p++ {
			out = append(out, p)
		}
		return out
	}
	if total <= 0 {
		return []int{}
	}
	selected := make([]bool, total+1)
	for _, r := range set {
		for p := max(r.First, 1); p <= min(r.Last, total); p++ {
			selected[p] = true
		}
	}
	out := make([]int, 0, total)
	for p := 1; p <= total; p++ {
		if selected[p] {
			out = append(out, p)
		}
	}
	return out
}
