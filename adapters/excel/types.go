package excel

import (
	"fmt"
	"strings"
)

// normalizeHeaders names header cells: blank headers are named "Unnamed: <index>" and
// repeated names get ".1", ".2", ... suffixes so every column stays addressable.
func normalizeHeaders(raw []string, trim bool) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))

	for i, header := range raw {
		if trim {
			header = strings.TrimSpace(header)
		}
		if header == "" {
			header = fmt.Sprintf("Unnamed: %d", i)
		}

		name := header
		for {
			count, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = count + 1
			name = fmt.Sprintf("%s.%d", header, count+1)
		}
		seen[name] = 0
		headers[i] = name
	}
	return headers
}

// nullSet is the lookup form of ExcelConfig.NullMarkers
type nullSet map[string]struct{}

func newNullSet(markers []string) nullSet {
	set := make(nullSet, len(markers))
	for _, marker := range markers {
		set[marker] = struct{}{}
	}
	return set
}

func (s nullSet) contains(value string) bool {
	_, ok := s[value]
	return ok
}
