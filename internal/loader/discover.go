package loader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

var yearPattern = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)[0-9]{2})(?:[^0-9]|$)`)

// Discover finds result documents matching a doublestar pattern such as
// "data/**/uk_ge_*_v2.json". The year is taken from the first four digit
// year in each file name. Results are sorted by year.
func Discover(pattern string) ([]DatasetSpec, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", pattern, err)
	}

	seen := make(map[string]string)
	var specs []DatasetSpec
	for _, path := range matches {
		year := YearFromName(filepath.Base(path))
		if year == "" {
			continue
		}
		if prev, dup := seen[year]; dup {
			return nil, fmt.Errorf("both %s and %s hold %s results", prev, path, year)
		}
		seen[year] = path
		specs = append(specs, DatasetSpec{Year: year, Location: path})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Year < specs[j].Year })
	return specs, nil
}

// YearFromName extracts an election year from a file name, or "".
func YearFromName(name string) string {
	m := yearPattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}
