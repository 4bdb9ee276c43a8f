package catalog

import (
	"github.com/sahilm/fuzzy"
)

// Similar returns up to limit existing names that fuzzy-match query,
// best match first. Exact matches (after normalization) are skipped since
// they would be rejected as duplicates anyway.
func Similar(query string, names []string, limit int) []string {
	q := NormalizeName(query)
	if q == "" || limit <= 0 {
		return nil
	}

	var out []string
	for _, m := range fuzzy.Find(q, names) {
		if NormalizeName(m.Str) == q {
			continue
		}
		out = append(out, m.Str)
		if len(out) == limit {
			break
		}
	}
	return out
}
