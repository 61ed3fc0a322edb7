package export

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Record is one row of scraped data.
type Record map[string]any

// SortRecords returns a copy of records stably sorted by the value under
// key. Numbers compare numerically and everything else by its string form.
// Records without key sort last. An empty key returns an unsorted copy.
func SortRecords(records []Record, key string) []Record {
	sorted := slices.Clone(records)
	if key == "" {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b Record) int {
		av, aok := a[key]
		bv, bok := b[key]
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		return compareValues(av, bv)
	})
	return sorted
}

// Columns returns the union of keys over records in sorted order.
func Columns(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func compareValues(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return cmp.Compare(af, bf)
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
