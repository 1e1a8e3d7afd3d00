package runtable

import (
	"math"
	"sort"
)

// Group is the set of records sharing one key.
type Group[K comparable] struct {
	Key     K
	Records []Record
}

// GroupBy buckets records by keyOf and returns the groups ordered by less.
// Records keep their input order within a group.
func GroupBy[K comparable](records []Record, keyOf func(Record) K, less func(a, b K) bool) []Group[K] {
	index := make(map[K]int)
	var groups []Group[K]
	for _, rec := range records {
		k := keyOf(rec)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return less(groups[i].Key, groups[j].Key)
	})
	return groups
}

// Aggregate applies fn to every group and collects one output row per group.
func Aggregate[K comparable, T any](groups []Group[K], fn func(K, []Record) T) []T {
	out := make([]T, 0, len(groups))
	for _, g := range groups {
		out = append(out, fn(g.Key, g.Records))
	}
	return out
}

// ByKey groups records by (benchmark, version, size).
func ByKey(records []Record) []Group[Key] {
	return GroupBy(records, Record.Key, Key.Less)
}

// ByPairKey groups records by (benchmark, size).
func ByPairKey(records []Record) []Group[PairKey] {
	return GroupBy(records, Record.PairKey, PairKey.Less)
}

// Values extracts the named metric from records, skipping missing values.
func Values(records []Record, column string) []float64 {
	out := make([]float64, 0, len(records))
	for _, rec := range records {
		v := rec.Metric(column)
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Filter returns the records whose version equals one of versions.
func Filter(records []Record, versions ...string) []Record {
	allowed := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		allowed[v] = struct{}{}
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if _, ok := allowed[rec.Version]; ok {
			out = append(out, rec)
		}
	}
	return out
}
