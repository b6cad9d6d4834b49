package storage

import "sort"

// Rank orders records by score descending, treating a missing score as zero,
// with ties broken by ascending id, and keeps the first limit entries.
func Rank[T any](records []*T, score func(*T) int64, id func(*T) int64, limit int) []*T {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	sort.SliceStable(records, func(i, j int) bool {
		si, sj := score(records[i]), score(records[j])
		if si != sj {
			return si > sj
		}
		return id(records[i]) < id(records[j])
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records
}

// Value dereferences an optional aggregate, reading nil as zero.
func Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
