package shows

import (
	"sort"
	"time"
)

// SplitByTime partitions entries around the reference instant now: entries
// strictly before now are past (most recent first), everything else is
// upcoming (soonest first). An entry starting exactly at now is upcoming.
// Callers capture now once per request so an entry cannot change sides
// mid-computation.
func SplitByTime[T any](entries []T, startOf func(T) time.Time, now time.Time) (past, upcoming []T) {
	past = make([]T, 0, len(entries))
	upcoming = make([]T, 0, len(entries))
	for _, e := range entries {
		if startOf(e).Before(now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(past, func(i, j int) bool {
		return startOf(past[i]).After(startOf(past[j]))
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return startOf(upcoming[i]).Before(startOf(upcoming[j]))
	})
	return past, upcoming
}
