package track

import (
	"sort"

	"github.com/protviz/protviz/pkg/annotation"
)

// Allocate assigns each annotation to the lowest-indexed lane where it does
// not overlap any previously placed annotation. Intervals are closed on both
// ends, so two annotations sharing a boundary position conflict and land in
// different lanes.
//
// Candidates are considered sorted by (Start, End, input index), which makes
// the assignment a pure function of the input: equal inputs always produce
// equal lane layouts. The returned slice is parallel to anns; the count is the
// total number of lanes used.
func Allocate(anns []annotation.Annotation) (lanes []int, count int) {
	order := make([]int, len(anns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := anns[order[x]], anns[order[y]]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	lanes = make([]int, len(anns))
	var ends []int // rightmost occupied position per lane
	for _, idx := range order {
		a := anns[idx]
		placed := false
		for l, end := range ends {
			if end < a.Start {
				lanes[idx] = l
				ends[l] = a.End
				placed = true
				break
			}
		}
		if !placed {
			lanes[idx] = len(ends)
			ends = append(ends, a.End)
		}
	}
	return lanes, len(ends)
}

// Union merges the intervals of anns into a minimal set of disjoint ranges.
// Overlapping intervals merge, as do directly adjacent ones (end+1 == start),
// since at residue granularity they cover a contiguous run. The result is
// sorted by start and is a fixed point: Union(Union(x)) == Union(x).
func Union(anns []annotation.Annotation) []annotation.Annotation {
	if len(anns) == 0 {
		return nil
	}
	spans := make([][2]int, len(anns))
	for i, a := range anns {
		spans[i] = [2]int{a.Start, a.End}
	}
	sort.Slice(spans, func(x, y int) bool {
		if spans[x][0] != spans[y][0] {
			return spans[x][0] < spans[y][0]
		}
		return spans[x][1] < spans[y][1]
	})

	merged := [][2]int{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s[0] <= last[1]+1 {
			if s[1] > last[1] {
				last[1] = s[1]
			}
			continue
		}
		merged = append(merged, s)
	}

	out := make([]annotation.Annotation, len(merged))
	for i, m := range merged {
		out[i] = annotation.NewRange(m[0], m[1])
	}
	return out
}
