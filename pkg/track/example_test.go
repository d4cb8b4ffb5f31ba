package track_test

import (
	"fmt"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/track"
)

// Overlapping intervals land on separate lanes; disjoint intervals reuse the
// lowest free one.
func ExampleAllocate() {
	anns := []annotation.Annotation{
		annotation.NewRange(10, 50),
		annotation.NewRange(30, 70),
		annotation.NewRange(60, 80),
	}

	lanes, count := track.Allocate(anns)
	fmt.Println(lanes, count)
	// Output: [0 1 0] 2
}

// Union merges overlapping and adjacent intervals into a single run.
func ExampleUnion() {
	anns := []annotation.Annotation{
		annotation.NewRange(10, 20),
		annotation.NewRange(21, 30),
		annotation.NewRange(50, 60),
	}

	for _, merged := range track.Union(anns) {
		fmt.Printf("%d-%d\n", merged.Start, merged.End)
	}
	// Output:
	// 10-30
	// 50-60
}
