package processing

import (
	"slices"
	"sort"

	"github.com/racelap/timing-ingest-go/pkg/model"
)

// lapRef points at one (car, lap) record. The flat arena is built once and
// grouped by lap so the per-lap passes avoid repeated scans over all cars.
type lapRef struct {
	carNum string
	car    *model.CarRecord
	rec    *model.LapRecord
}

// orderedCarNums returns the car numbers sorted ascending by numeric car
// number. All per-lap passes iterate in this order, which makes tie breaks
// and output deterministic.
func orderedCarNums(data *model.RaceData) []string {
	nums := make([]string, 0, len(data.Cars))
	for num := range data.Cars {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool {
		return data.Cars[nums[i]].Num < data.Cars[nums[j]].Num
	})
	return nums
}

func lapIndex(data *model.RaceData) map[int][]lapRef {
	byLap := make(map[int][]lapRef)
	for _, num := range orderedCarNums(data) {
		car := data.Cars[num]
		for i := range car.Laps {
			rec := &car.Laps[i]
			byLap[rec.Lap] = append(byLap[rec.Lap], lapRef{carNum: num, car: car, rec: rec})
		}
	}
	return byLap
}

// RecomputeClassPositions re-ranks every lap. The raw class position
// columns of most exporters are unreliable, so both the overall and the
// class position are rewritten from the overall running order: per lap,
// cars are stably sorted by their reported overall position and assigned a
// 1-based rank, then ranked again within their class. True ties should not
// occur; if they do, the original car order decides.
func RecomputeClassPositions(data *model.RaceData) {
	byLap := lapIndex(data)
	for lapNo := 1; lapNo <= data.MaxLap; lapNo++ {
		refs := slices.Clone(byLap[lapNo])
		slices.SortStableFunc(refs, func(a, b lapRef) int {
			return a.rec.Pos - b.rec.Pos
		})
		classRank := make(map[string]int)
		for i, ref := range refs {
			ref.rec.Pos = i + 1
			classRank[ref.car.Class]++
			ref.rec.ClassPos = classRank[ref.car.Class]
		}
	}
}
