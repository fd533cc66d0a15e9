package processing

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/racelap/timing-ingest-go/pkg/model"
)

// Empirically chosen constants. The frontend depends on the exact values,
// keep them in sync with the pinned tests.
const (
	greenPaceFallback   = 300.0
	greenPacePercentile = 0.95
	greenPaceFactor     = 1.1
	minPaceSamples      = 11
	minSampleSec        = 1.0
)

// ComputeGreenPaceCutoff returns the lap time above which a green flag lap
// counts as anomalously slow. Samples are all green, non-pit laps above a
// degenerate-value floor. Small or pathological datasets fall back to a
// conservative default that treats everything as normal pace.
func ComputeGreenPaceCutoff(data *model.RaceData) float64 {
	samples := make([]float64, 0)
	for _, car := range data.Cars {
		greenLaps := lo.Filter(car.Laps, func(rec model.LapRecord, _ int) bool {
			return rec.Flag == model.FlagGreen && !rec.Pit && rec.LapSec > minSampleSec
		})
		samples = append(samples, lo.Map(greenLaps,
			func(rec model.LapRecord, _ int) float64 { return rec.LapSec })...)
	}
	if len(samples) < minPaceSamples {
		return greenPaceFallback
	}
	sort.Float64s(samples)
	idx := int(math.Floor(float64(len(samples)) * greenPacePercentile))
	return samples[idx] * greenPaceFactor
}
