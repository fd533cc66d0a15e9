package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racelap/timing-ingest-go/pkg/model"
)

func carWithTimes(num int, times ...float64) *model.CarRecord {
	laps := make([]model.LapRecord, 0, len(times))
	for i, sec := range times {
		laps = append(laps, model.LapRecord{
			Lap: i + 1, Pos: num, ClassPos: 1,
			LapTime: "1:40.000", LapSec: sec, Flag: model.FlagGreen,
		})
	}
	return &model.CarRecord{
		Num: num, Team: "team", Class: "GT3",
		FinishPos: num, FinishPosClass: 1, Laps: laps,
	}
}

func TestGreenPaceCutoffFallbackOnFewSamples(t *testing.T) {
	// 10 qualifying samples are one short of the minimum
	data := raceWith(carWithTimes(1,
		100, 101, 102, 103, 104, 105, 106, 107, 108, 109))
	assert.InDelta(t, 300.0, ComputeGreenPaceCutoff(data), 1e-9)
}

func TestGreenPaceCutoffPercentile(t *testing.T) {
	// 12 samples, percentile index floor(12*0.95)=11 -> largest value
	data := raceWith(carWithTimes(1,
		100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111))
	assert.InDelta(t, 111.0*1.1, ComputeGreenPaceCutoff(data), 1e-9)
}

func TestGreenPaceCutoffLargerSample(t *testing.T) {
	// 40 samples 100..139, index floor(40*0.95)=38 -> value 138
	times := make([]float64, 0, 40)
	for i := 0; i < 40; i++ {
		times = append(times, float64(100+i))
	}
	data := raceWith(carWithTimes(1, times...))
	assert.InDelta(t, 138.0*1.1, ComputeGreenPaceCutoff(data), 1e-9)
}

func TestGreenPaceCutoffFiltersSamples(t *testing.T) {
	data := raceWith(carWithTimes(1,
		100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111))
	car := data.Cars["1"]
	car.Laps[0].Flag = model.FlagFcy     // caution lap excluded
	car.Laps[1].Pit = true               // pit lap excluded
	car.Laps[2].LapSec = 0.5             // degenerate value excluded
	// 9 samples remain -> fallback
	assert.InDelta(t, 300.0, ComputeGreenPaceCutoff(data), 1e-9)
}
