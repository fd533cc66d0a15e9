package processing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racelap/timing-ingest-go/pkg/model"
)

// carWithLaps builds a car whose laps carry the given flags starting at
// lap 1.
func carWithLaps(num int, class string, flags ...model.Flag) *model.CarRecord {
	laps := make([]model.LapRecord, 0, len(flags))
	for i, flag := range flags {
		laps = append(laps, model.LapRecord{
			Lap: i + 1, Pos: num, ClassPos: 1,
			LapTime: "1:40.000", LapSec: 100.0, Flag: flag,
		})
	}
	return &model.CarRecord{
		Num: num, Team: "team", Class: class,
		FinishPos: num, FinishPosClass: 1, Laps: laps,
	}
}

func raceWith(cars ...*model.CarRecord) *model.RaceData {
	data := &model.RaceData{Cars: make(map[string]*model.CarRecord)}
	for _, car := range cars {
		data.Cars[itoa(car.Num)] = car
		if lastLap := car.Laps[len(car.Laps)-1].Lap; lastLap > data.MaxLap {
			data.MaxLap = lastLap
		}
	}
	data.TotalCars = len(cars)
	return data
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

const (
	g = model.FlagGreen
	y = model.FlagFcy
	r = model.FlagRed
)

func TestDetectFcyWindowsMajorityVote(t *testing.T) {
	// lap 5: two of three cars report FCY (67% > 50%)
	data := raceWith(
		carWithLaps(1, "GT3", g, g, g, g, y, g),
		carWithLaps(2, "GT3", g, g, g, g, y, g),
		carWithLaps(3, "GT3", g, g, g, g, g, g),
	)
	assert.Equal(t, []model.FcyWindow{{StartLap: 5, EndLap: 5}},
		DetectFcyWindows(data))
}

func TestDetectFcyWindowsExactHalfIsNotCaution(t *testing.T) {
	data := raceWith(
		carWithLaps(1, "GT3", g, y, g),
		carWithLaps(2, "GT3", g, g, g),
	)
	assert.Empty(t, DetectFcyWindows(data))
}

func TestDetectFcyWindowsMerge(t *testing.T) {
	data := raceWith(
		carWithLaps(1, "GT3", g, y, y, y, g, y),
		carWithLaps(2, "GT3", g, y, y, y, g, y),
	)
	assert.Equal(t, []model.FcyWindow{
		{StartLap: 2, EndLap: 4},
		{StartLap: 6, EndLap: 6},
	}, DetectFcyWindows(data))
}

func TestDetectFcyWindowsClosesAtMaxLap(t *testing.T) {
	data := raceWith(
		carWithLaps(1, "GT3", g, g, y, y),
		carWithLaps(2, "GT3", g, g, y, y),
	)
	assert.Equal(t, []model.FcyWindow{{StartLap: 3, EndLap: 4}},
		DetectFcyWindows(data))
}

func TestDetectFcyWindowsToleratesStaleReporters(t *testing.T) {
	data := raceWith(
		carWithLaps(1, "GT3", g, y, g),
		carWithLaps(2, "GT3", g, y, g),
		carWithLaps(3, "GT3", g, g, y), // stale flag state
	)
	assert.Equal(t, []model.FcyWindow{{StartLap: 2, EndLap: 2}},
		DetectFcyWindows(data))
}

func TestDetectFcyWindowsEmptyRace(t *testing.T) {
	data := &model.RaceData{Cars: make(map[string]*model.CarRecord), MaxLap: 10}
	assert.Empty(t, DetectFcyWindows(data))
}

func TestDetectFcyWindowsRedIsNotCaution(t *testing.T) {
	data := raceWith(
		carWithLaps(1, "GT3", g, r, g),
		carWithLaps(2, "GT3", g, r, g),
	)
	assert.Empty(t, DetectFcyWindows(data))
}
