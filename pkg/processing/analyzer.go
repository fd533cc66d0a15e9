// Package processing derives the annotation layer of a race: caution
// windows, the green pace baseline, re-ranked positions and the pit and
// settle markers used by the lap chart.
package processing

import (
	"fmt"
	"strconv"

	"github.com/racelap/timing-ingest-go/pkg/model"
)

// defaultSettleWindow is the number of consecutive laps a car must hold a
// position before it counts as settled.
const defaultSettleWindow = 5

const pitMarkerYOffset = -10

type Analyzer struct {
	data         *model.RaceData
	penalized    map[string]map[int]bool
	settleWindow int
}

type AnalyzerOption func(a *Analyzer)

// WithPenalizedLaps marks pit laps that carried a penalty. The signal is
// format specific; formats without one simply omit this option.
func WithPenalizedLaps(penalized map[string][]int) AnalyzerOption {
	return func(a *Analyzer) {
		for carNum, laps := range penalized {
			lookup := make(map[int]bool, len(laps))
			for _, lapNo := range laps {
				lookup[lapNo] = true
			}
			a.penalized[carNum] = lookup
		}
	}
}

// WithSettleWindow overrides the settle detection run length.
func WithSettleWindow(laps int) AnalyzerOption {
	return func(a *Analyzer) {
		if laps > 0 {
			a.settleWindow = laps
		}
	}
}

func NewAnalyzer(data *model.RaceData, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		data:         data,
		penalized:    make(map[string]map[int]bool),
		settleWindow: defaultSettleWindow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze mutates the race data (fcy windows, green pace cutoff, re-ranked
// positions) and returns the derived annotation set.
func (a *Analyzer) Analyze() model.AnnotationSet {
	a.data.Fcy = DetectFcyWindows(a.data)
	RecomputeClassPositions(a.data)
	a.data.GreenPaceCutoff = ComputeGreenPaceCutoff(a.data)

	annotations := make(model.AnnotationSet)
	for _, carNum := range orderedCarNums(a.data) {
		car := a.data.Cars[carNum]
		item := annotations.Ensure(carNum)
		a.collectPitMarkers(carNum, car, item)
		a.collectSettleMarkers(car, item)
		a.collectPaceReasons(car, item)
	}
	return annotations
}

func (a *Analyzer) collectPitMarkers(
	carNum string, car *model.CarRecord, item *model.CarAnnotations,
) {
	for i := range car.Laps {
		rec := &car.Laps[i]
		if !rec.Pit {
			continue
		}
		colorTag := model.PitColorRoutine
		if a.penalized[carNum][rec.Lap] {
			colorTag = model.PitColorPenalty
			item.Reasons[strconv.Itoa(rec.Lap)] = "Penalized pit stop"
		}
		item.Pits = append(item.Pits, model.PitMarker{
			Lap:       rec.Lap,
			Label:     "PIT",
			ColorTag:  colorTag,
			YOffset:   pitMarkerYOffset,
			DataValue: float64(rec.Pos),
		})
	}
}

// collectSettleMarkers runs a stateful run-length detection over the car's
// re-ranked overall positions. A position held for settleWindow
// consecutive laps settles at the first lap of the run. The color tag
// compares against the previous settle point (the first recorded position
// for the first marker).
func (a *Analyzer) collectSettleMarkers(car *model.CarRecord, item *model.CarAnnotations) {
	if len(car.Laps) == 0 {
		return
	}
	prevSettledPos := car.Laps[0].Pos
	runStart := 0

	for i := 1; i <= len(car.Laps); i++ {
		if i < len(car.Laps) && car.Laps[i].Pos == car.Laps[runStart].Pos {
			continue
		}
		runLen := i - runStart
		pos := car.Laps[runStart].Pos
		if runLen >= a.settleWindow {
			if runStart == 0 {
				// the starting position is not a settle after a change
				prevSettledPos = pos
			} else {
				item.Settles = append(item.Settles, settleMarker(
					car.Laps[runStart].Lap, pos, prevSettledPos))
				prevSettledPos = pos
			}
		}
		runStart = i
	}
}

func settleMarker(lapNo, pos, prevPos int) model.SettleMarker {
	colorTag := model.SettleColorHeld
	subtext := ""
	switch {
	case pos < prevPos:
		colorTag = model.SettleColorGained
		subtext = fmt.Sprintf("+%d", prevPos-pos)
	case pos > prevPos:
		colorTag = model.SettleColorLost
		subtext = fmt.Sprintf("-%d", pos-prevPos)
	}
	return model.SettleMarker{
		Lap:      lapNo,
		Position: pos,
		Label:    fmt.Sprintf("P%d", pos),
		Subtext:  subtext,
		ColorTag: colorTag,
	}
}

func (a *Analyzer) collectPaceReasons(car *model.CarRecord, item *model.CarAnnotations) {
	for i := range car.Laps {
		rec := &car.Laps[i]
		if rec.Flag != model.FlagGreen || rec.Pit {
			continue
		}
		if rec.LapSec > a.data.GreenPaceCutoff {
			lapKey := strconv.Itoa(rec.Lap)
			if _, ok := item.Reasons[lapKey]; !ok {
				item.Reasons[lapKey] = fmt.Sprintf(
					"Off pace under green (%s)", rec.LapTime)
			}
		}
	}
}
