package processing

import (
	"github.com/racelap/timing-ingest-go/pkg/model"
)

// fcyVoteThreshold is the fraction of cars that must report FCY on a lap
// for the lap to count as caution. The value is a behavioral contract of
// the charting frontend, do not tune it.
const fcyVoteThreshold = 0.5

// DetectFcyWindows derives the caution periods of a race. A lap counts as
// caution when more than half of the cars that recorded the lap report an
// FCY flag. Consecutive caution laps merge into one window. The majority
// vote smooths over single cars reporting stale flag states.
func DetectFcyWindows(data *model.RaceData) []model.FcyWindow {
	byLap := lapIndex(data)
	windows := make([]model.FcyWindow, 0)
	openStart := 0

	for lapNo := 1; lapNo <= data.MaxLap; lapNo++ {
		total := 0
		fcy := 0
		for _, ref := range byLap[lapNo] {
			total++
			if ref.rec.Flag == model.FlagFcy {
				fcy++
			}
		}
		caution := total > 0 && float64(fcy)/float64(total) > fcyVoteThreshold
		switch {
		case caution && openStart == 0:
			openStart = lapNo
		case !caution && openStart > 0:
			windows = append(windows, model.FcyWindow{StartLap: openStart, EndLap: lapNo - 1})
			openStart = 0
		}
	}
	// window still open at the last lap closes there
	if openStart > 0 {
		windows = append(windows, model.FcyWindow{StartLap: openStart, EndLap: data.MaxLap})
	}
	return windows
}
