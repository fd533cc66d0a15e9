package basedata

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ohler55/ojg/oj"

	"github.com/racelap/timing-ingest-go/pkg/model"
	racerepos "github.com/racelap/timing-ingest-go/pkg/repository/race"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2025-04-27T13:00:00Z")
	return t
}

func SampleMetadata() *model.RaceMetadata {
	return &model.RaceMetadata{
		Name:        "6h of Testville",
		Series:      "Test Endurance Cup",
		Track:       "Testville International",
		SessionDate: TestTime(),
	}
}

// SampleRaceData returns a small but structurally complete race: three
// cars in two classes over five laps with one caution window.
func SampleRaceData() *model.RaceData {
	laps := func(positions []int, flags []model.Flag, times []float64) []model.LapRecord {
		ret := make([]model.LapRecord, 0, len(positions))
		for i := range positions {
			ret = append(ret, model.LapRecord{
				Lap:      i + 1,
				Pos:      positions[i],
				ClassPos: 1,
				LapTime:  "1:40.000",
				LapSec:   times[i],
				Flag:     flags[i],
			})
		}
		return ret
	}
	green := []model.Flag{
		model.FlagGreen, model.FlagGreen, model.FlagFcy,
		model.FlagGreen, model.FlagGreen,
	}
	return &model.RaceData{
		MaxLap:          5,
		TotalCars:       3,
		GreenPaceCutoff: 300.0,
		Cars: map[string]*model.CarRecord{
			"7": {
				Num: 7, Team: "Apex Racing", Class: "GT3",
				FinishPos: 1, FinishPosClass: 1,
				Laps: laps([]int{1, 1, 1, 1, 1}, green,
					[]float64{100.1, 100.2, 180.0, 100.3, 100.4}),
			},
			"21": {
				Num: 21, Team: "Blue Crew", Class: "GT3",
				FinishPos: 2, FinishPosClass: 2,
				Laps: laps([]int{2, 2, 2, 2, 2}, green,
					[]float64{101.1, 101.2, 181.0, 101.3, 101.4}),
			},
			"88": {
				Num: 88, Team: "Speedworks", Class: "GT4",
				FinishPos: 3, FinishPosClass: 1,
				Laps: laps([]int{3, 3, 3, 3, 3}, green,
					[]float64{105.1, 105.2, 185.0, 105.3, 105.4}),
			},
		},
		ClassGroups: map[string][]string{
			"GT3": {"7", "21"},
			"GT4": {"88"},
		},
		ClassCarCounts: map[string]int{"GT3": 2, "GT4": 1},
		Fcy:            []model.FcyWindow{{StartLap: 3, EndLap: 3}},
	}
}

func SampleAnnotations() model.AnnotationSet {
	annotations := make(model.AnnotationSet)
	item := annotations.Ensure("7")
	item.Reasons["3"] = "Caution period"
	item.Pits = append(item.Pits, model.PitMarker{
		Lap: 3, Label: "PIT", ColorTag: model.PitColorRoutine,
		YOffset: -10, DataValue: 1,
	})
	return annotations
}

func SampleRawData() []byte {
	blob, err := oj.Marshal(SampleRaceData())
	if err != nil {
		log.Fatalf("marshal sample data: %v\n", err)
	}
	return blob
}

func SampleRawAnnotations() []byte {
	blob, err := oj.Marshal(SampleAnnotations())
	if err != nil {
		log.Fatalf("marshal sample annotations: %v\n", err)
	}
	return blob
}

// CreateSampleRace persists the sample race row (blob only, no entry/lap
// rows) and returns its id.
func CreateSampleRace(pool *pgxpool.Pool) int {
	id, _, err := racerepos.Create(context.Background(), pool,
		SampleMetadata(), SampleRaceData(), SampleAnnotations(), "testsetup")
	if err != nil {
		log.Fatalf("create sample race: %v\n", err)
	}
	return id
}
