//nolint:lll // csv fixtures
package imsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racelap/timing-ingest-go/pkg/model"
	"github.com/racelap/timing-ingest-go/pkg/parser"
)

const sampleResults = `POSITION,NUMBER,TEAM,CLASS,MANUFACTURER,POS IN CLASS
1,7,Apex Racing,GT3,Porsche,1
2,21,Blue Crew,GT3,Ferrari,2
3,88,Speedworks,GT4,BMW,1
`

// car 7 rows are deliberately out of order, car 99 has no results entry
const sampleLaps = `NUMBER,LAP,POSITION,LAP TIME,FLAG,PIT,PENALTY,AVG SPEED
7,2,1,1:40.200,Green,,,121.0
7,1,1,1:40.100,Green,,,121.0
7,4,1,2:10.000,Yellow,,,90.0
7,3,1,1:40.300,Green,,,121.0
7,6,1,1:40.500,Green,,,121.0
7,5,2,1:40.400,Green,,,121.0
21,1,2,1:41.100,Green,,,120.0
21,2,2,1:41.200,Green,,,120.0
21,3,2,1:41.300,Green,,,120.0
21,4,2,2:12.000,Yellow,yes,yes,88.0
21,5,1,1:41.400,Green,,,120.0
21,6,2,1:41.500,Green,,,120.0
88,1,3,1:45.100,Green,,,116.0
88,2,3,1:45.200,Green,,,116.0
88,3,3,1:45.300,Green,,,116.0
88,4,3,2:15.000,Green,,,85.0
88,5,3,1:45.400,Green,,,116.0
88,6,3,1:45.500,Green,,,116.0
99,1,4,1:50.000,Green,,,110.0
`

func parseSample(t *testing.T) *parser.ParseResult {
	t.Helper()
	format, ok := parser.Lookup(FormatID)
	require.True(t, ok)
	result, err := format.Parse(map[string]string{
		SlotResults: sampleResults,
		SlotLaps:    sampleLaps,
	})
	require.NoError(t, err)
	return result
}

func TestParseSummaryAndGroups(t *testing.T) {
	result := parseSample(t)
	data := result.Data

	assert.Equal(t, 3, data.TotalCars)
	assert.Equal(t, 6, data.MaxLap)
	assert.Equal(t, map[string][]string{
		"GT3": {"7", "21"},
		"GT4": {"88"},
	}, data.ClassGroups)
	assert.Equal(t, map[string]int{"GT3": 2, "GT4": 1}, data.ClassCarCounts)
	assert.Equal(t, map[string][]string{
		"Porsche": {"7"},
		"Ferrari": {"21"},
		"BMW":     {"88"},
	}, data.MakeGroups)

	car := data.Cars["7"]
	require.NotNil(t, car)
	assert.Equal(t, "Apex Racing", car.Team)
	assert.Equal(t, 1, car.FinishPos)
	assert.Equal(t, 1, car.FinishPosClass)
}

func TestParseDropsCarWithoutSummary(t *testing.T) {
	result := parseSample(t)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "car 99")
	assert.NotContains(t, result.Data.Cars, "99")
}

func TestParseSortsLaps(t *testing.T) {
	result := parseSample(t)
	car := result.Data.Cars["7"]
	require.Len(t, car.Laps, 6)
	for i := range car.Laps {
		assert.Equal(t, i+1, car.Laps[i].Lap)
	}
}

func TestParseDerivesFcyWindow(t *testing.T) {
	result := parseSample(t)
	// lap 4: two of three cars report yellow
	assert.Equal(t, []model.FcyWindow{{StartLap: 4, EndLap: 4}},
		result.Data.Fcy)
}

func TestParseRecomputesClassPositions(t *testing.T) {
	result := parseSample(t)
	// lap 5: car 21 leads overall, car 7 second
	car7 := result.Data.Cars["7"].Laps[4]
	car21 := result.Data.Cars["21"].Laps[4]
	car88 := result.Data.Cars["88"].Laps[4]

	assert.Equal(t, 1, car21.Pos)
	assert.Equal(t, 1, car21.ClassPos)
	assert.Equal(t, 2, car7.Pos)
	assert.Equal(t, 2, car7.ClassPos)
	assert.Equal(t, 3, car88.Pos)
	assert.Equal(t, 1, car88.ClassPos)
}

func TestParsePenalizedPitMarker(t *testing.T) {
	result := parseSample(t)
	item := result.Annotations["21"]
	require.NotNil(t, item)
	require.Len(t, item.Pits, 1)
	assert.Equal(t, 4, item.Pits[0].Lap)
	assert.Equal(t, model.PitColorPenalty, item.Pits[0].ColorTag)
	assert.Contains(t, item.Reasons["4"], "Penalized")

	// routine stops stay neutral, car 7 never pitted
	assert.Empty(t, result.Annotations["7"].Pits)
}

func TestParseGreenPaceCutoff(t *testing.T) {
	result := parseSample(t)
	// 16 green non-pit samples, 95th percentile index 15 -> 135s lap of car 88
	assert.InDelta(t, 135.0*1.1, result.Data.GreenPaceCutoff, 1e-9)
}

func TestParseMissingSlot(t *testing.T) {
	format, _ := parser.Lookup(FormatID)

	_, err := format.Parse(map[string]string{SlotLaps: sampleLaps})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "results")

	_, err = format.Parse(map[string]string{SlotResults: sampleResults})
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "laps")
}

func TestParseNoDataRows(t *testing.T) {
	format, _ := parser.Lookup(FormatID)
	_, err := format.Parse(map[string]string{
		SlotResults: "POSITION,NUMBER,TEAM,CLASS\n",
		SlotLaps:    sampleLaps,
	})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "no data rows")
}

func TestParseNoValidCars(t *testing.T) {
	format, _ := parser.Lookup(FormatID)
	_, err := format.Parse(map[string]string{
		SlotResults: sampleResults,
		SlotLaps:    "NUMBER,LAP,POSITION,LAP TIME,FLAG\n55,1,1,1:40.000,Green\n",
	})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "no valid cars")
}
