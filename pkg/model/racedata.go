package model

// Flag describes the track state during a lap.
type Flag string

const (
	FlagGreen Flag = "GREEN"
	FlagFcy   Flag = "FCY" // full course yellow
	FlagRed   Flag = "RED"
)

// MinLapTimeSec is the lower bound for stored lap times. Zero or unparsable
// times are raised to this value so downstream sorting and divisions never
// see a zero.
const MinLapTimeSec = 0.001

// RaceData is the canonical normalized representation of one race.
// The JSON field names are consumed by the charting frontend and must not
// be renamed.
type RaceData struct {
	MaxLap          int                   `json:"maxLap"`
	TotalCars       int                   `json:"totalCars"`
	GreenPaceCutoff float64               `json:"greenPaceCutoff"`
	Cars            map[string]*CarRecord `json:"cars"`
	ClassGroups     map[string][]string   `json:"classGroups"`
	ClassCarCounts  map[string]int        `json:"classCarCounts"`
	Fcy             []FcyWindow           `json:"fcy"`
	MakeGroups      map[string][]string   `json:"makeGroups,omitempty"`
}

// FcyWindow is a closed range of caution laps.
type FcyWindow struct {
	StartLap int `json:"startLap"`
	EndLap   int `json:"endLap"`
}

type CarRecord struct {
	Num            int         `json:"num"`
	Team           string      `json:"team"`
	Class          string      `json:"cls"`
	FinishPos      int         `json:"finishPos"`
	FinishPosClass int         `json:"finishPosClass"`
	Laps           []LapRecord `json:"laps"`
}

// LapRecord holds one lap of one car. Laps within a CarRecord are sorted
// ascending by lap number.
type LapRecord struct {
	Lap       int     `json:"l"`
	Pos       int     `json:"p"`
	ClassPos  int     `json:"cp"`
	LapTime   string  `json:"lt"`
	LapSec    float64 `json:"ltSec"`
	Flag      Flag    `json:"flag"`
	Pit       bool    `json:"pit"`
	AvgSpeed  float64 `json:"spd,omitempty"`
}
