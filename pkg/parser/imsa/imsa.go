// Package imsa parses IMSA style timing and scoring exports: a results
// summary CSV plus an all-laps CSV.
package imsa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/racelap/timing-ingest-go/pkg/model"
	"github.com/racelap/timing-ingest-go/pkg/parser"
	"github.com/racelap/timing-ingest-go/pkg/processing"
)

const (
	FormatID = "imsa"

	SlotResults = "results"
	SlotLaps    = "laps"
)

//nolint:gochecknoinits // format registration
func init() {
	parser.Register(&imsaFormat{})
}

type imsaFormat struct{}

func (f *imsaFormat) ID() string     { return FormatID }
func (f *imsaFormat) Name() string   { return "IMSA Timing & Scoring" }
func (f *imsaFormat) Series() string { return "IMSA WeatherTech / Michelin Pilot Challenge" }
func (f *imsaFormat) Description() string {
	return "Results summary and all-laps CSV exports as published on the IMSA results site"
}
func (f *imsaFormat) Implemented() bool { return true }

func (f *imsaFormat) FileSlots() []parser.FileSlot {
	return []parser.FileSlot{
		{Key: SlotResults, Label: "Results summary CSV", Required: true},
		{Key: SlotLaps, Label: "All laps CSV", Required: true},
	}
}

type summaryEntry struct {
	team           string
	class          string
	manufacturer   string
	finishPos      int
	finishPosClass int
}

//nolint:funlen // top level assembly
func (f *imsaFormat) Parse(files map[string]string) (*parser.ParseResult, error) {
	resultsRaw, ok := files[SlotResults]
	if !ok || strings.TrimSpace(resultsRaw) == "" {
		return nil, parser.NewParseError(FormatID, "missing required file slot %q", SlotResults)
	}
	lapsRaw, ok := files[SlotLaps]
	if !ok || strings.TrimSpace(lapsRaw) == "" {
		return nil, parser.NewParseError(FormatID, "missing required file slot %q", SlotLaps)
	}

	summary, haveMakes, err := f.parseSummary(resultsRaw)
	if err != nil {
		return nil, err
	}
	carLaps, penalized, err := f.parseLaps(lapsRaw)
	if err != nil {
		return nil, err
	}

	warnings := make([]string, 0)
	cars := make(map[string]*model.CarRecord)
	for carNum, laps := range carLaps {
		meta, ok := summary[carNum]
		if !ok {
			// partial metadata must not abort an otherwise valid race
			warnings = append(warnings,
				"car "+carNum+" has laps but no results entry, dropped")
			continue
		}
		sort.SliceStable(laps, func(i, j int) bool { return laps[i].Lap < laps[j].Lap })
		num, _ := strconv.Atoi(carNum)
		cars[carNum] = &model.CarRecord{
			Num:            num,
			Team:           meta.team,
			Class:          meta.class,
			FinishPos:      meta.finishPos,
			FinishPosClass: meta.finishPosClass,
			Laps:           laps,
		}
	}
	if len(cars) == 0 {
		return nil, parser.NewParseError(FormatID, "no valid cars found")
	}

	data := &model.RaceData{Cars: cars}
	data.TotalCars = len(cars)
	for _, car := range cars {
		if lastLap := car.Laps[len(car.Laps)-1].Lap; lastLap > data.MaxLap {
			data.MaxLap = lastLap
		}
	}
	f.buildGroups(data, summary, haveMakes)

	annotations := processing.NewAnalyzer(data,
		processing.WithPenalizedLaps(penalized)).Analyze()

	sort.Strings(warnings)
	return &parser.ParseResult{
		Data:        data,
		Annotations: annotations,
		Warnings:    warnings,
	}, nil
}

func (f *imsaFormat) parseSummary(raw string) (
	entries map[string]summaryEntry, haveMakes bool, err error,
) {
	rows := parser.Tokenize(raw, 0)
	if len(rows) < 2 {
		return nil, false, parser.NewParseError(FormatID, "results table has no data rows")
	}
	header := parser.NewHeaderIndex(rows[0])
	haveMakes = header.Has("manufacturer")

	entries = make(map[string]summaryEntry)
	for _, row := range rows[1:] {
		num := parser.ParseInt(header.Value(row, "number"))
		if num <= 0 {
			continue
		}
		entries[strconv.Itoa(num)] = summaryEntry{
			team:           header.Value(row, "team"),
			class:          header.Value(row, "class"),
			manufacturer:   header.Value(row, "manufacturer"),
			finishPos:      parser.ParseInt(header.Value(row, "position")),
			finishPosClass: parser.ParseInt(header.Value(row, "pos in class")),
		}
	}
	return entries, haveMakes, nil
}

func (f *imsaFormat) parseLaps(raw string) (
	laps map[string][]model.LapRecord, penalized map[string][]int, err error,
) {
	rows := parser.Tokenize(raw, 0)
	if len(rows) < 2 {
		return nil, nil, parser.NewParseError(FormatID, "laps table has no data rows")
	}
	header := parser.NewHeaderIndex(rows[0])

	laps = make(map[string][]model.LapRecord)
	penalized = make(map[string][]int)
	for _, row := range rows[1:] {
		num := parser.ParseInt(header.Value(row, "number"))
		lapNo := parser.ParseInt(header.Value(row, "lap"))
		if num <= 0 || lapNo <= 0 {
			continue
		}
		carNum := strconv.Itoa(num)
		lapTime := header.Value(row, "lap time")
		lapSec := parser.ParseLapTime(lapTime)
		if lapSec <= 0 {
			lapSec = model.MinLapTimeSec
		}
		laps[carNum] = append(laps[carNum], model.LapRecord{
			Lap:      lapNo,
			Pos:      parser.ParseInt(header.Value(row, "position")),
			LapTime:  lapTime,
			LapSec:   lapSec,
			Flag:     flagFromStatus(header.Value(row, "flag")),
			Pit:      truthy(header.Value(row, "pit")),
			AvgSpeed: parser.ParseFloat(header.Value(row, "avg speed")),
		})
		if truthy(header.Value(row, "penalty")) {
			penalized[carNum] = append(penalized[carNum], lapNo)
		}
	}
	return laps, penalized, nil
}

func (f *imsaFormat) buildGroups(
	data *model.RaceData, summary map[string]summaryEntry, haveMakes bool,
) {
	nums := make([]string, 0, len(data.Cars))
	for num := range data.Cars {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool {
		return data.Cars[nums[i]].Num < data.Cars[nums[j]].Num
	})

	data.ClassGroups = make(map[string][]string)
	data.ClassCarCounts = make(map[string]int)
	for _, num := range nums {
		cls := data.Cars[num].Class
		data.ClassGroups[cls] = append(data.ClassGroups[cls], num)
		data.ClassCarCounts[cls]++
	}
	if haveMakes {
		data.MakeGroups = make(map[string][]string)
		for _, num := range nums {
			if mk := summary[num].manufacturer; mk != "" {
				data.MakeGroups[mk] = append(data.MakeGroups[mk], num)
			}
		}
	}
}

// flagFromStatus maps the free text status column to a flag state.
// Checkered and unknown states count as green.
func flagFromStatus(status string) model.Flag {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "yellow"), strings.Contains(lower, "caution"):
		return model.FlagFcy
	case strings.Contains(lower, "red"):
		return model.FlagRed
	default:
		return model.FlagGreen
	}
}

func truthy(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1", "y", "yes", "true":
		return true
	default:
		return false
	}
}
