// Package validate checks canonical race data before persistence.
// Structural problems are hard failures; semantic inconsistencies only
// produce warnings.
package validate

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/oj"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/racelap/timing-ingest-go/pkg/model"
)

// ValidationError reports a malformed canonical data shape. It aborts the
// ingest.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid race data: %s: %s", e.Field, e.Reason)
}

func structErr(field, reason string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(reason, args...)}
}

// DecodeRaceData unmarshals and structurally validates a canonical race
// data blob.
func DecodeRaceData(raw []byte) (*model.RaceData, error) {
	var data model.RaceData
	if err := oj.Unmarshal(raw, &data); err != nil {
		return nil, structErr("$", "not valid JSON: %v", err)
	}
	if err := Structural(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Structural verifies the canonical data invariants.
//
//nolint:gocognit,cyclop // a flat list of checks
func Structural(data *model.RaceData) error {
	if data == nil {
		return structErr("$", "missing")
	}
	if data.MaxLap < 1 {
		return structErr("maxLap", "must be >= 1, got %d", data.MaxLap)
	}
	if data.TotalCars < 1 {
		return structErr("totalCars", "must be >= 1, got %d", data.TotalCars)
	}
	if data.GreenPaceCutoff <= 0 {
		return structErr("greenPaceCutoff", "must be > 0, got %g", data.GreenPaceCutoff)
	}
	if len(data.Cars) == 0 {
		return structErr("cars", "must not be empty")
	}
	for carNum, car := range data.Cars {
		field := fmt.Sprintf("cars[%s]", carNum)
		if car == nil {
			return structErr(field, "missing")
		}
		if car.Num < 1 {
			return structErr(field+".num", "must be a positive integer")
		}
		if car.Team == "" {
			return structErr(field+".team", "must not be empty")
		}
		if car.Class == "" {
			return structErr(field+".cls", "must not be empty")
		}
		if car.FinishPos < 1 || car.FinishPosClass < 1 {
			return structErr(field, "finish positions must be positive")
		}
		if len(car.Laps) == 0 {
			return structErr(field+".laps", "must contain at least one lap")
		}
		if err := checkLaps(field, car.Laps); err != nil {
			return err
		}
	}
	return checkFcy(data.Fcy)
}

func checkLaps(field string, laps []model.LapRecord) error {
	for i := range laps {
		rec := &laps[i]
		lapField := fmt.Sprintf("%s.laps[%d]", field, i)
		if rec.Lap < 1 || rec.Pos < 1 {
			return structErr(lapField, "lap and position must be positive")
		}
		if i > 0 && laps[i-1].Lap >= rec.Lap {
			return structErr(lapField, "laps must be sorted ascending by lap number")
		}
		if rec.LapSec <= 0 {
			return structErr(lapField+".ltSec", "must be > 0, got %g", rec.LapSec)
		}
		switch rec.Flag {
		case model.FlagGreen, model.FlagFcy, model.FlagRed:
		default:
			return structErr(lapField+".flag", "unknown flag %q", rec.Flag)
		}
		if rec.AvgSpeed < 0 {
			return structErr(lapField+".spd", "must not be negative")
		}
	}
	return nil
}

func checkFcy(windows []model.FcyWindow) error {
	for i, win := range windows {
		field := fmt.Sprintf("fcy[%d]", i)
		if win.StartLap > win.EndLap {
			return structErr(field, "startLap must not exceed endLap")
		}
		if i > 0 && windows[i-1].EndLap >= win.StartLap {
			return structErr(field, "windows must be ascending and non-overlapping")
		}
	}
	return nil
}

// DecodeAnnotations unmarshals an annotation blob. Annotations are a
// rendering aid, not source of truth: malformed input degrades to an
// empty set with a warning instead of failing the ingest.
func DecodeAnnotations(raw []byte) (model.AnnotationSet, []string) {
	if len(raw) == 0 {
		return make(model.AnnotationSet), nil
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return make(model.AnnotationSet),
			[]string{"annotation data malformed, continuing with empty annotations"}
	}
	var annotations model.AnnotationSet
	if err := oj.Unmarshal(raw, &annotations); err != nil {
		return make(model.AnnotationSet),
			[]string{fmt.Sprintf("annotation data not usable (%v), continuing with empty annotations", err)}
	}
	if annotations == nil {
		annotations = make(model.AnnotationSet)
	}
	return annotations, nil
}

// Semantic cross-checks canonical data against itself and the annotation
// set. All findings are warnings, never failures.
func Semantic(data *model.RaceData, annotations model.AnnotationSet) []string {
	warnings := make([]string, 0)

	if data.TotalCars != len(data.Cars) {
		warnings = append(warnings, fmt.Sprintf(
			"declared totalCars %d does not match %d cars", data.TotalCars, len(data.Cars)))
	}
	for _, className := range sortedKeys(data.ClassGroups) {
		members := data.ClassGroups[className]
		for _, carNum := range members {
			car, ok := data.Cars[carNum]
			if !ok {
				warnings = append(warnings, fmt.Sprintf(
					"class %s lists unknown car %s", className, carNum))
				continue
			}
			if car.Class != className {
				warnings = append(warnings, fmt.Sprintf(
					"car %s is listed in class %s but reports class %s",
					carNum, className, car.Class))
			}
		}
		if declared, ok := data.ClassCarCounts[className]; ok && declared != len(members) {
			warnings = append(warnings, fmt.Sprintf(
				"class %s declares %d cars but lists %d", className, declared, len(members)))
		}
	}
	for _, carNum := range sortedKeys(annotations) {
		if _, ok := data.Cars[carNum]; !ok {
			warnings = append(warnings, fmt.Sprintf(
				"annotations reference unknown car %s", carNum))
		}
	}
	return warnings
}

// deterministic warning order
func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
