package parser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

//nolint:gochecknoglobals // constant factors
var (
	secsPerMinute = decimal.NewFromInt(60)
	secsPerHour   = decimal.NewFromInt(3600)
)

// ParseLapTime converts a lap time string to seconds. Accepted shapes are
// "H:MM:SS.mmm", "M:SS.mmm" and "SS.mmm". Malformed input yields 0; bulk
// ingestion must not fail on a stray bad row. Callers raise 0 to
// model.MinLapTimeSec before storing.
func ParseLapTime(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0
	}
	total := decimal.Zero
	factors := []decimal.Decimal{decimal.NewFromInt(1), secsPerMinute, secsPerHour}
	for i := 0; i < len(parts); i++ {
		component, err := decimal.NewFromString(strings.TrimSpace(parts[len(parts)-1-i]))
		if err != nil {
			return 0
		}
		total = total.Add(component.Mul(factors[i]))
	}
	return total.InexactFloat64()
}

// ParseFloat converts text to a float64, returning 0 for malformed input.
func ParseFloat(text string) float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return val
}

// ParseInt converts text to an int, returning 0 for malformed input.
func ParseInt(text string) int {
	val, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return val
}
