// Package alkamel is a registered placeholder for Al Kamel Systems
// timing exports (WEC, ELMS, IMSA Europe).
package alkamel

import (
	"github.com/racelap/timing-ingest-go/pkg/parser"
)

//nolint:gochecknoinits // format registration
func init() {
	parser.Register(&alkamelFormat{})
}

type alkamelFormat struct{}

func (f *alkamelFormat) ID() string     { return "alkamel" }
func (f *alkamelFormat) Name() string   { return "Al Kamel Systems" }
func (f *alkamelFormat) Series() string { return "FIA WEC / ELMS" }
func (f *alkamelFormat) Description() string {
	return "Classification and analysis exports produced by Al Kamel timing"
}
func (f *alkamelFormat) Implemented() bool { return false }

func (f *alkamelFormat) FileSlots() []parser.FileSlot {
	return []parser.FileSlot{
		{Key: "classification", Label: "Final classification CSV", Required: true},
		{Key: "analysis", Label: "Lap analysis CSV (pre-extracted from PDF)", Required: true},
	}
}

func (f *alkamelFormat) Parse(_ map[string]string) (*parser.ParseResult, error) {
	return nil, parser.ErrNotImplemented
}
