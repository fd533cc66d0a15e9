// Package speedhive is a registered placeholder for MYLAPS Speedhive
// session exports.
package speedhive

import (
	"github.com/racelap/timing-ingest-go/pkg/parser"
)

//nolint:gochecknoinits // format registration
func init() {
	parser.Register(&speedhiveFormat{})
}

type speedhiveFormat struct{}

func (f *speedhiveFormat) ID() string     { return "speedhive" }
func (f *speedhiveFormat) Name() string   { return "MYLAPS Speedhive" }
func (f *speedhiveFormat) Series() string { return "Club racing" }
func (f *speedhiveFormat) Description() string {
	return "Session result exports from the MYLAPS Speedhive platform"
}
func (f *speedhiveFormat) Implemented() bool { return false }

func (f *speedhiveFormat) FileSlots() []parser.FileSlot {
	return []parser.FileSlot{
		{Key: "session", Label: "Session export CSV", Required: true},
	}
}

func (f *speedhiveFormat) Parse(_ map[string]string) (*parser.ParseResult, error) {
	return nil, parser.ErrNotImplemented
}
