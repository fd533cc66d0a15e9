// Package parser defines the pluggable race format abstraction together
// with the tokenizer and scalar helpers shared by all format variants.
package parser

import (
	"errors"
	"fmt"

	"github.com/racelap/timing-ingest-go/pkg/model"
)

// ErrNotImplemented is returned by registered placeholder formats. It is
// distinguishable from genuine data errors via errors.Is.
var ErrNotImplemented = errors.New("format parser not yet implemented")

// ParseError reports a structural problem with the submitted files, for
// example a missing required slot or a table without data rows. It aborts
// the ingest.
type ParseError struct {
	Format string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Format, e.Reason)
}

func NewParseError(format, reason string, args ...any) *ParseError {
	return &ParseError{Format: format, Reason: fmt.Sprintf(reason, args...)}
}

// FileSlot describes one named input of a format. Metadata only.
type FileSlot struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// ParseResult is the outcome of a successful parse.
type ParseResult struct {
	Data        *model.RaceData
	Annotations model.AnnotationSet
	Warnings    []string
}

// RaceFormat converts the raw text files of one timing vendor into
// canonical race data. Implementations are stateless and safe for
// concurrent use.
type RaceFormat interface {
	ID() string
	Name() string
	Series() string
	Description() string
	// Implemented is false for registered placeholders whose Parse
	// unconditionally returns ErrNotImplemented.
	Implemented() bool
	FileSlots() []FileSlot
	// Parse consumes raw file content keyed by slot key. PDF sourced slots
	// arrive as pre-extracted plain text.
	Parse(files map[string]string) (*ParseResult, error)
}
