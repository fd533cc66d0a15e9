package parser

import (
	"fmt"
	"sort"
)

//nolint:gochecknoglobals // static format table, populated via init
var registry = make(map[string]RaceFormat)

// Register adds a format to the registry. All formats ship with the binary
// and register during init, so a duplicate id is a programming error.
func Register(format RaceFormat) {
	if _, ok := registry[format.ID()]; ok {
		panic(fmt.Sprintf("duplicate race format id %q", format.ID()))
	}
	registry[format.ID()] = format
}

// Lookup returns the format registered under id.
func Lookup(id string) (RaceFormat, bool) {
	format, ok := registry[id]
	return format, ok
}

// FormatInfo is the read-only capability description of one format.
type FormatInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Series      string     `json:"series"`
	Description string     `json:"description"`
	Implemented bool       `json:"implemented"`
	FileSlots   []FileSlot `json:"fileSlots"`
}

// ListFormats returns capability metadata for all registered formats,
// sorted by id. It performs no parsing work.
func ListFormats() []FormatInfo {
	ret := make([]FormatInfo, 0, len(registry))
	for _, format := range registry {
		ret = append(ret, FormatInfo{
			ID:          format.ID(),
			Name:        format.Name(),
			Series:      format.Series(),
			Description: format.Description(),
			Implemented: format.Implemented(),
			FileSlots:   format.FileSlots(),
		})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}
