package parser

import (
	"io"
	"strings"

	"github.com/dimchansky/utfbom"
)

// Row is one tokenized line of a delimited text export.
type Row []string

// DetectDelimiter inspects a single line and picks the delimiter.
// Semicolon wins over tab, tab wins over comma. Comma is the default.
func DetectDelimiter(line string) rune {
	for _, cand := range []rune{';', '\t', ','} {
		if strings.ContainsRune(line, cand) {
			return cand
		}
	}
	return ','
}

// Tokenize splits text into rows of trimmed fields. A zero delimiter
// triggers auto-detection on the first line. Quoted fields may contain
// delimiters and line breaks; a doubled quote inside a quoted field is an
// escaped literal quote. Lines reducing to a single empty field are
// dropped.
func Tokenize(text string, delimiter rune) []Row {
	text = stripBom(text)
	if delimiter == 0 {
		firstLine := text
		if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
			firstLine = text[:idx]
		}
		delimiter = DetectDelimiter(firstLine)
	}

	rows := make([]Row, 0)
	field := strings.Builder{}
	current := make(Row, 0)
	inQuotes := false

	endField := func() {
		current = append(current, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endLine := func() {
		endField()
		if len(current) == 1 && current[0] == "" {
			// stray blank line
			current = make(Row, 0)
			return
		}
		rows = append(rows, current)
		current = make(Row, 0)
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteRune(c)
			}
		case c == '"':
			inQuotes = true
		case c == delimiter:
			endField()
		case c == '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endLine()
		case c == '\n':
			endLine()
		default:
			field.WriteRune(c)
		}
	}
	if field.Len() > 0 || len(current) > 0 {
		endLine()
	}
	return rows
}

func stripBom(text string) string {
	stripped, err := io.ReadAll(utfbom.SkipOnly(strings.NewReader(text)))
	if err != nil {
		return text
	}
	return string(stripped)
}

// HeaderIndex maps normalized column names to their position.
type HeaderIndex map[string]int

// NewHeaderIndex builds a lookup for the given header row. Lookups are
// case-insensitive and ignore surrounding whitespace.
func NewHeaderIndex(header Row) HeaderIndex {
	ret := make(HeaderIndex, len(header))
	for i, name := range header {
		ret[normalizeHeader(name)] = i
	}
	return ret
}

// Value returns the field of row at the column named name. Unknown columns
// and short rows yield an empty string since optional columns vary by
// exporter version.
func (h HeaderIndex) Value(row Row, name string) string {
	idx, ok := h[normalizeHeader(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Has reports whether the column is present in the header.
func (h HeaderIndex) Has(name string) bool {
	_, ok := h[normalizeHeader(name)]
	return ok
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
