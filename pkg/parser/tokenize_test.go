package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

//nolint:funlen // table driven
func TestTokenize(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		delimiter rune
		want      []Row
	}{
		{
			name: "quoted field with delimiter",
			text: `a,"b,c",d`,
			want: []Row{{"a", "b,c", "d"}},
		},
		{
			name: "doubled quote is escaped quote",
			text: `"a""b"`,
			want: []Row{{`a"b`}},
		},
		{
			name: "fields are trimmed",
			text: " a , b ,c\n",
			want: []Row{{"a", "b", "c"}},
		},
		{
			name: "blank lines dropped",
			text: "a,b\n\n\nc,d\n",
			want: []Row{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "semicolon wins over comma",
			text: "a;b\nc,d;e\n",
			want: []Row{{"a", "b"}, {"c,d", "e"}},
		},
		{
			name: "tab delimiter detected",
			text: "a\tb\nc\td\n",
			want: []Row{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "line break inside quotes is content",
			text: "a,\"b\nc\"\nd,e",
			want: []Row{{"a", "b\nc"}, {"d", "e"}},
		},
		{
			name: "crlf line endings",
			text: "a,b\r\nc,d\r\n",
			want: []Row{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "bom stripped",
			text: "\ufeffa,b",
			want: []Row{{"a", "b"}},
		},
		{
			name:      "explicit delimiter overrides detection",
			text:      "a;b,c",
			delimiter: ',',
			want:      []Row{{"a;b", "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.delimiter)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("a;b,c"))
	assert.Equal(t, '\t', DetectDelimiter("a\tb,c"))
	assert.Equal(t, ',', DetectDelimiter("a,b"))
	assert.Equal(t, ',', DetectDelimiter("plain"))
}

func TestHeaderIndex(t *testing.T) {
	header := NewHeaderIndex(Row{" Number ", "TEAM", "Lap Time"})
	row := Row{"7", "Apex Racing", "1:40.100"}

	assert.Equal(t, "7", header.Value(row, "NUMBER"))
	assert.Equal(t, "Apex Racing", header.Value(row, "team"))
	assert.Equal(t, "1:40.100", header.Value(row, "lap time"))
	// optional columns vary by exporter version
	assert.Equal(t, "", header.Value(row, "manufacturer"))
	assert.True(t, header.Has("lap time"))
	assert.False(t, header.Has("manufacturer"))
}
