package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLapTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "minutes and seconds", text: "1:23.456", want: 83.456},
		{name: "hours minutes seconds", text: "01:02:03.000", want: 3723.0},
		{name: "seconds only", text: "45.2", want: 45.2},
		{name: "plain integer seconds", text: "95", want: 95.0},
		{name: "surrounding whitespace", text: " 1:23.456 ", want: 83.456},
		{name: "empty", text: "", want: 0},
		{name: "whitespace only", text: "   ", want: 0},
		{name: "non numeric component", text: "1:ab.456", want: 0},
		{name: "too many colons", text: "1:2:3:4", want: 0},
		{name: "garbage", text: "n/a", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseLapTime(tt.text), 1e-9)
		})
	}
}

func TestParseFloat(t *testing.T) {
	assert.InDelta(t, 120.5, ParseFloat("120.5"), 1e-9)
	assert.InDelta(t, 0.0, ParseFloat(""), 1e-9)
	assert.InDelta(t, 0.0, ParseFloat("fast"), 1e-9)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt(" 42 "))
	assert.Equal(t, 0, ParseInt("4.2"))
	assert.Equal(t, 0, ParseInt(""))
}
