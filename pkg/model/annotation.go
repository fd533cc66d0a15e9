package model

// Marker color tags are a fixed vocabulary shared with the charting frontend.
const (
	PitColorRoutine = "gray"
	PitColorPenalty = "red"

	SettleColorGained = "green"
	SettleColorHeld   = "gray"
	SettleColorLost   = "red"
)

// AnnotationSet holds the derived rendering annotations, keyed by car number.
type AnnotationSet map[string]*CarAnnotations

type CarAnnotations struct {
	// Reasons maps lap number (as string) to a free text explanation
	Reasons map[string]string `json:"reasons"`
	Pits    []PitMarker       `json:"pits"`
	Settles []SettleMarker    `json:"settles"`
}

// PitMarker marks a lap on which the car pitted. ColorTag is
// PitColorPenalty for a penalized stop, PitColorRoutine otherwise.
type PitMarker struct {
	Lap       int     `json:"lap"`
	Label     string  `json:"label"`
	ColorTag  string  `json:"colorTag"`
	YOffset   int     `json:"yOffset"`
	DataValue float64 `json:"dataValue"`
}

// SettleMarker marks the lap at which a car's overall position became
// stable after a change.
type SettleMarker struct {
	Lap      int    `json:"lap"`
	Position int    `json:"position"`
	Label    string `json:"label"`
	Subtext  string `json:"subtext"`
	ColorTag string `json:"colorTag"`
}

func NewCarAnnotations() *CarAnnotations {
	return &CarAnnotations{
		Reasons: make(map[string]string),
		Pits:    make([]PitMarker, 0),
		Settles: make([]SettleMarker, 0),
	}
}

// Ensure returns the annotations for carNum, creating an empty entry on
// first access.
func (a AnnotationSet) Ensure(carNum string) *CarAnnotations {
	if item, ok := a[carNum]; ok {
		return item
	}
	item := NewCarAnnotations()
	a[carNum] = item
	return item
}
