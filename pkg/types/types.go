package types

import "fmt"

// Annotation is one YOLO object annotation. The four geometric fields are
// normalized to [0,1] relative to the owning image: (X, Y) is the box center,
// W and H are the box dimensions.
type Annotation struct {
	Class int     `json:"class"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// String renders the annotation as a YOLO label line: class id followed by
// the four normalized fields with fixed 6-decimal formatting.
func (a Annotation) String() string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", a.Class, a.X, a.Y, a.W, a.H)
}

// Valid reports whether all geometric fields are inside [0,1] and the box
// has positive area.
func (a Annotation) Valid() bool {
	if a.Class < 0 {
		return false
	}
	for _, v := range []float64{a.X, a.Y, a.W, a.H} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return a.W > 0 && a.H > 0
}
