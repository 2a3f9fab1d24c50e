package models

// Geometry is the saved size and view state of an editor window.
type Geometry struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	Zoom   int `json:"zoom" yaml:"zoom"`
}

const (
	MinZoom = -5
	MaxZoom = 10
)

// ClampZoom limits z to the supported zoom range.
func ClampZoom(z int) int {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
