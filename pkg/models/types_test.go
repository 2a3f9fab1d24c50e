package models

import "testing"

func TestClampZoom(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"in range", 3, 3},
		{"zero", 0, 0},
		{"below minimum", -9, MinZoom},
		{"above maximum", 42, MaxZoom},
		{"at minimum", MinZoom, MinZoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampZoom(tt.in); got != tt.want {
				t.Errorf("ClampZoom(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
