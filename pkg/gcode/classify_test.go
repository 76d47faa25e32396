package gcode

import "testing"

func TestLineOfInterest(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"G1 X3 Y0 E1.0", true},
		{"G1 E.5", true},
		{"G1 X10", true},
		{"M104 S200", false},
		{"G28", false},
		{";TYPE:Solid infill", false},
		{"", false},
		{"G1 F1200", false},
	}
	for _, tt := range tests {
		if got := LineOfInterest(tt.line); got != tt.want {
			t.Errorf("LineOfInterest(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsExtrusionToken(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"E1", true},
		{"E0.123", true},
		{"E.5", true},
		{"E12.875", true},
		{"E0", true},
		{"E-1.0", false}, // retraction
		{"E+1.0", false},
		{"E1e3", false},
		{"E1.", false},
		{"E", false},
		{"X1.0", false},
		{"e1.0", false},
		{"E1.0F", false},
	}
	for _, tt := range tests {
		if got := IsExtrusionToken(tt.tok); got != tt.want {
			t.Errorf("IsExtrusionToken(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}
