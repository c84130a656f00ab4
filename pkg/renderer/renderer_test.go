package renderer

import (
	"reflect"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"diagram.drawio", "diagram.png"},
		{"out/diagram.drawio", "out/diagram.png"},
		{"noext", "noext.png"},
		{"dir.v2/noext", "dir.v2/noext.png"}, // dot in the directory, not the file
	}
	for _, tt := range tests {
		if got := DefaultOutputPath(tt.in); got != tt.want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	opts := Options{Scale: 2.0, Border: 20}.withDefaults()

	got := buildCommand("in.drawio", "out.png", false, opts)
	want := []string{
		"drawio", "--export", "--format", "png",
		"--scale", "2", "--border", "20",
		"--output", "out.png", "in.drawio",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildCommand = %v, want %v", got, want)
	}
}

func TestBuildCommandXvfb(t *testing.T) {
	opts := Options{}.withDefaults()

	got := buildCommand("in.drawio", "out.png", true, opts)
	if got[0] != "xvfb-run" || got[1] != "-a" || got[2] != "drawio" {
		t.Errorf("xvfb prefix missing: %v", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Scale != DefaultScale || o.Border != DefaultBorder || o.Timeout != DefaultTimeout {
		t.Errorf("defaults = %+v", o)
	}

	// Explicit values survive.
	o = Options{Scale: 1.5, Border: 5}.withDefaults()
	if o.Scale != 1.5 || o.Border != 5 {
		t.Errorf("explicit values lost: %+v", o)
	}
}
