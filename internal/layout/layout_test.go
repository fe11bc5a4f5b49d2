package layout

import (
	"errors"
	"testing"
)

func TestCompute_DefaultGeometry(t *testing.T) {
	l, err := Compute(1920, 1080, 80, 40, 0.25)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if l.Box1 != (Box{W: 430, H: 920, X: 80, Y: 80}) {
		t.Errorf("Box1 = %+v, want {430 920 80 80}", l.Box1)
	}
	if l.Box2 != (Box{W: 1290, H: 920, X: 550, Y: 80}) {
		t.Errorf("Box2 = %+v, want {1290 920 550 80}", l.Box2)
	}
}

func TestCompute_Invariants(t *testing.T) {
	tests := []struct {
		name           string
		w, h, b, g     int
		ratio          float64
	}{
		{"default", 1920, 1080, 80, 40, 0.25},
		{"thin border", 1920, 1080, 25, 10, 0.25},
		{"no border", 800, 600, 0, 10, 0.5},
		{"odd ratio", 1001, 777, 13, 7, 0.333},
		{"wide slot1", 1920, 1080, 80, 40, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Compute(tt.w, tt.h, tt.b, tt.g, tt.ratio)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if got := l.Box1.W + l.Gap + l.Box2.W + 2*l.Border; got != tt.w {
				t.Errorf("width sum = %d, want %d", got, tt.w)
			}
			if l.Box1.H != tt.h-2*tt.b || l.Box2.H != tt.h-2*tt.b {
				t.Errorf("box heights %d/%d, want %d", l.Box1.H, l.Box2.H, tt.h-2*tt.b)
			}
			if l.Box1.X != tt.b || l.Box1.Y != tt.b {
				t.Errorf("Box1 origin (%d,%d), want (%d,%d)", l.Box1.X, l.Box1.Y, tt.b, tt.b)
			}
			if want := tt.b + l.Box1.W + tt.g; l.Box2.X != want {
				t.Errorf("Box2.X = %d, want %d", l.Box2.X, want)
			}
		})
	}
}

func TestCompute_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		w, h, b, g int
		ratio      float64
	}{
		{"border eats canvas", 100, 100, 50, 10, 0.5},
		{"zero canvas", 0, 1080, 80, 40, 0.25},
		{"negative border", 1920, 1080, -1, 40, 0.25},
		{"ratio zero", 1920, 1080, 80, 40, 0},
		{"ratio one", 1920, 1080, 80, 40, 1},
		{"ratio floors to empty box", 1920, 1080, 80, 40, 0.0001},
		{"flat canvas", 1920, 160, 80, 40, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.w, tt.h, tt.b, tt.g, tt.ratio)
			if !errors.Is(err, ErrDegenerate) {
				t.Errorf("err = %v, want ErrDegenerate", err)
			}
		})
	}
}
