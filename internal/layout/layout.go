// Package layout computes the collage geometry: canvas size, border and
// gap thickness, and the two image boxes derived from them.
package layout

import (
	"errors"
	"fmt"
)

var ErrDegenerate = errors.New("degenerate layout")

// Box is a placement rectangle inside the canvas.
type Box struct {
	W, H int
	X, Y int
}

// Layout holds the full geometry for one collage. It is computed once per
// request and never mutated afterwards.
type Layout struct {
	CanvasW int
	CanvasH int
	Border  int
	Gap     int
	Box1    Box
	Box2    Box
}

// Compute derives the layout from the canvas configuration. The two box
// widths always sum to exactly the usable width, so rounding the ratio
// never drifts the geometry.
//
// Invariants: Box1.W + Gap + Box2.W + 2*Border == CanvasW and
// Box1.H == Box2.H == CanvasH - 2*Border.
func Compute(canvasW, canvasH, border, gap int, image1Ratio float64) (Layout, error) {
	if canvasW <= 0 || canvasH <= 0 || border < 0 || gap < 0 {
		return Layout{}, fmt.Errorf("%w: canvas %dx%d border %d gap %d", ErrDegenerate, canvasW, canvasH, border, gap)
	}
	if image1Ratio <= 0 || image1Ratio >= 1 {
		return Layout{}, fmt.Errorf("%w: image1 ratio %v outside (0,1)", ErrDegenerate, image1Ratio)
	}

	usableW := canvasW - 2*border - gap
	usableH := canvasH - 2*border
	if usableW <= 0 || usableH <= 0 {
		return Layout{}, fmt.Errorf("%w: usable area %dx%d", ErrDegenerate, usableW, usableH)
	}

	box1W := int(float64(usableW) * image1Ratio)
	box2W := usableW - box1W
	if box1W <= 0 || box2W <= 0 {
		return Layout{}, fmt.Errorf("%w: box widths %d/%d", ErrDegenerate, box1W, box2W)
	}

	return Layout{
		CanvasW: canvasW,
		CanvasH: canvasH,
		Border:  border,
		Gap:     gap,
		Box1:    Box{W: box1W, H: usableH, X: border, Y: border},
		Box2:    Box{W: box2W, H: usableH, X: border + box1W + gap, Y: border},
	}, nil
}
