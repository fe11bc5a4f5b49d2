// Package fit resamples a source image into an exact target box under one
// of three sizing policies, plus the auto-rotation heuristic used for the
// variants image.
package fit

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Policy selects the fitting algorithm.
type Policy string

const (
	// Stretch scales non-uniformly to the box, ignoring aspect ratio.
	Stretch Policy = "stretch"
	// Letterbox scales to fit inside the box and pads with the fill color.
	Letterbox Policy = "letterbox"
	// CropFill scales to cover the box and center-crops the overflow.
	CropFill Policy = "crop-fill"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Stretch, Letterbox, CropFill:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown fit policy %q", s)
}

// Fit resamples img to exactly boxW x boxH under the policy. The result is
// always fully opaque: alpha-bearing sources are flattened onto fill
// (white when fill is the zero value). Resampling uses Lanczos.
func Fit(img image.Image, boxW, boxH int, p Policy, fill color.NRGBA) *image.NRGBA {
	if fill == (color.NRGBA{}) {
		fill = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	fill.A = 255

	switch p {
	case Stretch:
		return imaging.Resize(flatten(img, fill), boxW, boxH, imaging.Lanczos)

	case CropFill:
		return flatten(imaging.Fill(img, boxW, boxH, imaging.Center, imaging.Lanczos), fill)

	default: // Letterbox
		srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
		ratio := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
		newW := max(1, int(float64(srcW)*ratio))
		newH := max(1, int(float64(srcH)*ratio))

		resized := imaging.Resize(img, newW, newH, imaging.Lanczos)
		canvas := imaging.New(boxW, boxH, fill)
		if hasAlpha(img) {
			return imaging.OverlayCenter(canvas, resized, 1.0)
		}
		return imaging.PasteCenter(canvas, resized)
	}
}

// ShouldRotate reports whether rotating img by 90 degrees would match the
// box aspect ratio strictly better than its current orientation.
func ShouldRotate(img image.Image, boxW, boxH int) bool {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 || boxH == 0 {
		return false
	}
	box := float64(boxW) / float64(boxH)
	aspect := float64(w) / float64(h)
	inverse := float64(h) / float64(w)
	return math.Abs(inverse-box) < math.Abs(aspect-box)
}

// flatten composites img onto an opaque fill-colored background of the
// same size. Opaque sources come back as a plain clone.
func flatten(img image.Image, fill color.NRGBA) *image.NRGBA {
	if !hasAlpha(img) {
		return imaging.Clone(img)
	}
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), fill)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
