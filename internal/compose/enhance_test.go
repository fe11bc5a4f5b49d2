package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/Ankurjain1121/collage-tool-api/internal/config"
)

func defaultEnhance() config.EnhanceConfig {
	return config.EnhanceConfig{
		SharpenRadius:    1.5,
		SharpenAmount:    0.5,
		SharpenThreshold: 3,
		Contrast:         1.08,
		Saturation:       1.12,
	}
}

func TestEnhance_PreservesGeometryAndOpacity(t *testing.T) {
	img := imaging.New(64, 48, color.NRGBA{R: 90, G: 140, B: 200, A: 255})
	out := Enhance(img, defaultEnhance())
	if out.Bounds().Dx() != 64 || out.Bounds().Dy() != 48 {
		t.Errorf("bounds = %v", out.Bounds())
	}
	if !out.Opaque() {
		t.Error("enhanced image lost opacity")
	}
}

func TestEnhance_UniformImageUntouchedBySharpenAndContrast(t *testing.T) {
	// A uniform gray has no detail to sharpen, sits at its own mean, and is
	// immune to saturation. The chain must return it unchanged.
	img := imaging.New(32, 32, color.NRGBA{R: 120, G: 120, B: 120, A: 255})
	out := Enhance(img, defaultEnhance())
	if c := out.NRGBAAt(16, 16); c != (color.NRGBA{R: 120, G: 120, B: 120, A: 255}) {
		t.Errorf("uniform gray changed to %+v", c)
	}
}

func TestUnsharpMask_ThresholdSuppressesFlatRegions(t *testing.T) {
	// Gentle 1-level noise stays below threshold 3 and must survive as-is.
	img := imaging.New(16, 16, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	img.SetNRGBA(8, 8, color.NRGBA{R: 101, G: 101, B: 101, A: 255})

	out := unsharpMask(img, 1.5, 0.5, 3)
	if c := out.NRGBAAt(8, 8); c.R != 101 {
		t.Errorf("sub-threshold pixel changed: %+v", c)
	}
}

func TestUnsharpMask_AmplifiesEdges(t *testing.T) {
	// Hard vertical edge: the dark side must get darker and the light side
	// lighter right at the boundary.
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := uint8(60)
			if x >= 16 {
				v = 190
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	out := unsharpMask(img, 1.5, 0.5, 3)
	if c := out.NRGBAAt(15, 16); c.R >= 60 {
		t.Errorf("dark edge side = %d, want < 60", c.R)
	}
	if c := out.NRGBAAt(16, 16); c.R <= 190 {
		t.Errorf("light edge side = %d, want > 190", c.R)
	}
}

func TestContrastAboutMean_SpreadsAroundImageMean(t *testing.T) {
	// Half 100, half 180: mean luminance 140. The dark half must move down,
	// the light half up, each by (v-mean)*0.08 rounded.
	img := image.NewNRGBA(image.Rect(0, 0, 20, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(100)
			if x >= 10 {
				v = 180
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	out := contrastAboutMean(img, 1.08)
	if c := out.NRGBAAt(0, 0); c.R != 97 {
		t.Errorf("dark half = %d, want 97", c.R)
	}
	if c := out.NRGBAAt(19, 0); c.R != 183 {
		t.Errorf("light half = %d, want 183", c.R)
	}
}

func TestEnhance_SaturationBoost(t *testing.T) {
	img := imaging.New(16, 16, color.NRGBA{R: 180, G: 100, B: 100, A: 255})
	out := Enhance(img, config.EnhanceConfig{
		SharpenRadius: 0, SharpenAmount: 0, SharpenThreshold: 0,
		Contrast: 1, Saturation: 1.5,
	})
	c := out.NRGBAAt(8, 8)
	if spread, orig := int(c.R)-int(c.B), 80; spread <= orig {
		t.Errorf("channel spread = %d, want > %d after saturation boost", spread, orig)
	}
}
