package palette

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func lightnessOf(s Sample) float64 {
	_, l, _ := rgbToHLS(float64(s.R)/255, float64(s.G)/255, float64(s.B)/255)
	return l
}

func TestNew_ToneClassification(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		tone    Tone
	}{
		{"white", 255, 255, 255, ToneLight},
		{"black", 0, 0, 0, ToneDark},
		{"pure green boundary", 0, 255, 0, ToneDark}, // lightness exactly 0.5
		{"light beige", 200, 180, 160, ToneLight},
		{"dark brown", 50, 40, 30, ToneDark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.r, tt.g, tt.b)
			if s.Tone != tt.tone {
				t.Errorf("tone = %s (lightness %.3f), want %s", s.Tone, s.Lightness, tt.tone)
			}
		})
	}
}

func TestHLSRoundTrip(t *testing.T) {
	colors := [][3]uint8{
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255},
		{135, 206, 235}, {0, 106, 78}, {210, 180, 140},
		{17, 91, 203}, {255, 255, 255}, {0, 0, 0},
	}
	for _, c := range colors {
		h, l, s := rgbToHLS(float64(c[0])/255, float64(c[1])/255, float64(c[2])/255)
		r, g, b := hlsToRGB(h, l, s)
		if clamp8(r) != c[0] || clamp8(g) != c[1] || clamp8(b) != c[2] {
			t.Errorf("round trip %v -> (%d,%d,%d)", c, clamp8(r), clamp8(g), clamp8(b))
		}
	}
}

func TestDominant_TwoColorImage(t *testing.T) {
	// 70% red, 30% blue: the dominant estimate must land near red.
	img := image.NewNRGBA(image.Rect(0, 0, 100, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 100; x++ {
			c := color.NRGBA{R: 220, G: 30, B: 30, A: 255}
			if x >= 70 {
				c = color.NRGBA{R: 30, G: 30, B: 220, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	s := Dominant(img, false, 0)
	if s.R < 180 || s.B > 80 {
		t.Errorf("dominant = (%d,%d,%d), want near red", s.R, s.G, s.B)
	}
}

func TestDominant_AllTransparentFallsBack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20)) // zero value: alpha 0 everywhere
	s := Dominant(img, true, 125)
	if s != Neutral() {
		t.Errorf("fallback = %+v, want neutral gray", s)
	}
}

func TestDominant_OpaqueOnlyIgnoresBackdrop(t *testing.T) {
	// Transparent white backdrop with an opaque green square: only the
	// square may contribute.
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 10})
		}
	}
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 20, G: 180, B: 60, A: 255})
		}
	}

	s := Dominant(img, true, 125)
	if s.G < 150 || s.R > 60 {
		t.Errorf("dominant = (%d,%d,%d), want the opaque green", s.R, s.G, s.B)
	}
}

func TestPastel(t *testing.T) {
	got := Pastel(New(100, 50, 200))
	want := Sample{R: 209, G: 194, B: 239}
	if got.R != want.R || got.G != want.G || got.B != want.B {
		t.Errorf("Pastel = (%d,%d,%d), want (%d,%d,%d)", got.R, got.G, got.B, want.R, want.G, want.B)
	}
}

func TestComplementary_LightensAndDesaturates(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
	}{
		{"black", 0, 0, 0},
		{"saturated blue", 17, 91, 203},
		{"white", 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New(tt.r, tt.g, tt.b)
			out := Complementary(in)

			_, l, _ := rgbToHLS(float64(tt.r)/255, float64(tt.g)/255, float64(tt.b)/255)
			wantL := math.Min(0.92, l+0.3)
			if gotL := lightnessOf(out); math.Abs(gotL-wantL) > 0.01 {
				t.Errorf("lightness = %.3f, want %.3f", gotL, wantL)
			}
		})
	}
}

func TestContrastAdaptive_TargetsOppositeLightness(t *testing.T) {
	dark := ContrastAdaptive(New(20, 20, 80))
	if gotL := lightnessOf(dark); math.Abs(gotL-0.92) > 0.01 {
		t.Errorf("dark sample -> lightness %.3f, want 0.92", gotL)
	}
	light := ContrastAdaptive(New(230, 230, 240))
	if gotL := lightnessOf(light); math.Abs(gotL-0.85) > 0.01 {
		t.Errorf("light sample -> lightness %.3f, want 0.85", gotL)
	}
}

func TestPickOverlay(t *testing.T) {
	overlays := []Sample{
		New(135, 206, 235), // sky blue, lightest
		New(255, 248, 220),
		New(210, 180, 140),
		New(128, 128, 0),
		New(0, 106, 78), // bottle green, darkest
	}

	if got := PickOverlay(New(245, 245, 245), overlays); got != overlays[4] {
		t.Errorf("light product -> %+v, want darkest overlay", got)
	}
	if got := PickOverlay(New(15, 15, 15), overlays); got != overlays[0] {
		t.Errorf("dark product -> %+v, want lightest overlay", got)
	}
	// Lightness exactly 0.5 resolves to the lightest entry.
	if got := PickOverlay(New(0, 255, 0), overlays); got != overlays[0] {
		t.Errorf("boundary lightness -> %+v, want lightest overlay", got)
	}
	if got := PickOverlay(New(200, 200, 200), nil); got != Neutral() {
		t.Errorf("empty overlay list -> %+v, want neutral", got)
	}
}

func TestStrategy_Parse(t *testing.T) {
	for _, s := range []string{"pastel", "complementary", "contrast-adaptive", "binary-pick"} {
		if _, err := ParseStrategy(s); err != nil {
			t.Errorf("ParseStrategy(%q): %v", s, err)
		}
	}
	if _, err := ParseStrategy("vibrant"); err == nil {
		t.Error("ParseStrategy accepted unknown strategy")
	}
}
