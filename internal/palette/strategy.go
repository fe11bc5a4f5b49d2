package palette

import (
	"fmt"
	"math"
)

// Strategy selects how a background/overlay color is derived from a
// dominant-color sample.
type Strategy string

const (
	// StrategyPastel blends the sample 70% toward white.
	StrategyPastel Strategy = "pastel"
	// StrategyComplementary lightens and desaturates in HLS space.
	StrategyComplementary Strategy = "complementary"
	// StrategyContrastAdaptive targets a fixed lightness opposite the sample.
	StrategyContrastAdaptive Strategy = "contrast-adaptive"
	// StrategyBinaryPick picks the darkest overlay for light products and
	// the lightest for dark ones.
	StrategyBinaryPick Strategy = "binary-pick"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyPastel, StrategyComplementary, StrategyContrastAdaptive, StrategyBinaryPick:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown overlay strategy %q", s)
}

// Apply runs the strategy. overlays is the ordered lightest-to-darkest
// candidate list consumed by StrategyBinaryPick; the other strategies
// ignore it. An empty list falls back to the neutral gray so Apply always
// yields a usable color.
func (st Strategy) Apply(s Sample, overlays []Sample) Sample {
	switch st {
	case StrategyComplementary:
		return Complementary(s)
	case StrategyContrastAdaptive:
		return ContrastAdaptive(s)
	case StrategyBinaryPick:
		return PickOverlay(s, overlays)
	default:
		return Pastel(s)
	}
}

// Pastel mixes the sample 70% toward white, linearly per channel.
func Pastel(s Sample) Sample {
	const white = 0.7
	mix := func(c uint8) uint8 {
		return uint8(math.Round(float64(c)*(1-white) + 255*white))
	}
	return New(mix(s.R), mix(s.G), mix(s.B))
}

// Complementary lightens the sample by 0.3 (capped at 0.92) and scales
// saturation to 30% (floored at 0.1) for a soft, non-distracting
// background.
func Complementary(s Sample) Sample {
	h, l, sat := rgbToHLS(float64(s.R)/255, float64(s.G)/255, float64(s.B)/255)
	l = math.Min(0.92, l+0.3)
	sat = math.Max(0.1, sat*0.3)
	r, g, b := hlsToRGB(h, l, sat)
	return New(clamp8(r), clamp8(g), clamp8(b))
}

// ContrastAdaptive targets lightness 0.92 for dark samples and 0.85 for
// light ones, with saturation scaled to 30% capped at 0.15.
func ContrastAdaptive(s Sample) Sample {
	h, l, sat := rgbToHLS(float64(s.R)/255, float64(s.G)/255, float64(s.B)/255)
	if l < 0.5 {
		l = 0.92
	} else {
		l = 0.85
	}
	sat = math.Min(0.15, sat*0.3)
	r, g, b := hlsToRGB(h, l, sat)
	return New(clamp8(r), clamp8(g), clamp8(b))
}

// PickOverlay chooses from an ordered lightest-to-darkest candidate list:
// lightness > 0.5 picks the darkest entry, lightness <= 0.5 the lightest.
func PickOverlay(s Sample, overlays []Sample) Sample {
	if len(overlays) == 0 {
		return Neutral()
	}
	if s.Lightness > 0.5 {
		return overlays[len(overlays)-1]
	}
	return overlays[0]
}
