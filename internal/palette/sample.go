// Package palette extracts a representative color from an image and derives
// background/overlay colors from it.
package palette

import (
	"image"
	"image/color"
	"sort"
)

// Tone classifies a color by its HLS lightness.
type Tone string

const (
	ToneLight Tone = "light"
	ToneDark  Tone = "dark"
)

// Sample is an RGB color with its derived lightness classification.
type Sample struct {
	R, G, B   uint8
	Lightness float64
	Tone      Tone
}

// New builds a Sample, computing lightness and tone from the channels.
// Lightness > 0.5 classifies as light.
func New(r, g, b uint8) Sample {
	_, l, _ := rgbToHLS(float64(r)/255, float64(g)/255, float64(b)/255)
	tone := ToneDark
	if l > 0.5 {
		tone = ToneLight
	}
	return Sample{R: r, G: g, B: b, Lightness: l, Tone: tone}
}

// NRGBA returns the sample as an opaque color.
func (s Sample) NRGBA() color.NRGBA {
	return color.NRGBA{R: s.R, G: s.G, B: s.B, A: 255}
}

// Neutral is the fallback returned when no pixels survive filtering.
func Neutral() Sample { return New(128, 128, 128) }

// paletteSize is the median-cut bucket count. Five buckets is enough to
// separate a product from its packaging and shadows.
const paletteSize = 5

// maxSamples caps how many pixels feed the quantizer; larger images are
// sampled on a uniform grid.
const maxSamples = 1 << 16

type pixel struct{ r, g, b uint8 }

// Dominant estimates the most frequent color of img via median-cut
// quantization. With opaqueOnly set, pixels whose alpha is below
// alphaThreshold are ignored; if nothing remains the neutral gray fallback
// is returned rather than an error.
func Dominant(img image.Image, opaqueOnly bool, alphaThreshold int) Sample {
	px := collect(img, opaqueOnly, alphaThreshold)
	if len(px) == 0 {
		return Neutral()
	}

	buckets := medianCut(px, paletteSize)
	best := buckets[0]
	for _, b := range buckets[1:] {
		if len(b) > len(best) {
			best = b
		}
	}

	var sr, sg, sb uint64
	for _, p := range best {
		sr += uint64(p.r)
		sg += uint64(p.g)
		sb += uint64(p.b)
	}
	n := uint64(len(best))
	return New(uint8(sr/n), uint8(sg/n), uint8(sb/n))
}

func collect(img image.Image, opaqueOnly bool, alphaThreshold int) []pixel {
	b := img.Bounds()
	step := 1
	for (b.Dx()/step)*(b.Dy()/step) > maxSamples {
		step++
	}

	px := make([]pixel, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if opaqueOnly && int(c.A) < alphaThreshold {
				continue
			}
			px = append(px, pixel{c.R, c.G, c.B})
		}
	}
	return px
}

// medianCut splits the pixel set along its widest channel until k buckets
// exist or no bucket can be split further.
func medianCut(px []pixel, k int) [][]pixel {
	buckets := [][]pixel{px}
	for len(buckets) < k {
		// Split the bucket with the widest channel range.
		idx, ch := -1, 0
		widest := 0
		for i, b := range buckets {
			if len(b) < 2 {
				continue
			}
			c, r := widestChannel(b)
			if r > widest {
				idx, ch, widest = i, c, r
			}
		}
		if idx < 0 || widest == 0 {
			break
		}

		b := buckets[idx]
		sort.Slice(b, func(i, j int) bool {
			return channel(b[i], ch) < channel(b[j], ch)
		})
		mid := len(b) / 2
		buckets[idx] = b[:mid]
		buckets = append(buckets, b[mid:])
	}
	return buckets
}

func channel(p pixel, ch int) uint8 {
	switch ch {
	case 0:
		return p.r
	case 1:
		return p.g
	default:
		return p.b
	}
}

func widestChannel(px []pixel) (ch, rng int) {
	var lo, hi [3]uint8
	lo = [3]uint8{255, 255, 255}
	for _, p := range px {
		for c, v := range [3]uint8{p.r, p.g, p.b} {
			if v < lo[c] {
				lo[c] = v
			}
			if v > hi[c] {
				hi[c] = v
			}
		}
	}
	for c := 0; c < 3; c++ {
		if d := int(hi[c]) - int(lo[c]); d > rng {
			ch, rng = c, d
		}
	}
	return ch, rng
}
