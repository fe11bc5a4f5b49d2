// Package compose orchestrates the collage pipeline: layout geometry,
// foreground extraction, color selection, per-slot fitting, layered canvas
// assembly, borders, and the finishing enhancement pass.
package compose

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/Ankurjain1121/collage-tool-api/internal/assets"
	"github.com/Ankurjain1121/collage-tool-api/internal/config"
	"github.com/Ankurjain1121/collage-tool-api/internal/extract"
	"github.com/Ankurjain1121/collage-tool-api/internal/fit"
	"github.com/Ankurjain1121/collage-tool-api/internal/imgio"
	"github.com/Ankurjain1121/collage-tool-api/internal/layout"
	"github.com/Ankurjain1121/collage-tool-api/internal/palette"
)

// BorderStyle selects how the frame is drawn on the finished canvas.
type BorderStyle string

const (
	BorderSolid BorderStyle = "solid"         // rule-based rectangles along edges and gap
	BorderAsset BorderStyle = "asset-overlay" // alpha-blended decorative asset
	BorderNone  BorderStyle = "none"
)

// Options are the per-request knobs. Zero values mean "use the configured
// defaults".
type Options struct {
	// BackgroundName selects a base background asset; "random" picks from
	// the catalog, "" uses a flat white base layer.
	BackgroundName string
	// BorderStyle overrides the configured style when non-empty.
	BorderStyle BorderStyle
	// BorderName selects the border asset for BorderAsset style.
	BorderName string
}

// Composer builds collages. It is safe for concurrent use: every Create
// call works on request-local state only.
type Composer struct {
	cfg       config.Config
	geom      layout.Layout
	extractor extract.Extractor
	store     *assets.Store
	logger    *zap.Logger

	slot1Fit fit.Policy
	slot2Fit fit.Policy
	strategy palette.Strategy
	overlays []palette.Sample
	border   color.NRGBA
}

// New validates the configuration, computes the layout once, and returns a
// ready composer. Invalid configuration fails here with the
// invalid_configuration kind, before any request runs.
func New(cfg config.Config, extractor extract.Extractor, store *assets.Store, logger *zap.Logger) (*Composer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, pipeErr(KindConfig, err)
	}
	geom, err := layout.Compute(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Border, cfg.Canvas.Gap, cfg.Canvas.Image1Ratio)
	if err != nil {
		return nil, pipeErr(KindConfig, err)
	}

	slot1, _ := fit.ParsePolicy(cfg.Style.Slot1Fit)
	slot2, _ := fit.ParsePolicy(cfg.Style.Slot2Fit)
	strategy, _ := palette.ParseStrategy(cfg.Style.OverlayStrategy)
	bc := cfg.Style.BorderColor

	return &Composer{
		cfg:       cfg,
		geom:      geom,
		extractor: extractor,
		store:     store,
		logger:    logger,
		slot1Fit:  slot1,
		slot2Fit:  slot2,
		strategy:  strategy,
		overlays:  cfg.OverlaySamples(),
		border:    color.NRGBA{R: uint8(bc[0]), G: uint8(bc[1]), B: uint8(bc[2]), A: 255},
	}, nil
}

// Layout exposes the computed geometry, mainly for callers that log it.
func (c *Composer) Layout() layout.Layout { return c.geom }

// Create runs the whole pipeline for one pair of images and returns the
// finished collage as PNG bytes. Nothing is persisted here; on any error
// no output bytes are produced.
func (c *Composer) Create(ctx context.Context, product, variants []byte, opts Options) ([]byte, error) {
	canvas, bgName, err := c.baseLayer(opts.BackgroundName)
	if err != nil {
		return nil, err
	}

	// The sole suspension point: everything after this is CPU-bound.
	cutout, err := c.extractor.Extract(ctx, product)
	if err != nil {
		return nil, pipeErr(KindExtraction, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, pipeErr(KindExtraction, err)
	}

	dominant := palette.Dominant(cutout, true, c.cfg.Style.AlphaThreshold)
	overlay := c.strategy.Apply(dominant, c.overlays)
	c.logger.Debug("overlay selected",
		zap.String("background", bgName),
		zap.Uint8s("dominant", []uint8{dominant.R, dominant.G, dominant.B}),
		zap.Uint8s("overlay", []uint8{overlay.R, overlay.G, overlay.B}),
		zap.String("tone", string(dominant.Tone)))

	slot1 := fit.Fit(cutout, c.geom.Box1.W, c.geom.Box1.H, c.slot1Fit, overlay.NRGBA())

	variantImg, err := imgio.Decode(variants)
	if err != nil {
		return nil, pipeErr(KindDecode, err)
	}
	if fit.ShouldRotate(variantImg, c.geom.Box2.W, c.geom.Box2.H) {
		c.logger.Debug("rotating variants image to match box aspect")
		variantImg = imaging.Rotate90(variantImg)
	}
	slot2 := fit.Fit(variantImg, c.geom.Box2.W, c.geom.Box2.H, c.slot2Fit, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	// Slot 2 first; slot 1 fully overwrites its own rectangle.
	canvas = imaging.Paste(canvas, slot2, image.Pt(c.geom.Box2.X, c.geom.Box2.Y))
	canvas = imaging.Paste(canvas, slot1, image.Pt(c.geom.Box1.X, c.geom.Box1.Y))

	canvas, err = c.drawBorder(canvas, opts)
	if err != nil {
		return nil, err
	}

	canvas = Enhance(canvas, c.cfg.Enhance)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, pipeErr(KindDecode, fmt.Errorf("encode collage: %w", err))
	}
	return buf.Bytes(), nil
}

// baseLayer builds the canvas-sized bottom layer: a crop-filled background
// asset, or flat white when none is requested.
func (c *Composer) baseLayer(name string) (*image.NRGBA, string, error) {
	w, h := c.geom.CanvasW, c.geom.CanvasH
	if name == "" {
		return imaging.New(w, h, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), "", nil
	}

	var (
		bg  image.Image
		err error
	)
	if name == "random" {
		bg, name, err = c.store.RandomBackground()
	} else {
		bg, err = c.store.Background(name)
	}
	if err != nil {
		return nil, "", pipeErr(KindAsset, err)
	}
	return fit.Fit(bg, w, h, fit.CropFill, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), name, nil
}

func (c *Composer) drawBorder(canvas *image.NRGBA, opts Options) (*image.NRGBA, error) {
	style := BorderStyle(c.cfg.Style.BorderStyle)
	if opts.BorderStyle != "" {
		style = opts.BorderStyle
	}

	switch style {
	case BorderNone:
		return canvas, nil

	case BorderAsset:
		asset, err := c.store.Border(opts.BorderName)
		if err != nil {
			return nil, pipeErr(KindAsset, err)
		}
		resized := imaging.Resize(asset, c.geom.CanvasW, c.geom.CanvasH, imaging.Lanczos)
		return imaging.Overlay(canvas, resized, image.Pt(0, 0), 1.0), nil

	default: // BorderSolid
		return c.drawSolidBorder(canvas), nil
	}
}

// drawSolidBorder paints the four edge bands and the vertical gap band in
// the configured border color.
func (c *Composer) drawSolidBorder(canvas *image.NRGBA) *image.NRGBA {
	w, h, b := c.geom.CanvasW, c.geom.CanvasH, c.geom.Border
	if b > 0 {
		horizontal := imaging.New(w, b, c.border)
		vertical := imaging.New(b, h, c.border)
		canvas = imaging.Paste(canvas, horizontal, image.Pt(0, 0))
		canvas = imaging.Paste(canvas, horizontal, image.Pt(0, h-b))
		canvas = imaging.Paste(canvas, vertical, image.Pt(0, 0))
		canvas = imaging.Paste(canvas, vertical, image.Pt(w-b, 0))
	}
	if c.geom.Gap > 0 {
		divider := imaging.New(c.geom.Gap, h-2*b, c.border)
		canvas = imaging.Paste(canvas, divider, image.Pt(c.geom.Box1.X+c.geom.Box1.W, b))
	}
	return canvas
}
