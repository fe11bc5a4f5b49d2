// Package extract provides the foreground-extraction capability: raw image
// bytes in, alpha-matted image out. The real work happens in a remote
// model service; this package only speaks its wire contract.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Extractor isolates the subject of an image, returning an alpha-bearing
// image. The alpha channel may hold any value in range, not just 0/255.
// Extraction is the one slow, fallible step of the pipeline; callers own
// timeouts via ctx.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (image.Image, error)
}

// Func adapts a plain function to the Extractor interface.
type Func func(ctx context.Context, data []byte) (image.Image, error)

func (f Func) Extract(ctx context.Context, data []byte) (image.Image, error) {
	return f(ctx, data)
}

// Passthrough decodes the input without calling any service. It is meant
// for inputs that already carry an alpha matte.
type Passthrough struct{}

func (Passthrough) Extract(_ context.Context, data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode pre-cut image: %w", err)
	}
	return img, nil
}
