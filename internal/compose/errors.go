package compose

import (
	"errors"
	"fmt"
)

// Kind tags a pipeline failure for the caller.
type Kind string

const (
	// KindDecode marks an unreadable or corrupt input image. Fatal, no retry.
	KindDecode Kind = "decode_error"
	// KindExtraction marks a failed or timed-out foreground-extraction
	// call. Fatal for this request; the whole request may be retried later.
	KindExtraction Kind = "extraction_failure"
	// KindAsset marks a missing named asset whose default fallback is also
	// missing.
	KindAsset Kind = "asset_not_found"
	// KindConfig marks a degenerate layout or unknown style. Caught before
	// any pixel work, never clamped.
	KindConfig Kind = "invalid_configuration"
)

// PipelineError is the tagged failure every pipeline error surfaces as.
type PipelineError struct {
	Kind Kind
	Err  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// Is lets errors.Is match against a bare &PipelineError{Kind: k}.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Kind == e.Kind && t.Err == nil
}

func pipeErr(kind Kind, err error) *PipelineError {
	return &PipelineError{Kind: kind, Err: err}
}

// ErrKind extracts the kind from any error in the chain, or "" when the
// error did not come from the pipeline.
func ErrKind(err error) Kind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
