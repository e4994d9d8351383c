package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for resume field extraction.
type Client interface {
	// ExtractFields returns the raw field dictionary the model produced for
	// the given resume text. Keys and value shapes are unconstrained; the
	// screening normalizer absorbs that variability.
	ExtractFields(ctx context.Context, resumeText string) (map[string]any, error)
}

// ErrInvalidJSON is returned when the model output still cannot be parsed
// after the single corrective retry.
var ErrInvalidJSON = errors.New("extraction output is not valid JSON")

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// ExtractFields returns ErrNotImplemented.
func (PlaceholderClient) ExtractFields(ctx context.Context, resumeText string) (map[string]any, error) {
	_ = ctx
	_ = resumeText
	return nil, ErrNotImplemented
}
