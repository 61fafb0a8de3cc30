// Package render turns diagram markup into SVG through an external renderer.
package render

import (
	"context"
	"errors"
	"fmt"
)

// RenderFailedMessage is what the user sees in place of a diagram that failed to render.
const RenderFailedMessage = "Unable to render the diagram. Try simplifying the content."

// Rendered is the renderer's final vector output.
type Rendered struct {
	SVG string
}

// Renderer renders diagram-description-language markup.
type Renderer interface {
	Render(ctx context.Context, markup string) (*Rendered, error)
}

// RenderError reports a rejected document or a failed render run.
type RenderError struct {
	Err    error
	Detail string
}

func (e *RenderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("render failed: %v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ErrEmptyMarkup is returned for blank documents without invoking the renderer.
var ErrEmptyMarkup = errors.New("empty diagram markup")

// Func adapts a plain function to Renderer.
type Func func(ctx context.Context, markup string) (*Rendered, error)

func (f Func) Render(ctx context.Context, markup string) (*Rendered, error) {
	return f(ctx, markup)
}
