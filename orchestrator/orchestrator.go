// Package orchestrator sequences one generation cycle: summarize, draw,
// render, and the download of whatever ends up on display.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/textviz/internal/logging"
	"github.com/1broseidon/textviz/models"
	"github.com/1broseidon/textviz/render"
)

// User-facing messages. Internal diagnostics never reach these.
const (
	ValidationMessage = "Please enter some text or paste a URL."
	FailureMessage    = "Generation failed. The content may be too complex or the network unavailable, please try again later."
)

// ErrValidation is returned by Submit for empty or whitespace-only input.
var ErrValidation = errors.New("input is empty")

// RemoteError wraps a failure of one of the two remote steps.
type RemoteError struct {
	Phase models.Phase
	Err   error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Phase, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Generator is the remote generation client as seen by the orchestrator.
type Generator interface {
	Summarize(ctx context.Context, input string, category models.Category) (string, error)
	Visualize(ctx context.Context, summary string, category models.Category) (models.Result, error)
}

// State is a point-in-time copy of everything the UI displays.
type State struct {
	Phase   models.Phase
	Request *models.GenerationRequest
	Result  models.Result
	Error   string
	// Rendered is the renderer's live output for diagram results.
	Rendered *render.Rendered
	// RenderError replaces the visual when the renderer rejected the markup.
	RenderError string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for download file names.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// Orchestrator owns the state of one user's generation cycles. It allows at
// most one cycle in flight only when callers consult Busy before Submit.
type Orchestrator struct {
	gen      Generator
	renderer render.Renderer
	logger   logging.Logger
	now      func() time.Time

	mu        sync.RWMutex
	state     State
	cycle     uint64
	observers []func(models.Phase)
}

// New builds an orchestrator. A nil renderer leaves diagram results unrendered.
func New(gen Generator, renderer render.Renderer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:      gen,
		renderer: renderer,
		logger:   logging.NewDefaultLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnPhase registers fn to be called on every phase change, in order.
func (o *Orchestrator) OnPhase(fn func(models.Phase)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, fn)
}

// Busy reports whether a cycle is in flight. The triggering control should
// be disabled while it returns true.
func (o *Orchestrator) Busy() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.Phase != models.PhaseIdle
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s := o.state
	if s.Request != nil {
		req := *s.Request
		s.Request = &req
	}
	return s
}

// Submit runs one generation cycle. The returned error mirrors what the
// state already shows: ErrValidation, a *RemoteError, or nil.
func (o *Orchestrator) Submit(ctx context.Context, input string, category models.Category) error {
	if strings.TrimSpace(input) == "" {
		o.mu.Lock()
		o.cycle++
		o.state.Error = ValidationMessage
		o.state.Result = nil
		o.state.Rendered = nil
		o.state.RenderError = ""
		o.mu.Unlock()
		return ErrValidation
	}

	o.mu.Lock()
	o.cycle++
	cycle := o.cycle
	o.state.Request = &models.GenerationRequest{Input: input, Category: category}
	o.state.Error = ""
	o.state.Result = nil
	o.state.Rendered = nil
	o.state.RenderError = ""
	o.mu.Unlock()

	result, err := o.generate(ctx, input, category)
	if err != nil {
		return err
	}

	if result.Category().IsDiagram() {
		o.renderDiagram(ctx, cycle, result.Content())
	}
	return nil
}

// generate runs the two remote steps. The phase is back at Idle on every
// exit path, panics from a collaborator included.
func (o *Orchestrator) generate(ctx context.Context, input string, category models.Category) (result models.Result, err error) {
	phase := models.PhaseSummarizing
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, o.fail(phase, fmt.Errorf("panic: %v", r))
		}
		o.setPhase(models.PhaseIdle)
	}()

	o.setPhase(models.PhaseSummarizing)
	summary, err := o.gen.Summarize(ctx, input, category)
	if err != nil {
		return nil, o.fail(phase, err)
	}

	phase = models.PhaseDrawing
	o.setPhase(models.PhaseDrawing)
	result, err = o.gen.Visualize(ctx, summary, category)
	if err != nil {
		return nil, o.fail(phase, err)
	}
	if result == nil {
		return nil, o.fail(phase, errors.New("visualize returned no result"))
	}

	o.mu.Lock()
	o.state.Result = result
	o.mu.Unlock()
	return result, nil
}

func (o *Orchestrator) fail(phase models.Phase, err error) error {
	o.logger.Errorf("generation failed while %s: %v", phase, err)
	o.mu.Lock()
	o.state.Error = FailureMessage
	o.state.Result = nil
	o.mu.Unlock()
	return &RemoteError{Phase: phase, Err: err}
}

// renderDiagram makes one render attempt. Output from a cycle that has since
// been superseded is dropped.
func (o *Orchestrator) renderDiagram(ctx context.Context, cycle uint64, markup string) {
	if o.renderer == nil {
		return
	}

	out, err := o.renderer.Render(ctx, markup)

	o.mu.Lock()
	defer o.mu.Unlock()
	if cycle != o.cycle {
		return
	}
	if err != nil {
		o.logger.Warnf("diagram render failed: %v", err)
		o.state.RenderError = render.RenderFailedMessage
		return
	}
	o.state.Rendered = out
}

func (o *Orchestrator) setPhase(p models.Phase) {
	o.mu.Lock()
	o.state.Phase = p
	observers := append([]func(models.Phase){}, o.observers...)
	o.mu.Unlock()

	for _, fn := range observers {
		fn(p)
	}
}
