package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/five82/filmcard/internal/backend"
	"github.com/five82/filmcard/internal/film"
)

const failurePrefix = "Failed to fetch movie data"

// Input is supplied once per activation. A nil Locator is forwarded as-is.
type Input struct {
	Locator *string
}

// LocatorInput wraps a concrete locator.
func LocatorInput(locator string) Input {
	return Input{Locator: &locator}
}

// Options configure a Controller.
type Options struct {
	// Logger receives one error entry per failed activation. Nil discards.
	Logger *slog.Logger

	// OnChange is called after every applied transition. It runs with the
	// controller locked and must not call back into the Controller.
	OnChange func(State)
}

// Controller drives one request per activation and exposes the outcome.
// It is safe for concurrent use.
type Controller struct {
	fetcher  backend.Fetcher
	logger   *slog.Logger
	onChange func(State)

	mu         sync.Mutex
	generation uint64
	state      State
}

// NewController returns a Controller in the initial Pending state.
func NewController(fetcher backend.Fetcher, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		fetcher:  fetcher,
		logger:   logger,
		onChange: opts.OnChange,
		state:    PendingState(0),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Activate starts a new cycle: the state moves to Pending immediately and
// any earlier activation still in flight is superseded. The request itself
// is issued by Run on the returned Activation.
func (c *Controller) Activate(in Input) *Activation {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.state = PendingState(c.generation)
	if c.onChange != nil {
		c.onChange(c.state)
	}
	return &Activation{controller: c, input: in, generation: c.generation}
}

// Fetch activates and runs a cycle to completion, returning the resulting
// state.
func (c *Controller) Fetch(ctx context.Context, in Input) State {
	c.Activate(in).Run(ctx)
	return c.State()
}

func (c *Controller) resolve(next State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if next.Generation != c.generation || c.state.IsTerminal() {
		return false
	}
	c.state = next.clone()
	if c.onChange != nil {
		c.onChange(next)
	}
	return true
}

// Activation is one request/response cycle.
type Activation struct {
	controller *Controller
	input      Input
	generation uint64
	started    atomic.Bool
}

// Generation identifies this activation.
func (a *Activation) Generation() uint64 {
	return a.generation
}

// Run issues the request and blocks until it resolves. The outcome is
// applied only while this activation is still the current one; applied
// reports whether that happened. Only the first call issues a request.
func (a *Activation) Run(ctx context.Context) (State, bool) {
	c := a.controller
	if !a.started.CompareAndSwap(false, true) {
		return c.State(), false
	}

	var (
		payload film.Payload
		err     error
	)
	if c.fetcher == nil {
		err = errors.New("no fetcher configured")
	} else {
		payload, err = c.fetcher.FetchMovie(ctx, a.input.Locator)
	}

	var next State
	if err != nil {
		next = FailedState(a.generation, FailureMessage(err))
		c.logger.Error("film fetch failed",
			"locator", describeLocator(a.input.Locator),
			"generation", a.generation,
			"kind", errorKind(err),
			"error", err,
		)
	} else {
		next = ReadyState(a.generation, film.Normalize(payload))
	}

	applied := c.resolve(next)
	if !applied {
		c.logger.Debug("discarding superseded film fetch result",
			"generation", a.generation,
			"phase", next.Phase.String(),
		)
	}
	return next, applied
}

// FailureMessage renders err for the Failed state. It is never empty.
func FailureMessage(err error) string {
	if err == nil {
		return failurePrefix
	}
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("%s: server responded with status %d", failurePrefix, statusErr.Code)
	}
	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		return fmt.Sprintf("%s: %v", failurePrefix, transportErr.Err)
	}
	return fmt.Sprintf("%s: %v", failurePrefix, err)
}

func errorKind(err error) string {
	var (
		statusErr    *backend.StatusError
		transportErr *backend.TransportError
		malformedErr *backend.MalformedPayloadError
	)
	switch {
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &malformedErr):
		return "malformed"
	default:
		return "other"
	}
}

func describeLocator(locator *string) string {
	if locator == nil {
		return "<absent>"
	}
	return *locator
}
