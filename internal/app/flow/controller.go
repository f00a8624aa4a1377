package flow

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
	"github.com/jeonnam-stay/jeonnam-stay/internal/observability/metrics"
)

// State is the view the user is currently on.
type State int

const (
	StateHome State = iota
	StateAnalyzing
	StateResult
)

func (s State) String() string {
	switch s {
	case StateHome:
		return "HOME"
	case StateAnalyzing:
		return "ANALYZING"
	case StateResult:
		return "RESULT"
	default:
		return "UNKNOWN"
	}
}

// userFacingError is what the user sees when generation fails; internal
// diagnostics stay in the logs.
const userFacingError = "The analysis server is busy right now. Please try again in a moment."

// Generator is the external itinerary-generation collaborator boundary.
type Generator interface {
	Generate(ctx context.Context, prefs models.UserPreferences) (*models.RecommendedRoute, error)
}

// Snapshot is a consistent read of the controller for rendering.
type Snapshot struct {
	State    State
	Progress int
	Phase    string
	Logs     []string
	Route    *models.RecommendedRoute
	Error    string
}

// Controller drives the HOME -> ANALYZING -> RESULT flow for one session.
// The transition to RESULT is gated on both the generator result being stored
// and the presenter's finish signal, so the loader never flashes through on a
// fast response and never completes before data is actually ready on a slow
// one. Route, error and progress state are owned here and written only in
// response to discrete signals: submit, generator success or failure, and the
// presenter finish.
type Controller struct {
	mu        sync.Mutex
	state     State
	route     *models.RecommendedRoute
	errMsg    string
	cycle     uint64
	presenter *ProgressPresenter

	gen    Generator
	logger *zap.Logger

	// newPresenter is swapped out by tests to shrink timings.
	newPresenter func(phases []string, onFinish func()) *ProgressPresenter
}

func NewController(gen Generator, logger *zap.Logger) *Controller {
	return &Controller{
		state:        StateHome,
		gen:          gen,
		logger:       logger,
		newPresenter: NewProgressPresenter,
	}
}

// StartAnalysis is valid only from HOME. It clears any prior route or error,
// moves to ANALYZING and launches exactly one generator call for this cycle.
func (c *Controller) StartAnalysis(ctx context.Context, prefs models.UserPreferences) error {
	c.mu.Lock()
	if c.state != StateHome {
		c.mu.Unlock()
		return models.ErrAnalysisInProgress
	}
	c.state = StateAnalyzing
	c.route = nil
	c.errMsg = ""
	c.cycle++
	cycle := c.cycle

	p := c.newPresenter(AnalysisPhases, func() { c.completeAnalysis(cycle) })
	c.presenter = p
	c.mu.Unlock()

	metrics.Get().ActiveAnalyses.Add(ctx, 1)
	c.logger.Info("Analysis started",
		zap.String("style", string(prefs.Style)),
		zap.Int("duration", prefs.Duration))

	p.Start()
	// Detach from the request context: the analyze response returns before
	// generation finishes, and an in-flight call is never cancelled.
	go c.runGeneration(context.WithoutCancel(ctx), cycle, prefs, p)
	return nil
}

func (c *Controller) runGeneration(ctx context.Context, cycle uint64, prefs models.UserPreferences, p *ProgressPresenter) {
	defer metrics.Get().ActiveAnalyses.Add(ctx, -1)

	route, err := c.gen.Generate(ctx, prefs)

	c.mu.Lock()
	if cycle != c.cycle || c.state != StateAnalyzing {
		// Reset happened mid-flight; the late response must not force a
		// transition out of HOME.
		c.mu.Unlock()
		c.logger.Info("Discarding stale generation result", zap.Uint64("cycle", cycle))
		return
	}
	if err != nil {
		c.errMsg = userFacingError
		c.state = StateHome
		c.presenter = nil
		c.mu.Unlock()
		p.Stop()
		c.logger.Error("Analysis failed, returning to home", zap.Error(err))
		return
	}
	c.route = route
	c.mu.Unlock()

	p.SetDataReady()
}

// completeAnalysis is invoked exclusively by the presenter finish signal.
func (c *Controller) completeAnalysis(cycle uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cycle != c.cycle || c.state != StateAnalyzing || c.route == nil {
		return
	}
	c.state = StateResult
	c.presenter = nil
	c.logger.Info("Analysis complete", zap.String("city", c.route.SelectedCity))
}

// Reset is valid from any state; it discards the route and error and returns
// to HOME. A generation still in flight is left to finish and be discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	p := c.presenter
	c.state = StateHome
	c.route = nil
	c.errMsg = ""
	c.cycle++
	c.presenter = nil
	c.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

// Snapshot returns a consistent view of the controller state. The returned
// route pointer is shared; renderers must not mutate it.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	state := c.state
	route := c.route
	errMsg := c.errMsg
	p := c.presenter
	c.mu.Unlock()

	snap := Snapshot{State: state, Route: route, Error: errMsg}
	switch {
	case p != nil:
		snap.Progress, snap.Phase, snap.Logs = p.Snapshot()
	case state == StateResult:
		snap.Progress = 100
	}
	return snap
}
