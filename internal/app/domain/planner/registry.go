package planner

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/flow"
)

const (
	controllerTTL   = 30 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// ControllerRegistry hands out one flow.Controller per browser session.
// Idle controllers expire with their session; an expired controller simply
// means the next request starts from HOME again.
type ControllerRegistry struct {
	mu     sync.Mutex
	cache  *gocache.Cache
	gen    flow.Generator
	logger *zap.Logger
}

func NewControllerRegistry(gen flow.Generator, logger *zap.Logger) *ControllerRegistry {
	return &ControllerRegistry{
		cache:  gocache.New(controllerTTL, cleanupInterval),
		gen:    gen,
		logger: logger,
	}
}

// Get returns the controller for the session, creating one on first use.
func (r *ControllerRegistry) Get(sessionID string) *flow.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(sessionID); ok {
		ctrl := v.(*flow.Controller)
		r.cache.SetDefault(sessionID, ctrl) // sliding expiry
		return ctrl
	}
	ctrl := flow.NewController(r.gen, r.logger)
	r.cache.SetDefault(sessionID, ctrl)
	return ctrl
}
