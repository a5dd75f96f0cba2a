// Package scope decides whether raw input should be considered intended
// for a configured target process, based on which window currently has
// the foreground. The decision is recomputed on a fixed timer rather
// than per query so OS call overhead stays bounded; consumers tolerate
// roughly one refresh interval of staleness.
package scope

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// DefaultRefreshInterval is how often the foreground decision is
// re-evaluated.
const DefaultRefreshInterval = 100 * time.Millisecond

// ForegroundQuery resolves the image name of the process owning the
// current foreground window.
type ForegroundQuery interface {
	// ForegroundProcessName returns the owning process's image name.
	// Any failure (no foreground window, process unopenable) is an
	// error; the gate treats it as out of scope, not as fatal.
	ForegroundProcessName() (string, error)
}

// Gate holds the current in-scope decision. With no target configured
// the decision is always true (global capture).
type Gate struct {
	query ForegroundQuery
	log   *logger.Logger

	mu     sync.Mutex
	target string // normalized, empty means global
	done   chan struct{}

	inScope atomic.Bool
}

// NewGate creates a gate over the given foreground query. The initial
// state is global capture: in scope until a target is set.
func NewGate(query ForegroundQuery) *Gate {
	g := &Gate{
		query: query,
		log:   logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "scope-gate")),
	}
	g.inScope.Store(true)
	return g
}

// SetTarget configures the process image name input must be directed at.
// Empty means always in scope. The decision is recomputed immediately
// rather than waiting for the next tick.
func (g *Gate) SetTarget(name string) {
	g.mu.Lock()
	g.target = normalizeImageName(name)
	g.mu.Unlock()
	g.Refresh()
}

// InScope reports the most recently computed decision. O(1), no OS call.
func (g *Gate) InScope() bool {
	return g.inScope.Load()
}

// Refresh recomputes the decision once, outside the timer schedule.
func (g *Gate) Refresh() {
	g.mu.Lock()
	target := g.target
	g.mu.Unlock()

	if target == "" {
		g.inScope.Store(true)
		return
	}

	name, err := g.query.ForegroundProcessName()
	if err != nil {
		// Foreground owner unresolvable: not in scope, never a
		// failed tick.
		g.inScope.Store(false)
		return
	}
	g.inScope.Store(normalizeImageName(name) == target)
}

// Start launches the periodic refresher. No-op when already running.
func (g *Gate) Start(interval time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done != nil {
		return
	}
	done := make(chan struct{})
	g.done = done

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				g.Refresh()
			}
		}
	}()
	g.log.Infoln("Scope refresher started, interval", interval)
}

// Stop halts the refresher. Idempotent.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done == nil {
		return
	}
	close(g.done)
	g.done = nil
	g.log.Infoln("Scope refresher stopped")
}

// normalizeImageName reduces a process image name or path to a lowercase
// base name without its extension, so "C:\Games\Game.EXE", "game.exe"
// and "game" all compare equal.
func normalizeImageName(name string) string {
	base := strings.ToLower(filepath.Base(strings.TrimSpace(name)))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
