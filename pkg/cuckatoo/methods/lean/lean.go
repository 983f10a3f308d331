// Package lean implements the lean solver mode: bitmap trimming over
// one bit per edge, followed by the 42-cycle search on the survivors.
package lean

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"cuckatoo/pkg/cuckatoo/core"
	"cuckatoo/pkg/cuckatoo/cycle"
	"cuckatoo/pkg/cuckatoo/hardware"
	"cuckatoo/pkg/cuckatoo/keys"
	"cuckatoo/pkg/cuckatoo/siphash"
)

// Mode implements core.SolverMode with the lean trimming strategy.
type Mode struct {
	initialized bool
	mutex       sync.Mutex
	caps        *core.Capabilities
	guard       *hardware.MemoryGuard
	trimmer     *Trimmer
	finder      *cycle.Finder
	log         *logrus.Entry
}

// NewMode creates a new lean solver mode.
func NewMode() *Mode {
	return &Mode{
		guard:  hardware.NewMemoryGuard(),
		finder: cycle.NewFinder(),
		log:    logrus.WithField("mode", "lean"),
	}
}

// Name returns the short mode name used on the command line.
func (m *Mode) Name() string {
	return "lean"
}

// IsAvailable returns true; the lean mode is always implemented.
func (m *Mode) IsAvailable() bool {
	return true
}

// Initialize marks the mode ready.
func (m *Mode) Initialize() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.initialized = true
	return nil
}

// Shutdown releases the mode's buffers.
func (m *Mode) Shutdown() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.initialized = false
	m.trimmer = nil
	return nil
}

// Solve runs one full attempt. The job is validated and the bitmap
// footprint checked before anything is allocated; all working buffers
// are reset at the attempt boundary so no state crosses attempts.
func (m *Mode) Solve(job *core.Job) (*core.Result, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.initialized {
		return nil, &core.SolverError{
			Type:    core.ErrorNotInitialized,
			Message: "lean mode not initialized",
		}
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if m.trimmer == nil || m.trimmer.EdgeBits() != job.EdgeBits {
		if err := m.guard.CheckBitmaps(job.EdgeBits); err != nil {
			return nil, err
		}
		m.trimmer = NewTrimmer(job.EdgeBits)
	}

	result := &core.Result{Method: m.Name()}

	start := time.Now()
	k := keys.Derive(job.Header, job.Nonce)
	hasher := siphash.New(k, job.EdgeBits)

	trimStart := time.Now()
	result.SurvivingEdges = m.trimmer.Trim(hasher, job.TrimmingRounds)
	trimDone := time.Now()

	survivors := m.trimmer.Survivors(hasher)
	matDone := time.Now()

	m.log.WithFields(logrus.Fields{
		"nonce":     job.Nonce,
		"edge_bits": job.EdgeBits,
		"survivors": result.SurvivingEdges,
	}).Debug("trimming complete")

	m.finder.Reset(len(survivors))
	if sol, found := m.finder.Find(survivors); found {
		result.Found = true
		result.Solution = sol
	}
	searchDone := time.Now()

	result.Timings = core.PhaseTimings{
		EdgeGen:   trimStart.Sub(start).Seconds() + matDone.Sub(trimDone).Seconds(),
		Trimming:  trimDone.Sub(trimStart).Seconds(),
		Searching: searchDone.Sub(matDone).Seconds(),
	}
	return result, nil
}

// GetCapabilities returns the capabilities of the lean mode.
func (m *Mode) GetCapabilities() *core.Capabilities {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.caps == nil {
		m.caps = &core.Capabilities{
			Name:             "lean",
			Available:        true,
			ProductionReady:  true,
			MemoryPerAttempt: core.BitmapFootprint(core.DefaultEdgeBits),
		}
	}
	return m.caps
}
