// Package slean reserves the mode slot for slean trimming, the
// slice-by-slice hybrid of the lean and mean strategies. This solver
// does not implement it.
package slean

import "cuckatoo/pkg/cuckatoo/core"

const unavailableReason = "slean trimming is not implemented; use lean"

// Mode is a permanently-unavailable placeholder for slean trimming.
type Mode struct{}

// NewMode creates the placeholder mode.
func NewMode() *Mode {
	return &Mode{}
}

// Name returns the short mode name used on the command line.
func (m *Mode) Name() string {
	return "slean"
}

// IsAvailable returns false; slean trimming is not implemented.
func (m *Mode) IsAvailable() bool {
	return false
}

// Initialize reports the mode as unavailable.
func (m *Mode) Initialize() error {
	return core.NewModeUnavailableError(m.Name(), unavailableReason)
}

// Shutdown performs no work.
func (m *Mode) Shutdown() error {
	return nil
}

// Solve reports the mode as unavailable.
func (m *Mode) Solve(job *core.Job) (*core.Result, error) {
	return nil, core.NewModeUnavailableError(m.Name(), unavailableReason)
}

// GetCapabilities returns the capabilities of the placeholder.
func (m *Mode) GetCapabilities() *core.Capabilities {
	return &core.Capabilities{
		Name:      "slean",
		Available: false,
		Reason:    unavailableReason,
	}
}
