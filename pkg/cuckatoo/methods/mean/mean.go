// Package mean reserves the mode slot for mean trimming. The mean
// strategy buckets edges by node prefix instead of walking flat
// bitmaps; this solver does not implement it.
package mean

import "cuckatoo/pkg/cuckatoo/core"

const unavailableReason = "mean trimming is not implemented; use lean"

// Mode is a permanently-unavailable placeholder for mean trimming.
type Mode struct{}

// NewMode creates the placeholder mode.
func NewMode() *Mode {
	return &Mode{}
}

// Name returns the short mode name used on the command line.
func (m *Mode) Name() string {
	return "mean"
}

// IsAvailable returns false; mean trimming is not implemented.
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
		Name:      "mean",
		Available: false,
		Reason:    unavailableReason,
	}
}
