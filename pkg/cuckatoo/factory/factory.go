// Package factory creates and selects solver modes by name.
package factory

import (
	"fmt"
	"sort"

	"cuckatoo/pkg/cuckatoo/core"
	"cuckatoo/pkg/cuckatoo/methods/lean"
	"cuckatoo/pkg/cuckatoo/methods/mean"
	"cuckatoo/pkg/cuckatoo/methods/slean"
)

// DefaultMode is the mode used when none is selected.
const DefaultMode = "lean"

// ModeFactory creates and manages solver mode instances.
type ModeFactory struct {
	modes map[string]core.SolverMode
}

// NewModeFactory creates a factory holding every known mode, available
// or not.
func NewModeFactory() *ModeFactory {
	f := &ModeFactory{modes: make(map[string]core.SolverMode)}
	for _, m := range []core.SolverMode{
		lean.NewMode(),
		mean.NewMode(),
		slean.NewMode(),
	} {
		f.modes[m.Name()] = m
	}
	return f
}

// GetMode returns the named mode, or an error naming the known modes
// when the name is unknown. Availability is the caller's check.
func (f *ModeFactory) GetMode(name string) (core.SolverMode, error) {
	if m, ok := f.modes[name]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("unknown solver mode %q (known: %v)", name, f.ModeNames())
}

// ModeNames returns the known mode names, sorted.
func (f *ModeFactory) ModeNames() []string {
	names := make([]string, 0, len(f.modes))
	for name := range f.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAvailableModes returns the modes that are implemented and usable.
func (f *ModeFactory) GetAvailableModes() map[string]core.SolverMode {
	result := make(map[string]core.SolverMode)
	for name, m := range f.modes {
		if m.IsAvailable() {
			result[name] = m
		}
	}
	return result
}

// GetDetectionReport returns the status of every known mode.
func (f *ModeFactory) GetDetectionReport() *DetectionReport {
	report := &DetectionReport{
		Default:    DefaultMode,
		TotalModes: len(f.modes),
	}
	for _, name := range f.ModeNames() {
		caps := f.modes[name].GetCapabilities()
		report.Modes = append(report.Modes, &ModeStatus{
			Name:         name,
			Available:    caps.Available,
			Capabilities: caps,
		})
		if caps.Available {
			report.AvailableCount++
		}
	}
	return report
}

// ShutdownAll shuts down every mode and returns the first error, if any.
func (f *ModeFactory) ShutdownAll() error {
	var firstErr error
	for _, m := range f.modes {
		if err := m.Shutdown(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DetectionReport describes the modes the factory knows about.
type DetectionReport struct {
	Modes          []*ModeStatus `json:"modes"`
	Default        string        `json:"default"`
	TotalModes     int           `json:"total_modes"`
	AvailableCount int           `json:"available_count"`
}

// ModeStatus describes the status of a single solver mode.
type ModeStatus struct {
	Name         string             `json:"name"`
	Available    bool               `json:"available"`
	Capabilities *core.Capabilities `json:"capabilities"`
}
