package core

// SolverMode defines the interface that all trimming/solving strategies
// must follow. A mode owns its working buffers; buffers never carry
// information between attempts.
type SolverMode interface {
	// Name returns the short mode name used on the command line
	Name() string

	// IsAvailable returns true if this mode is implemented and usable
	// on the current system
	IsAvailable() bool

	// Initialize performs any necessary setup for the mode
	Initialize() error

	// Shutdown performs cleanup and releases the mode's buffers
	Shutdown() error

	// Solve runs one full attempt: key derivation, trimming, edge
	// materialization, and cycle search
	Solve(job *Job) (*Result, error)

	// GetCapabilities returns the capabilities and resource
	// characteristics of the mode
	GetCapabilities() *Capabilities
}

// Capabilities describes a solver mode
type Capabilities struct {
	// Name of the mode
	Name string `json:"name"`

	// Whether the mode is implemented and usable
	Available bool `json:"available"`

	// Whether the mode is recommended for production use
	ProductionReady bool `json:"production_ready"`

	// Bitmap memory needed per attempt at DefaultEdgeBits, in bytes
	MemoryPerAttempt uint64 `json:"memory_per_attempt"`

	// Reason for unavailability (if applicable)
	Reason string `json:"reason,omitempty"`
}
