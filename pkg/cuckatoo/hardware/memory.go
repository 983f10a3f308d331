// Package hardware inspects the host system on behalf of the solver
// modes. The only check the lean mode needs is whether the trimming
// bitmaps fit in available memory before they are allocated.
package hardware

import (
	"github.com/shirou/gopsutil/v3/mem"

	"cuckatoo/pkg/cuckatoo/core"
)

// MemoryGuard checks planned allocations against available system
// memory.
type MemoryGuard struct{}

// NewMemoryGuard creates a new memory guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{}
}

// CheckBitmaps verifies that the two trimming bitmaps for the given
// graph size fit in currently-available memory. It refuses before any
// allocation happens; when the host memory cannot be read the check
// passes and allocation proceeds.
func (g *MemoryGuard) CheckBitmaps(edgeBits uint32) error {
	needed := core.BitmapFootprint(edgeBits)

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil
	}
	if needed > vm.Available {
		return core.NewOutOfMemoryError(
			"trimming bitmaps exceed available memory",
			map[string]interface{}{
				"edge_bits":       edgeBits,
				"needed_bytes":    needed,
				"available_bytes": vm.Available,
			})
	}
	return nil
}
