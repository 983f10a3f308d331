// Package config loads solver defaults from a project .env file and the
// process environment. Command-line flags override everything here.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuckatoo/pkg/cuckatoo/core"
)

// SolverConfig holds the configurable solver defaults.
type SolverConfig struct {
	EdgeBits       uint32
	TrimmingRounds uint32
	HeaderHex      string
	Nonce          uint64
}

// Load reads .env from the project root (if present), then lets process
// environment variables override it. Unset values fall back to the
// reference defaults.
func Load() *SolverConfig {
	cfg := &SolverConfig{
		EdgeBits:       core.DefaultEdgeBits,
		TrimmingRounds: core.DefaultTrimmingRounds,
	}

	envPath := filepath.Join(findProjectRoot(), ".env")
	if data, err := os.ReadFile(envPath); err == nil {
		parseEnvFile(string(data), cfg)
	}

	if v := os.Getenv("CUCKATOO_EDGE_BITS"); v != "" {
		cfg.applyEdgeBits(v)
	}
	if v := os.Getenv("CUCKATOO_TRIMMING_ROUNDS"); v != "" {
		cfg.applyTrimmingRounds(v)
	}
	if v := os.Getenv("CUCKATOO_HEADER"); v != "" {
		cfg.HeaderHex = v
	}
	if v := os.Getenv("CUCKATOO_NONCE"); v != "" {
		cfg.applyNonce(v)
	}

	return cfg
}

func parseEnvFile(content string, cfg *SolverConfig) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "CUCKATOO_EDGE_BITS":
			cfg.applyEdgeBits(value)
		case "CUCKATOO_TRIMMING_ROUNDS":
			cfg.applyTrimmingRounds(value)
		case "CUCKATOO_HEADER":
			cfg.HeaderHex = value
		case "CUCKATOO_NONCE":
			cfg.applyNonce(value)
		}
	}
}

func (c *SolverConfig) applyEdgeBits(value string) {
	if n, err := strconv.ParseUint(value, 10, 32); err == nil {
		c.EdgeBits = uint32(n)
	}
}

func (c *SolverConfig) applyTrimmingRounds(value string) {
	if n, err := strconv.ParseUint(value, 10, 32); err == nil {
		c.TrimmingRounds = uint32(n)
	}
}

func (c *SolverConfig) applyNonce(value string) {
	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		c.Nonce = n
	}
}

// findProjectRoot returns the working directory when it holds a .env
// file; otherwise the closest ancestor directory containing go.mod, or
// the working directory when none is found.
func findProjectRoot() string {
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
		return cwd
	}
	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return cwd
		}
		cwd = parent
	}
}
