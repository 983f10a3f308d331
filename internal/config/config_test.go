package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cuckatoo/pkg/cuckatoo/core"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, uint32(core.DefaultEdgeBits), cfg.EdgeBits)
	assert.Equal(t, uint32(core.DefaultTrimmingRounds), cfg.TrimmingRounds)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CUCKATOO_EDGE_BITS", "14")
	t.Setenv("CUCKATOO_TRIMMING_ROUNDS", "45")
	t.Setenv("CUCKATOO_HEADER", "0102")
	t.Setenv("CUCKATOO_NONCE", "99")

	cfg := Load()
	assert.Equal(t, uint32(14), cfg.EdgeBits)
	assert.Equal(t, uint32(45), cfg.TrimmingRounds)
	assert.Equal(t, "0102", cfg.HeaderHex)
	assert.Equal(t, uint64(99), cfg.Nonce)
}

func TestParseEnvFile(t *testing.T) {
	content := `
# solver defaults
CUCKATOO_EDGE_BITS=16
CUCKATOO_TRIMMING_ROUNDS = 30

not-a-pair
CUCKATOO_NONCE=7
`
	cfg := &SolverConfig{}
	parseEnvFile(content, cfg)

	assert.Equal(t, uint32(16), cfg.EdgeBits)
	assert.Equal(t, uint32(30), cfg.TrimmingRounds)
	assert.Equal(t, uint64(7), cfg.Nonce)
}

func TestMalformedValuesIgnored(t *testing.T) {
	t.Setenv("CUCKATOO_EDGE_BITS", "not-a-number")

	cfg := Load()
	assert.Equal(t, uint32(core.DefaultEdgeBits), cfg.EdgeBits)
}
