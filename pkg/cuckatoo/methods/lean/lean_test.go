package lean

import (
	"testing"

	"cuckatoo/pkg/cuckatoo/core"
	"cuckatoo/pkg/cuckatoo/keys"
	"cuckatoo/pkg/cuckatoo/siphash"
	"cuckatoo/pkg/cuckatoo/verify"
)

func newInitializedMode(t *testing.T) *Mode {
	t.Helper()
	m := NewMode()
	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { m.Shutdown() })
	return m
}

func referenceJob(edgeBits uint32, nonce uint64) *core.Job {
	return &core.Job{
		Header:         make([]byte, core.HeaderLength),
		Nonce:          nonce,
		EdgeBits:       edgeBits,
		TrimmingRounds: core.DefaultTrimmingRounds,
	}
}

func TestSolveRequiresInitialize(t *testing.T) {
	m := NewMode()
	if _, err := m.Solve(referenceJob(10, 0)); err == nil {
		t.Fatal("Solve succeeded without Initialize")
	}
}

func TestSolveValidatesBeforeWork(t *testing.T) {
	m := newInitializedMode(t)

	job := referenceJob(9, 0)
	if _, err := m.Solve(job); err == nil {
		t.Fatal("edge bits 9 accepted")
	}

	job = referenceJob(10, 0)
	job.TrimmingRounds = 0
	if _, err := m.Solve(job); err == nil {
		t.Fatal("zero rounds accepted")
	}
}

// The all-zero header at nonces 0 and 1 are the reproducibility
// anchors: the full pipeline must return identical results across runs.
func TestSolveDeterministic(t *testing.T) {
	m1 := newInitializedMode(t)
	m2 := newInitializedMode(t)

	for nonce := uint64(0); nonce < 2; nonce++ {
		r1, err := m1.Solve(referenceJob(10, nonce))
		if err != nil {
			t.Fatalf("nonce %d: %v", nonce, err)
		}
		r2, err := m2.Solve(referenceJob(10, nonce))
		if err != nil {
			t.Fatalf("nonce %d: %v", nonce, err)
		}

		if r1.Found != r2.Found || r1.SurvivingEdges != r2.SurvivingEdges {
			t.Fatalf("nonce %d: runs diverge: %+v vs %+v", nonce, r1, r2)
		}
		if r1.Found && *r1.Solution != *r2.Solution {
			t.Fatalf("nonce %d: solutions diverge", nonce)
		}
	}
}

func TestSolveDeterministicNonZeroHeader(t *testing.T) {
	m := newInitializedMode(t)

	job := referenceJob(12, 12345)
	job.Header[0] = 1
	job.Header[1] = 2

	r1, err := m.Solve(job)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := m.Solve(job)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Found != r2.Found || r1.SurvivingEdges != r2.SurvivingEdges {
		t.Fatalf("runs diverge: %+v vs %+v", r1, r2)
	}
}

func TestTrimMonotonic(t *testing.T) {
	h := siphash.New(keys.Derive(make([]byte, core.HeaderLength), 0), 10)

	prev := core.NumberOfEdges(10)
	for rounds := uint32(1); rounds <= 6; rounds++ {
		tr := NewTrimmer(10)
		alive := tr.Trim(h, rounds)
		if alive > prev {
			t.Fatalf("%d rounds left %d edges, more than %d after %d", rounds, alive, prev, rounds-1)
		}
		prev = alive
	}
}

func TestTrimFixedPoint(t *testing.T) {
	h := siphash.New(keys.Derive(make([]byte, core.HeaderLength), 0), 10)

	a := NewTrimmer(10).Trim(h, core.DefaultTrimmingRounds)
	b := NewTrimmer(10).Trim(h, 4*core.DefaultTrimmingRounds)
	if a != b {
		t.Fatalf("survivors changed past the fixed point: %d vs %d", a, b)
	}
}

func TestTrimPaddingStaysZero(t *testing.T) {
	h := siphash.New(keys.Derive(make([]byte, core.HeaderLength), 3), 10)

	tr := NewTrimmer(10)
	tr.Trim(h, 5)

	size := tr.Edges().Size()
	for wi, w := range tr.Edges().Words() {
		for b := uint64(0); b < 64; b++ {
			if idx := uint64(wi)*64 + b; idx >= size && w&(1<<b) != 0 {
				t.Fatalf("padding bit %d set", idx)
			}
		}
	}
}

func TestSurvivorsAscendingAndConsistent(t *testing.T) {
	h := siphash.New(keys.Derive(make([]byte, core.HeaderLength), 0), 10)

	tr := NewTrimmer(10)
	alive := tr.Trim(h, 10)
	survivors := tr.Survivors(h)

	if uint64(len(survivors)) != alive {
		t.Fatalf("materialized %d survivors, trim reported %d", len(survivors), alive)
	}
	for i, e := range survivors {
		if i > 0 && e.Index <= survivors[i-1].Index {
			t.Fatalf("survivor order broken at %d", i)
		}
		u, v := h.Endpoints(uint64(e.Index))
		if e.U != u || e.V != v {
			t.Fatalf("survivor %d endpoints (%d, %d) disagree with oracle (%d, %d)", e.Index, e.U, e.V, u, v)
		}
	}
}

// A full-pipeline scan: any solution found over the nonce range must
// pass verification; every result must be well-formed.
func TestSolveScanVerifiesSolutions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping nonce scan in short mode")
	}

	m := newInitializedMode(t)
	found := 0

	for nonce := uint64(0); nonce < 32; nonce++ {
		job := referenceJob(12, nonce)
		result, err := m.Solve(job)
		if err != nil {
			t.Fatalf("nonce %d: %v", nonce, err)
		}
		if !result.Found {
			continue
		}
		found++

		if !result.Solution.IsSorted() {
			t.Fatalf("nonce %d: solution not strictly ascending", nonce)
		}
		if !result.Solution.InRange(job.EdgeBits) {
			t.Fatalf("nonce %d: solution out of range", nonce)
		}

		h := siphash.New(keys.Derive(job.Header, job.Nonce), job.EdgeBits)
		if err := verify.Solution(h, job.EdgeBits, result.Solution); err != nil {
			t.Fatalf("nonce %d: solution failed verification: %v", nonce, err)
		}
	}
	t.Logf("scan found %d solution(s) in 32 nonces", found)
}

func BenchmarkSolve(b *testing.B) {
	m := NewMode()
	if err := m.Initialize(); err != nil {
		b.Fatal(err)
	}
	defer m.Shutdown()

	job := referenceJob(12, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		job.Nonce = uint64(i)
		if _, err := m.Solve(job); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTrim(b *testing.B) {
	h := siphash.New(keys.Derive(make([]byte, core.HeaderLength), 0), 14)
	tr := NewTrimmer(14)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Trim(h, core.DefaultTrimmingRounds)
	}
}
