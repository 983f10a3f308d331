package bitmap

import "testing"

func TestSetClearIsSet(t *testing.T) {
	b := New(130)

	b.Set(0)
	b.Set(64)
	b.Set(129)
	if !b.IsSet(0) || !b.IsSet(64) || !b.IsSet(129) {
		t.Fatal("set bits read as clear")
	}
	if b.IsSet(1) || b.IsSet(63) || b.IsSet(128) {
		t.Fatal("clear bits read as set")
	}

	b.Clear(64)
	if b.IsSet(64) {
		t.Fatal("cleared bit reads as set")
	}
}

func TestOutOfRangeIgnored(t *testing.T) {
	b := New(100)

	b.Set(100)
	b.Set(1 << 40)
	if b.Count() != 0 {
		t.Fatalf("out-of-range set changed the bitmap: count %d", b.Count())
	}
	if b.IsSet(100) {
		t.Fatal("out-of-range index reads as set")
	}
}

func TestSetAllZeroesPadding(t *testing.T) {
	b := New(100)
	b.SetAll()

	if got := b.Count(); got != 100 {
		t.Fatalf("count after SetAll = %d, want 100", got)
	}

	// Bits 100..127 live in the second word and must stay zero.
	words := b.Words()
	if words[1]>>36 != 0 {
		t.Fatalf("padding bits set in last word: %#x", words[1])
	}
}

func TestSetAllExactWordBoundary(t *testing.T) {
	b := New(128)
	b.SetAll()
	if got := b.Count(); got != 128 {
		t.Fatalf("count after SetAll = %d, want 128", got)
	}
}

func TestForEachAscending(t *testing.T) {
	b := New(200)
	want := []uint64{3, 64, 65, 127, 128, 199}
	for _, i := range want {
		b.Set(i)
	}

	var got []uint64
	b.ForEach(func(i uint64) { got = append(got, i) })

	if len(got) != len(want) {
		t.Fatalf("ForEach visited %d bits, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ForEach[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestClearAll(t *testing.T) {
	b := New(100)
	b.SetAll()
	b.ClearAll()
	if b.Count() != 0 {
		t.Fatalf("count after ClearAll = %d", b.Count())
	}
}
