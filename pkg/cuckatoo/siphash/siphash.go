// Package siphash implements the SipHash-2-4 edge oracle of the
// Cuckatoo graph. The oracle is the sole definition of graph structure
// and must be reproduced exactly: the nonce is folded into state[3]
// before the two compression rounds and into state[0] before the four
// finalization rounds, with state[2] ^= 0xff in between.
package siphash

import (
	"math/bits"

	"cuckatoo/pkg/cuckatoo/keys"
)

// Hasher evaluates the edge oracle for one graph instance.
type Hasher struct {
	keys     keys.SipKeys
	mask     uint64
	edgeBits uint32
}

// New creates a Hasher for the given keys and graph size. Outputs are
// masked to edgeBits bits.
func New(k keys.SipKeys, edgeBits uint32) *Hasher {
	return &Hasher{
		keys:     k,
		mask:     (1 << edgeBits) - 1,
		edgeBits: edgeBits,
	}
}

// Keys returns the instance keys.
func (h *Hasher) Keys() keys.SipKeys {
	return h.keys
}

// EdgeBits returns the graph size exponent.
func (h *Hasher) EdgeBits() uint32 {
	return h.edgeBits
}

// Hash computes SipHash-2-4 of the given nonce with no message body and
// masks the result to edgeBits bits.
func (h *Hasher) Hash(nonce uint64) uint64 {
	s0 := h.keys[0]
	s1 := h.keys[1]
	s2 := h.keys[2]
	s3 := h.keys[3]

	s3 ^= nonce
	s0, s1, s2, s3 = sipRound(s0, s1, s2, s3)
	s0, s1, s2, s3 = sipRound(s0, s1, s2, s3)
	s0 ^= nonce
	s2 ^= 0xff
	s0, s1, s2, s3 = sipRound(s0, s1, s2, s3)
	s0, s1, s2, s3 = sipRound(s0, s1, s2, s3)
	s0, s1, s2, s3 = sipRound(s0, s1, s2, s3)
	s0, s1, s2, s3 = sipRound(s0, s1, s2, s3)

	return (s0 ^ s1 ^ s2 ^ s3) & h.mask
}

// Endpoints returns the two endpoints of edge e: u from the even nonce
// 2e on partition U, v from the odd nonce 2e+1 on partition V.
func (h *Hasher) Endpoints(e uint64) (uint32, uint32) {
	u := h.Hash(2 * e)
	v := h.Hash(2*e + 1)
	return uint32(u), uint32(v)
}

// sipRound applies one SipRound with the reference rotation amounts
// {13, 16, 32, 17, 21, 32}.
func sipRound(s0, s1, s2, s3 uint64) (uint64, uint64, uint64, uint64) {
	s0 += s1
	s2 += s3
	s1 = bits.RotateLeft64(s1, 13)
	s3 = bits.RotateLeft64(s3, 16)
	s1 ^= s0
	s3 ^= s2
	s0 = bits.RotateLeft64(s0, 32)
	s2 += s1
	s0 += s3
	s1 = bits.RotateLeft64(s1, 17)
	s3 = bits.RotateLeft64(s3, 21)
	s1 ^= s2
	s3 ^= s0
	s2 = bits.RotateLeft64(s2, 32)
	return s0, s1, s2, s3
}
