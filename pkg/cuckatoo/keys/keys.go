// Package keys derives the four 64-bit SipHash keys that define a
// Cuckatoo graph instance from a job header and nonce.
package keys

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// SipKeys are the four SipHash-2-4 keys of one graph instance.
type SipKeys [4]uint64

// Derive computes Blake2b-256 over header || nonce (little-endian) and
// reads the 32-byte digest as four little-endian 64-bit keys. The header
// is treated as an opaque byte sequence of any length.
func Derive(header []byte, nonce uint64) SipKeys {
	buf := make([]byte, len(header)+8)
	copy(buf, header)
	binary.LittleEndian.PutUint64(buf[len(header):], nonce)

	digest := blake2b.Sum256(buf)

	var k SipKeys
	for i := range k {
		k[i] = binary.LittleEndian.Uint64(digest[i*8:])
	}
	return k
}
