package digest

import (
	"encoding/binary"
	"math/bits"
)

// roundFunc returns the nonlinear mix of b, c, d for round i and the index of
// the message word that round consumes.
func roundFunc(i int, b, c, d uint32) (f uint32, g int) {
	switch {
	case i < 16:
		return (b & c) | (^b & d), i
	case i < 32:
		return (d & b) | (^d & c), (5*i + 1) % 16
	case i < 48:
		return b ^ c ^ d, (3*i + 5) % 16
	default:
		return c ^ (b | ^d), (7 * i) % 16
	}
}

// rotl rotates x left by n bits within 32-bit width. A zero shift leaves x unchanged.
func rotl(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, n&31)
}

// compress folds one 64-byte block into state.
func compress(state *[4]uint32, block []byte) {
	var w [16]uint32
	for j := range w {
		w[j] = binary.LittleEndian.Uint32(block[4*j:])
	}

	a, b, c, d := state[0], state[1], state[2], state[3]

	for i := 0; i < rounds; i++ {
		f, g := roundFunc(i, b, c, d)
		f += a + k[i] + w[g]
		a, b, c, d = d, b+rotl(f, s[i]), b, c
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
}
