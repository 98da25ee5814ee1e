package digest

import (
	"encoding/binary"
	"fmt"
	"math"

	apperrors "github.com/deathlesz/md5/src/internal/errors"
)

// PaddedLen returns the length of the padded buffer for an n-byte message:
// the smallest multiple of BlockSize that holds the message, the 0x80
// terminator and the 8-byte bit length. ok is false if that length does not
// fit in a uint64.
func PaddedLen(n uint64) (padded uint64, ok bool) {
	if n > math.MaxUint64-(BlockSize+8) {
		return 0, false
	}
	return (n+8)/BlockSize*BlockSize + BlockSize, true
}

// Pad builds the padded form of message using the default engine.
func Pad(message []byte) ([]byte, error) {
	return defaultEngine.Pad(message)
}

// Pad builds the padded form of message in a newly allocated buffer.
//
// The terminator byte is always appended, so a message with len%64 == 56
// gets a whole extra block. The last 8 bytes carry len(message)*8 in
// little-endian order.
func (e *Engine) Pad(message []byte) ([]byte, error) {
	n := uint64(len(message))

	size, ok := PaddedLen(n)
	if !ok {
		return nil, apperrors.NewOutOfMemoryError(fmt.Sprintf("padded length of a %d-byte message overflows", n), nil)
	}

	padded, err := e.alloc(size)
	if err != nil {
		return nil, err
	}

	copy(padded, message)
	padded[n] = 0x80
	// make() zeroed everything between the terminator and the length field
	binary.LittleEndian.PutUint64(padded[size-8:], n*8)

	return padded, nil
}

// alloc obtains a zeroed buffer of the given size or reports OUT_OF_MEMORY.
func (e *Engine) alloc(size uint64) (buf []byte, err error) {
	if e.maxBufferSize > 0 && size > e.maxBufferSize {
		return nil, apperrors.NewOutOfMemoryError(
			fmt.Sprintf("padded buffer of %d bytes exceeds limit of %d bytes", size, e.maxBufferSize), nil)
	}
	if size > math.MaxInt {
		return nil, apperrors.NewOutOfMemoryError(fmt.Sprintf("cannot allocate %d bytes", size), nil)
	}

	// makeslice panics when the runtime refuses the length
	defer func() {
		if recovered := recover(); recovered != nil {
			buf = nil
			err = apperrors.NewOutOfMemoryError(fmt.Sprintf("cannot allocate %d bytes", size), fmt.Errorf("%v", recovered))
		}
	}()

	return make([]byte, size), nil
}
