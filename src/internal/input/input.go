// Package input reads a message from a byte stream for hashing.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	apperrors "github.com/deathlesz/md5/src/internal/errors"
)

// Options controls where a message ends and how large it may grow.
type Options struct {
	// StopAtNUL ends the message at the first 0x00 byte, which is consumed
	// but not included.
	StopAtNUL bool
	// MaxBytes bounds the message size. Zero means unlimited.
	MaxBytes uint64
}

// ReadMessage reads r until end of stream (or NUL, see Options) into a
// buffer that starts at one byte and doubles as it fills.
func ReadMessage(r io.Reader, opts Options) ([]byte, error) {
	br := bufio.NewReader(r)
	message := make([]byte, 0, 1)

	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return message, nil
		}
		if err != nil {
			return nil, apperrors.NewInputError("failed to read message", err)
		}
		if opts.StopAtNUL && c == 0 {
			return message, nil
		}

		if len(message) == cap(message) {
			if message, err = grow(message, opts.MaxBytes); err != nil {
				return nil, err
			}
		}
		message = append(message, c)
	}
}

// grow doubles the capacity of buf, clamped to limit.
func grow(buf []byte, limit uint64) ([]byte, error) {
	size := uint64(len(buf))
	if limit > 0 && size >= limit {
		return nil, apperrors.NewOutOfMemoryError(fmt.Sprintf("message exceeds limit of %d bytes", limit), nil)
	}

	capacity := size * 2
	if capacity == 0 {
		capacity = 1
	}
	if limit > 0 && capacity > limit {
		capacity = limit
	}

	grown, err := allocate(capacity)
	if err != nil {
		return nil, err
	}
	return append(grown, buf...), nil
}

func allocate(capacity uint64) (buf []byte, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			buf = nil
			err = apperrors.NewOutOfMemoryError(fmt.Sprintf("cannot grow message buffer to %d bytes", capacity), fmt.Errorf("%v", recovered))
		}
	}()
	return make([]byte, 0, capacity), nil
}
