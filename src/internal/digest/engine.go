package digest

import (
	"github.com/deathlesz/md5/src/internal/log"
)

var defaultEngine = NewEngine(0)

// Engine computes MD5 digests. Its only setting is an upper bound on the
// padded buffer a single call may allocate; it holds no per-call state and
// is safe for concurrent use.
type Engine struct {
	maxBufferSize uint64
}

// NewEngine creates an engine that refuses padded buffers larger than
// maxBufferSize bytes. Zero means no limit beyond what the runtime grants.
func NewEngine(maxBufferSize uint64) *Engine {
	return &Engine{maxBufferSize: maxBufferSize}
}

// NewMessageEngine creates an engine that accepts every message of up to
// maxMessageSize bytes, i.e. whose padded buffer limit is PaddedLen(maxMessageSize).
// Zero means no limit.
func NewMessageEngine(maxMessageSize uint64) *Engine {
	if maxMessageSize == 0 {
		return NewEngine(0)
	}
	padded, ok := PaddedLen(maxMessageSize)
	if !ok {
		return NewEngine(0)
	}
	return NewEngine(padded)
}

// Fits reports whether a message of n bytes can be hashed within the limit.
func (e *Engine) Fits(n uint64) bool {
	padded, ok := PaddedLen(n)
	return ok && (e.maxBufferSize == 0 || padded <= e.maxBufferSize)
}

// MaxBufferSize returns the allocation limit, 0 if unlimited.
func (e *Engine) MaxBufferSize() uint64 {
	return e.maxBufferSize
}

// Sum returns the MD5 digest of message using the default engine.
func Sum(message []byte) (Digest, error) {
	return defaultEngine.Sum(message)
}

// SumHex returns the hexadecimal MD5 digest of message using the default engine.
func SumHex(message []byte) (string, error) {
	return defaultEngine.SumHex(message)
}

// Sum returns the MD5 digest of message. The only failure is OUT_OF_MEMORY
// while building the padded buffer, in which case no digest is produced.
func (e *Engine) Sum(message []byte) (Digest, error) {
	padded, err := e.Pad(message)
	if err != nil {
		return Digest{}, err
	}

	state := [4]uint32{init0, init1, init2, init3}

	blocks := len(padded) / BlockSize
	log.Debugf("Hashing %d bytes in %d blocks", len(message), blocks)

	for i := 0; i < blocks; i++ {
		compress(&state, padded[i*BlockSize:(i+1)*BlockSize])
	}

	return serialize(state), nil
}

// SumHex returns the MD5 digest of message as 32 lowercase hex characters.
func (e *Engine) SumHex(message []byte) (string, error) {
	d, err := e.Sum(message)
	if err != nil {
		return "", err
	}
	return Hex(d), nil
}
