package hashing

import (
	"bytes"
	"fmt"
	"io"

	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
)

type ChecksumProvider interface {
	GetChecksum() (string, error)
}

// ChecksumReaderProxy is a proxy that calculates the MD5 checksum of data as it's read.
// The engine hashes whole messages, so the proxy keeps a copy of everything read
// and hashes it when the checksum is requested.
type ChecksumReaderProxy struct {
	reader  io.Reader
	engine  *digest.Engine
	message bytes.Buffer
}

// NewMD5ReaderProxy creates a proxy that hashes with the given engine.
func NewMD5ReaderProxy(reader io.Reader, engine *digest.Engine) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader: reader,
		engine: engine,
	}
}

// Read reads data from the underlying reader and records it for the checksum.
// A message too large to retain is reported as OUT_OF_MEMORY.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		if recErr := p.record(buf[:n]); recErr != nil {
			return n, recErr
		}
	}
	return n, err
}

// record appends chunk to the retained message. bytes.Buffer reports a
// failed grow only by panicking with bytes.ErrTooLarge.
func (p *ChecksumReaderProxy) record(chunk []byte) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			if recovered != bytes.ErrTooLarge {
				panic(recovered)
			}
			err = apperrors.NewOutOfMemoryError(
				fmt.Sprintf("cannot retain message of more than %d bytes", p.message.Len()), bytes.ErrTooLarge)
		}
	}()

	p.message.Write(chunk)
	return nil
}

// Size returns the number of bytes read so far.
func (p *ChecksumReaderProxy) Size() int {
	return p.message.Len()
}

// Sum returns the MD5 digest of everything read so far.
func (p *ChecksumReaderProxy) Sum() (digest.Digest, error) {
	return p.engine.Sum(p.message.Bytes())
}

// GetChecksum returns the calculated MD5 checksum as a hex string.
func (p *ChecksumReaderProxy) GetChecksum() (string, error) {
	return p.engine.SumHex(p.message.Bytes())
}
