package digest

import (
	"encoding/binary"
	"fmt"

	apperrors "github.com/deathlesz/md5/src/internal/errors"
)

const hextable = "0123456789abcdef"

// Digest is a finished MD5 checksum.
type Digest [Size]byte

// String returns the lowercase hexadecimal form of d.
func (d Digest) String() string {
	return Hex(d)
}

// Hex renders d as 32 lowercase hexadecimal characters.
func Hex(d Digest) string {
	var out [Size * 2]byte
	for i, b := range d {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out[:])
}

// HexBytes renders a raw digest. It rejects anything that is not exactly Size bytes.
func HexBytes(raw []byte) (string, error) {
	if len(raw) != Size {
		return "", apperrors.NewValidationError(fmt.Sprintf("digest must be %d bytes, got %d", Size, len(raw)), nil)
	}
	var d Digest
	copy(d[:], raw)
	return Hex(d), nil
}

// ParseHex parses a 32-character hexadecimal digest in either case.
func ParseHex(str string) (Digest, error) {
	var d Digest
	if len(str) != Size*2 {
		return d, apperrors.NewValidationError(fmt.Sprintf("hex digest must be %d characters, got %d", Size*2, len(str)), nil)
	}
	for i := 0; i < Size; i++ {
		hi, ok1 := fromHexChar(str[i*2])
		lo, ok2 := fromHexChar(str[i*2+1])
		if !ok1 || !ok2 {
			return Digest{}, apperrors.NewValidationError(fmt.Sprintf("invalid hex digest %q", str), nil)
		}
		d[i] = hi<<4 | lo
	}
	return d, nil
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// serialize writes the state words little-endian in a, b, c, d order.
func serialize(state [4]uint32) Digest {
	var d Digest
	for i, word := range state {
		binary.LittleEndian.PutUint32(d[i*4:], word)
	}
	return d
}
