package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
)

type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}

func referenceChecksum(data string) string {
	sum := md5.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}

func TestChecksumReaderProxy_PassesDataThrough(t *testing.T) {
	proxy := NewMD5ReaderProxy(strings.NewReader("hello world"), digest.NewEngine(0))

	buf := make([]byte, 5)
	n, err := proxy.Read(buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 5 || string(buf) != "hello" {
		t.Errorf("Read() = %d %q, want 5 %q", n, buf, "hello")
	}

	rest, err := io.ReadAll(proxy)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(rest) != " world" {
		t.Errorf("Expected remainder %q, got %q", " world", rest)
	}
	if proxy.Size() != 11 {
		t.Errorf("Expected size 11, got %d", proxy.Size())
	}
}

func TestChecksumReaderProxy_ReadError(t *testing.T) {
	expectedErr := errors.New("read error")
	proxy := NewMD5ReaderProxy(&errorReader{err: expectedErr}, digest.NewEngine(0))

	_, err := proxy.Read(make([]byte, 10))
	if err != expectedErr {
		t.Errorf("Expected error %v, got %v", expectedErr, err)
	}
}

func TestChecksumReaderProxy_GetChecksum(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"short", "hello world"},
		{"one block boundary", strings.Repeat("b", 56)},
		{"several blocks", strings.Repeat("checksum ", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proxy := NewMD5ReaderProxy(strings.NewReader(tt.data), digest.NewEngine(0))
			if _, err := io.Copy(io.Discard, proxy); err != nil {
				t.Fatalf("Failed to read data: %v", err)
			}

			checksum, err := proxy.GetChecksum()
			if err != nil {
				t.Fatalf("Unexpected error getting checksum: %v", err)
			}
			if want := referenceChecksum(tt.data); checksum != want {
				t.Errorf("GetChecksum() = %s, want %s", checksum, want)
			}
		})
	}
}

func TestChecksumReaderProxy_EngineLimit(t *testing.T) {
	proxy := NewMD5ReaderProxy(strings.NewReader(strings.Repeat("x", 100)), digest.NewEngine(64))

	if _, err := io.ReadAll(proxy); err != nil {
		t.Fatalf("Failed to read data: %v", err)
	}

	if _, err := proxy.GetChecksum(); !errors.Is(err, apperrors.ErrOutOfMemory) {
		t.Errorf("Expected OUT_OF_MEMORY error, got %v", err)
	}
}

func TestChecksumReaderProxy_Sum(t *testing.T) {
	proxy := NewMD5ReaderProxy(strings.NewReader("abc"), digest.NewEngine(0))
	if _, err := io.Copy(io.Discard, proxy); err != nil {
		t.Fatalf("Failed to read data: %v", err)
	}

	d, err := proxy.Sum()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if d.String() != referenceChecksum("abc") {
		t.Errorf("Sum() = %s, want %s", d, referenceChecksum("abc"))
	}
}

func TestProviderImplementsInterface(t *testing.T) {
	var _ ChecksumProvider = NewMD5ReaderProxy(strings.NewReader(""), digest.NewEngine(0))
}
