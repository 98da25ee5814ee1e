// Package sidecar stores and verifies checksums kept next to files as "<file>.md5".
package sidecar

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/hashing"
	"github.com/deathlesz/md5/src/internal/log"
	"github.com/deathlesz/md5/src/internal/utils"
)

const Extension = ".md5"

// Result is the outcome of verifying one file against its sidecar.
type Result struct {
	File     string
	Expected digest.Digest
	Actual   digest.Digest
	Match    bool
}

// Path returns the sidecar path for filePath.
func Path(filePath string) string {
	return filePath + Extension
}

func IsFileChanged(checksumProxy hashing.ChecksumProvider, filePath string) (bool, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	md5, err := checksumProxy.GetChecksum()
	if err != nil {
		return false, err
	}

	stored, err := ReadChecksum(filePath)
	if err != nil {
		log.Debugf("Failed to read checksum file '%s', assuming it's changed: %v", Path(filePath), err)
		return true, nil
	}
	return stored.String() != md5, nil
}

func WriteChecksum(checksumProxy hashing.ChecksumProvider, filePath string) error {
	checksum, err := checksumProxy.GetChecksum()
	if err != nil {
		return err
	}
	return os.WriteFile(Path(filePath), []byte(checksum+"\n"), 0644)
}

// ReadChecksum parses the sidecar of filePath. Only the first field is used,
// so both bare digests and "digest  name" lines are accepted.
func ReadChecksum(filePath string) (digest.Digest, error) {
	checksumFile, err := os.Open(Path(filePath))
	if err != nil {
		return digest.Digest{}, err
	}
	defer utils.CloseOrWarn(checksumFile)

	content, err := io.ReadAll(checksumFile)
	if err != nil {
		return digest.Digest{}, err
	}

	fields := strings.Fields(string(content))
	if len(fields) == 0 {
		return digest.Digest{}, apperrors.NewValidationError(fmt.Sprintf("checksum file '%s' is empty", Path(filePath)), nil)
	}
	return digest.ParseHex(fields[0])
}

// HashFile reads filePath and returns its digest computed by engine. A file
// the engine cannot hash is rejected before it is read.
func HashFile(filePath string, engine *digest.Engine) (digest.Digest, int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return digest.Digest{}, 0, apperrors.NewInputError(fmt.Sprintf("failed to open '%s'", filePath), err)
	}
	defer utils.CloseOrWarn(file)

	if info, err := file.Stat(); err == nil && info.Mode().IsRegular() && !engine.Fits(uint64(info.Size())) {
		return digest.Digest{}, 0, apperrors.NewOutOfMemoryError(
			fmt.Sprintf("'%s' is %d bytes, over the input limit", filePath, info.Size()), nil)
	}

	return hashReader(file, filePath, engine)
}

// hashReader retains at most one byte more than the engine could ever accept,
// so a stream that grows past the limit is rejected without buffering it.
func hashReader(r io.Reader, name string, engine *digest.Engine) (digest.Digest, int, error) {
	if limit := engine.MaxBufferSize(); limit > 0 && limit < math.MaxInt64 {
		r = io.LimitReader(r, int64(limit)+1)
	}

	proxy := hashing.NewMD5ReaderProxy(r, engine)
	if _, err := io.Copy(io.Discard, proxy); err != nil {
		if errors.Is(err, apperrors.ErrOutOfMemory) {
			return digest.Digest{}, 0, err
		}
		return digest.Digest{}, 0, apperrors.NewInputError(fmt.Sprintf("failed to read '%s'", name), err)
	}

	if !engine.Fits(uint64(proxy.Size())) {
		return digest.Digest{}, 0, apperrors.NewOutOfMemoryError(
			fmt.Sprintf("'%s' exceeds the input limit", name), nil)
	}

	d, err := proxy.Sum()
	if err != nil {
		return digest.Digest{}, 0, err
	}
	return d, proxy.Size(), nil
}

// Verify hashes filePath and compares it against its sidecar.
func Verify(filePath string, engine *digest.Engine) (*Result, error) {
	expected, err := ReadChecksum(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read checksum for '%s': %w", filePath, err)
	}

	actual, _, err := HashFile(filePath, engine)
	if err != nil {
		return nil, err
	}

	return &Result{
		File:     filePath,
		Expected: expected,
		Actual:   actual,
		Match:    expected == actual,
	}, nil
}
