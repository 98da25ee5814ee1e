// Package fetch downloads a remote message, hashes it and optionally stores it
// next to a .md5 sidecar.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/hashing"
	"github.com/deathlesz/md5/src/internal/log"
	"github.com/deathlesz/md5/src/internal/sidecar"
	"github.com/deathlesz/md5/src/internal/utils"
)

// Result describes one download.
type Result struct {
	URL    string
	Digest digest.Digest
	Size   int
	// Changed is true when Destination was (re)written.
	Changed bool
}

// Options controls a download.
type Options struct {
	// Destination is the file the body is written to. Empty means hash only.
	Destination string
	// MaxBytes bounds the response body (0 = unlimited).
	MaxBytes int64
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Download fetches url and hashes the body with engine. When a destination is
// set, the file and its sidecar are written only if the checksum changed.
func Download(ctx context.Context, url string, engine *digest.Engine, opts Options) (*Result, error) {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid URL %q", url), err)
	}

	log.Infof("Downloading %s", url)

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("failed to download %s", url), err)
	}
	defer utils.CloseOrWarn(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewInputError(fmt.Sprintf("failed to download %s: %s", url, resp.Status), nil)
	}

	var body io.Reader = resp.Body
	if opts.MaxBytes > 0 {
		// one extra byte tells an exact fit from an oversized body
		body = io.LimitReader(resp.Body, opts.MaxBytes+1)
	}

	bodyProxy := hashing.NewMD5ReaderProxy(body, engine)
	content, err := io.ReadAll(bodyProxy)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("failed to read response from %s", url), err)
	}
	if opts.MaxBytes > 0 && int64(len(content)) > opts.MaxBytes {
		return nil, apperrors.NewOutOfMemoryError(fmt.Sprintf("response from %s exceeds limit of %d bytes", url, opts.MaxBytes), nil)
	}

	d, err := bodyProxy.Sum()
	if err != nil {
		return nil, err
	}

	result := &Result{URL: url, Digest: d, Size: len(content)}
	if opts.Destination == "" {
		return result, nil
	}

	if changed, err := sidecar.IsFileChanged(bodyProxy, opts.Destination); err != nil {
		log.Errorf("Failed to compare checksum of %s: %v", opts.Destination, err)
	} else if !changed {
		log.Infof("%s is not changed, skipping write to disk", opts.Destination)
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Destination), 0755); err != nil {
		return nil, apperrors.NewInputError("failed to create destination directory", err)
	}
	if err := os.WriteFile(opts.Destination, content, 0644); err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("failed to write %s", opts.Destination), err)
	}
	if err := sidecar.WriteChecksum(bodyProxy, opts.Destination); err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("failed to write checksum for %s", opts.Destination), err)
	}

	log.Infof("Saved %s (%d bytes)", opts.Destination, len(content))
	result.Changed = true
	return result, nil
}
