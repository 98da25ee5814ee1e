package fetch

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/log"
)

func newContentServer(t *testing.T, content *atomic.Value) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content.Load().(string)))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownload_HashOnly(t *testing.T) {
	log.DisableLogs()
	t.Cleanup(log.EnableLogs)

	var content atomic.Value
	content.Store("example.com\ntest.org\n")
	server := newContentServer(t, &content)

	result, err := Download(context.Background(), server.URL+"/list.txt", digest.NewEngine(0), Options{})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%x", md5.Sum([]byte("example.com\ntest.org\n"))), result.Digest.String())
	assert.Equal(t, 21, result.Size)
	assert.False(t, result.Changed)
}

func TestDownload_WritesOnlyWhenChanged(t *testing.T) {
	log.DisableLogs()
	t.Cleanup(log.EnableLogs)

	var content atomic.Value
	content.Store("abc")
	server := newContentServer(t, &content)

	dest := filepath.Join(t.TempDir(), "out", "list.txt")
	opts := Options{Destination: dest}

	result, err := Download(context.Background(), server.URL, digest.NewEngine(0), opts)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	saved, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(saved))

	checksum, err := os.ReadFile(dest + ".md5")
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72\n", string(checksum))

	result, err = Download(context.Background(), server.URL, digest.NewEngine(0), opts)
	require.NoError(t, err)
	assert.False(t, result.Changed, "unchanged content must not be rewritten")

	content.Store("abd")
	result, err = Download(context.Background(), server.URL, digest.NewEngine(0), opts)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	saved, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "abd", string(saved))
}

func TestDownload_Errors(t *testing.T) {
	log.DisableLogs()
	t.Cleanup(log.EnableLogs)

	var content atomic.Value
	content.Store("0123456789")
	server := newContentServer(t, &content)

	tests := []struct {
		name     string
		url      string
		engine   *digest.Engine
		opts     Options
		wantCode apperrors.ErrorCode
	}{
		{"not found", server.URL + "/missing", digest.NewEngine(0), Options{}, apperrors.ErrCodeInput},
		{"invalid url", "://bad", digest.NewEngine(0), Options{}, apperrors.ErrCodeValidation},
		{"body over limit", server.URL, digest.NewEngine(0), Options{MaxBytes: 9}, apperrors.ErrCodeOutOfMemory},
		{"engine limit", server.URL, digest.NewEngine(32), Options{}, apperrors.ErrCodeOutOfMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Download(context.Background(), tt.url, tt.engine, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
		})
	}
}

func TestDownload_ExactLimit(t *testing.T) {
	log.DisableLogs()
	t.Cleanup(log.EnableLogs)

	var content atomic.Value
	content.Store("0123456789")
	server := newContentServer(t, &content)

	result, err := Download(context.Background(), server.URL, digest.NewEngine(0), Options{MaxBytes: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Size)
}
