package api

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/log"
)

const abcDigest = "900150983cd24fb0d6963f7d28e17f72"

func newTestRouter(t *testing.T, mutate func(*config.Config)) http.Handler {
	t.Helper()
	log.DisableLogs()
	t.Cleanup(log.EnableLogs)

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	return NewRouter(cfg, config.NewConfigHasher(cfg), VersionInfo{Version: "test", Commit: "abc123", Date: "2026-10-19"})
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &DataResponse{Data: v}))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestDigestBody(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name string
		body []byte
		want string
	}{
		{"empty", nil, "d41d8cd98f00b204e9800998ecf8427e"},
		{"abc", []byte("abc"), abcDigest},
		{"binary with NUL", []byte("abc\x00def"), fmt.Sprintf("%x", md5.Sum([]byte("abc\x00def")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/digest", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/octet-stream")
			rec := do(t, router, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var got DigestResponse
			decodeData(t, rec, &got)
			assert.Equal(t, tt.want, got.Digest)
			assert.Equal(t, len(tt.body), got.Size)
		})
	}
}

func TestDigestBody_TooLarge(t *testing.T) {
	router := newTestRouter(t, func(c *config.Config) { c.Server.MaxBodyBytes = 8 })

	rec := do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/digest", strings.NewReader("123456789")))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, ErrCodeTooLarge, decodeError(t, rec).Code)
}

func TestDigestBody_MessageAtInputLimit(t *testing.T) {
	router := newTestRouter(t, func(c *config.Config) {
		c.General.MaxInputBytes = 64
		c.Server.MaxBodyBytes = 64
	})

	for _, n := range []int{55, 56, 60, 64} {
		body := strings.Repeat("x", n)
		rec := do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/digest", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code, "message of %d bytes", n)

		var got DigestResponse
		decodeData(t, rec, &got)
		assert.Equal(t, fmt.Sprintf("%x", md5.Sum([]byte(body))), got.Digest)
	}

	rec := do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/digest", strings.NewReader(strings.Repeat("x", 65))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDigestBody_EngineLimit(t *testing.T) {
	// body limit above the input limit, as an unvalidated config allows
	router := newTestRouter(t, func(c *config.Config) {
		c.General.MaxInputBytes = 64
		c.Server.MaxBodyBytes = 1024
	})

	rec := do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/digest", strings.NewReader(strings.Repeat("x", 200))))

	assert.Equal(t, http.StatusInsufficientStorage, rec.Code)
	assert.Equal(t, ErrCodeOutOfMemory, decodeError(t, rec).Code)
}

func TestDigestText(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/digest?text="+url.QueryEscape("abc"), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got DigestResponse
	decodeData(t, rec, &got)
	assert.Equal(t, abcDigest, got.Digest)

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/digest?text=", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", got.Digest)

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/digest", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeInvalidRequest, decodeError(t, rec).Code)
}

func TestVerify(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMatch  bool
		wantCode   ErrorCode
	}{
		{"match", `{"text":"abc","digest":"` + abcDigest + `"}`, http.StatusOK, true, ""},
		{"match upper case", `{"text":"abc","digest":"` + strings.ToUpper(abcDigest) + `"}`, http.StatusOK, true, ""},
		{"mismatch", `{"text":"abd","digest":"` + abcDigest + `"}`, http.StatusOK, false, ""},
		{"bad digest", `{"text":"abc","digest":"xyz"}`, http.StatusBadRequest, false, ErrCodeValidationFailed},
		{"bad json", `{"text":`, http.StatusBadRequest, false, ErrCodeInvalidRequest},
		{"unknown field", `{"text":"abc","digest":"` + abcDigest + `","algo":"sha1"}`, http.StatusBadRequest, false, ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json; charset=utf-8")
			rec := do(t, router, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
				return
			}

			var got VerifyResponse
			decodeData(t, rec, &got)
			assert.Equal(t, tt.wantMatch, got.Match)
			assert.Len(t, got.Actual, 32)
		})
	}
}

func TestVerify_TooLarge(t *testing.T) {
	router := newTestRouter(t, func(c *config.Config) { c.Server.MaxBodyBytes = 16 })

	body := `{"text":"` + strings.Repeat("a", 64) + `","digest":"` + abcDigest + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, router, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, ErrCodeTooLarge, decodeError(t, rec).Code)
}

func TestVerify_RequiresJSON(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", strings.NewReader("text=abc"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStatus(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got StatusResponse
	decodeData(t, rec, &got)
	assert.Equal(t, "test", got.Version.Version)
	assert.Len(t, got.ConfigHash, 32)
	assert.Equal(t, int64(config.DefaultMaxBodyBytes), got.MaxBodyBytes)
	assert.Equal(t, uint64(config.DefaultMaxInputBytes), got.MaxInputBytes)
}

func TestHealthAndNotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "expected a generated UUID")

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = do(t, router, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	rec = do(t, router, req)
	assert.NotEqual(t, "not a uuid", rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	log.DisableLogs()
	t.Cleanup(log.EnableLogs)

	handler := RequestID(Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := do(t, handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrCodeInternalError, decodeError(t, rec).Code)
}
