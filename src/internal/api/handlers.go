package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/log"
)

// Handler manages all API endpoints and dependencies.
type Handler struct {
	engine        *digest.Engine
	maxBodyBytes  int64
	maxInputBytes uint64
	configHasher  *config.ConfigHasher
	version       VersionInfo
}

// NewHandler creates a new API handler for the given configuration.
func NewHandler(cfg *config.Config, configHasher *config.ConfigHasher, version VersionInfo) *Handler {
	return &Handler{
		engine:        digest.NewMessageEngine(cfg.General.MaxInputBytes),
		maxBodyBytes:  cfg.Server.MaxBodyBytes,
		maxInputBytes: cfg.General.MaxInputBytes,
		configHasher:  configHasher,
		version:       version,
	}
}

// DigestBody hashes the raw request body.
// POST /api/v1/digest
func (h *Handler) DigestBody(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		writeBodyError(w, "Failed to read request body", err)
		return
	}

	h.writeDigest(w, body)
}

// DigestText hashes the "text" query parameter.
// GET /api/v1/digest?text=...
func (h *Handler) DigestText(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("text") {
		WriteInvalidRequest(w, "Query parameter 'text' is required")
		return
	}

	text := query.Get("text")
	if int64(len(text)) > h.maxBodyBytes {
		WriteTooLarge(w, h.maxBodyBytes)
		return
	}

	h.writeDigest(w, []byte(text))
}

// Verify compares a text against an expected digest.
// POST /api/v1/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decodeJSON(http.MaxBytesReader(w, r.Body, h.maxBodyBytes), &req); err != nil {
		writeBodyError(w, "Invalid JSON", err)
		return
	}

	expected, err := digest.ParseHex(req.Digest)
	if err != nil {
		WriteValidationError(w, "Invalid digest", map[string]interface{}{"digest": err.Error()})
		return
	}

	actual, err := h.engine.Sum([]byte(req.Text))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	writeJSONData(w, VerifyResponse{
		Match:  actual == expected,
		Actual: actual.String(),
	})
}

// GetStatus returns build information and the active configuration hash.
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	configHash, err := h.configHasher.GetConfigHash()
	if err != nil {
		log.Warnf("Failed to calculate config hash: %v", err)
	}

	writeJSONData(w, StatusResponse{
		Version:       h.version,
		ConfigHash:    configHash,
		MaxBodyBytes:  h.maxBodyBytes,
		MaxInputBytes: h.maxInputBytes,
	})
}

// CheckHealth reports liveness.
// GET /health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) writeDigest(w http.ResponseWriter, message []byte) {
	d, err := h.engine.Sum(message)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	writeJSONData(w, DigestResponse{
		Digest: d.String(),
		Size:   len(message),
	})
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeOutOfMemory:
		WriteOutOfMemory(w, err.Error())
	default:
		log.Errorf("Failed to hash message: %v", err)
		WriteInternalError(w, "Failed to hash message")
	}
}

// writeBodyError maps a request body read failure to 413 or 400.
func writeBodyError(w http.ResponseWriter, message string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteTooLarge(w, tooLarge.Limit)
		return
	}
	WriteInvalidRequest(w, message+": "+err.Error())
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(DataResponse{Data: data}); err != nil {
		log.Warnf("Failed to write response: %v", err)
	}
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes a single JSON object, rejecting unknown fields.
func decodeJSON(body io.Reader, v interface{}) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
