package api

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// DigestResponse is the digest of one message.
type DigestResponse struct {
	Digest string `json:"digest"`
	Size   int    `json:"size"`
}

// VerifyRequest asks whether Text hashes to Digest.
type VerifyRequest struct {
	Text   string `json:"text"`
	Digest string `json:"digest"`
}

// VerifyResponse is the outcome of a verification.
type VerifyResponse struct {
	Match  bool   `json:"match"`
	Actual string `json:"actual"`
}

// StatusResponse returns server status information.
type StatusResponse struct {
	Version       VersionInfo `json:"version"`
	ConfigHash    string      `json:"config_hash,omitempty"`
	MaxBodyBytes  int64       `json:"max_body_bytes"`
	MaxInputBytes uint64      `json:"max_input_bytes"`
}

// VersionInfo contains build version information.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
