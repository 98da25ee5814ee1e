// Package api provides the HTTP API for computing MD5 digests.
//
// # Endpoints
//
//	POST /api/v1/digest          raw body is the message
//	GET  /api/v1/digest?text=... query parameter is the message
//	POST /api/v1/verify          {"text": "...", "digest": "..."}
//	GET  /api/v1/status          build info and configuration hash
//	GET  /health                 liveness probe
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { "digest": "900150983cd24fb0d6963f7d28e17f72", "size": 3 }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "too_large",
//	    "message": "message exceeds limit of 16777216 bytes"
//	  }
//	}
//
// Every response carries an X-Request-ID header that also prefixes the
// request log line.
package api
