package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// upstreamErrorResponse covers the common error envelopes returned by
// completion APIs: either {"error": {"message": ...}} or {"message": ...}.
type upstreamErrorResponse struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and converts
// it into an error that preserves the upstream message where one can be
// extracted. The body is fully consumed; closing it stays with the caller.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx).
func ParseResponseError(resp *http.Response, serviceName string) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var upstream upstreamErrorResponse
	if json.Unmarshal(bodyBytes, &upstream) == nil {
		if upstream.Error != nil && upstream.Error.Message != "" {
			return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, upstream.Error.Message)
		}
		if upstream.Message != "" {
			return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, upstream.Message)
		}
	}

	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(bodyBytes))
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// Client errors indicate a malformed request and should not be retried.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
