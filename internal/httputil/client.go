package httputil

import (
	"net/http"
	"time"
)

// NewClient returns an HTTP client for dataset downloads. A zero timeout
// leaves requests bounded only by their context.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}
