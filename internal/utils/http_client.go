package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// One HTTPClient is created per process and shared by every pull: the
// underlying net/http transport pools connections and is safe for concurrent
// use, so callers never lock around it. Abandoned requests (cancelled
// contexts) release their connection without affecting later requests.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient with the given request
// timeout. A zero timeout means no client-side timeout.
//
// Automatic retries are left disabled: a failed exchange is reported to the
// caller as is.
//
// Example usage:
//
//	client := utils.NewHTTPClient(30 * time.Second)
//	resp, err := client.R().SetBody(body).Post("https://diff.example.com/pull")
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().SetRetryCount(0)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
