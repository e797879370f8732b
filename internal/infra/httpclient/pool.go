package httpclient

import (
	"net"
	"net/http"
	"time"
)

// sharedTransport is reused by every backend client in the process. Requests
// run concurrently over it without any caller-side lock.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          50,
	MaxIdleConnsPerHost:   20,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   5 * time.Second,
	ExpectContinueTimeout: time.Second,
	ForceAttemptHTTP2:     true,
}

// SharedTransport returns the process-wide pooled transport.
func SharedTransport() http.RoundTripper {
	return sharedTransport
}

// NewPooledClient creates an http.Client that shares the pooled transport.
// Timeout 0 leaves deadlines to the request context.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
