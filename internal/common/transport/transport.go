// Package transport provides common transport configuration for HTTP clients.
package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Timeouts pairs the two bounds applied to every outbound call.
type Timeouts struct {
	// Connect bounds dialing the remote host.
	Connect time.Duration
	// Read bounds waiting for headers and reading the body.
	Read time.Duration
}

// NewTransport creates an http.Transport whose dialer honors the connect timeout.
func NewTransport(timeouts Timeouts) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   timeouts.Connect,
		KeepAlive: DefaultKeepAlive,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          DefaultMaxIdleConns,
		MaxIdleConnsPerHost:   DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:       DefaultIdleConnTimeout,
		TLSHandshakeTimeout:   DefaultTLSHandshakeTimeout,
		ExpectContinueTimeout: DefaultExpectContinueTimeout,
		ResponseHeaderTimeout: timeouts.Read,
	}
}

// NewHTTPClient creates an http.Client bounded by the connect and read timeouts.
// The client timeout covers the whole exchange, so it is the sum of both.
func NewHTTPClient(timeouts Timeouts) *http.Client {
	return &http.Client{
		Transport: NewTransport(timeouts),
		Timeout:   timeouts.Connect + timeouts.Read,
	}
}

// IsTimeout reports whether err was caused by a timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
