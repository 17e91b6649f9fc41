// Package network holds the shared HTTP client used to talk to upstream listing endpoints.
package network

import (
	"net/http"
	"time"

	"github.com/ghie29/avmango/constant"
)

// Client is shared by every bulk adapter so connections are pooled across categories.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &userAgent{next: newTransport()},
}

// NewClient builds a client with the shared transport and a custom timeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return Client
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: Client.Transport,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// userAgent stamps requests that don't already carry a User-Agent.
type userAgent struct {
	next http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return u.next.RoundTrip(req)
}
