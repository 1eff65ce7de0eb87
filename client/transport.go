package client

import (
	"net/http"

	"github.com/sardanioss/hmmfetch/headers"
)

// Transport is an http.RoundTripper that adds a fresh generated header set to
// every outgoing request. Headers already on the request take precedence.
//
// The generated accept-encoding turns off net/http's transparent gzip handling,
// so responses come back encoded. Use DecodeBody to read them.
type Transport struct {
	base      http.RoundTripper
	generator *headers.Generator
	options   headers.Options
}

var _ http.RoundTripper = &Transport{} // Transport implements http.RoundTripper

// NewTransport wraps base, http.DefaultTransport if nil.
// A nil generator uses the default random source, nil hopts means all random.
func NewTransport(base http.RoundTripper, gen *headers.Generator, hopts *headers.Options) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if gen == nil {
		gen = headers.NewGenerator()
	}
	t := &Transport{base: base, generator: gen}
	if hopts != nil {
		t.options = *hopts
	}
	return t
}

// Transport returns a RoundTripper sharing the client's generator and default header options
func (c *Client) Transport(base http.RoundTripper) *Transport {
	return NewTransport(base, c.generator, &c.config.HeaderOptions)
}

// RoundTrip injects headers into a clone of req and hands it to the base transport
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if clone.Header == nil {
		clone.Header = http.Header{}
	}
	for key, value := range t.generator.Generate(&t.options) {
		if len(clone.Header.Values(key)) > 0 {
			continue
		}
		clone.Header.Set(key, value)
	}
	return t.base.RoundTrip(clone)
}
