// Package tlsclient is a client.Fetcher backed by bogdanfinn/tls-client.
//
// Headers go out in the order the impersonated browser sends them, with the
// browser inferred from the merged user-agent. The TLS handshake itself is
// whatever profile the underlying tls-client was built with.
package tlsclient

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/sardanioss/hmmfetch/client"
	"github.com/sardanioss/hmmfetch/fingerprint"
	"github.com/sardanioss/hmmfetch/headers"
)

// pseudoHeaderOrder is shared by every supported browser over HTTP/2
var pseudoHeaderOrder = []string{":method", ":authority", ":scheme", ":path"}

// Doer sends an fhttp request. tls_client.HttpClient satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Fetcher adapts a Doer to client.Fetcher
type Fetcher struct {
	doer Doer
}

var _ client.Fetcher = &Fetcher{}

// NewFetcher wraps an existing doer
func NewFetcher(d Doer) *Fetcher {
	return &Fetcher{doer: d}
}

// New builds a tls-client with the given options and wraps it.
// A nil logger is replaced with the noop one.
func New(logger tls_client.Logger, opts ...tls_client.HttpClientOption) (*Fetcher, error) {
	if logger == nil {
		logger = tls_client.NewNoopLogger()
	}
	hc, err := tls_client.NewHttpClient(logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}
	return NewFetcher(hc), nil
}

// ProfileFor returns the TLS profile closest to the browser family.
// Edge and unknown browsers get chrome's.
func ProfileFor(b fingerprint.Browser) profiles.ClientProfile {
	switch b {
	case fingerprint.Firefox:
		return profiles.Firefox_132
	case fingerprint.Safari:
		return profiles.Safari_16_0
	default:
		return profiles.Chrome_131
	}
}

// DefaultOptions are the tls-client options used by the command line tool:
// a 30s timeout and the TLS profile matching the browser. No cookie jar is set.
func DefaultOptions(b fingerprint.Browser) []tls_client.HttpClientOption {
	return []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(30),
		tls_client.WithClientProfile(ProfileFor(b)),
	}
}

// Fetch converts opts into an fhttp request, sends it and converts the response
// back. Errors from the doer are returned as they come.
func (f *Fetcher) Fetch(ctx context.Context, target string, opts *client.RequestOptions) (*http.Response, error) {
	req, err := buildRequest(ctx, target, opts)
	if err != nil {
		return nil, err
	}
	resp, err := f.doer.Do(req)
	if err != nil {
		return nil, err
	}
	return toHTTPResponse(resp), nil
}

func buildRequest(ctx context.Context, target string, opts *client.RequestOptions) (*fhttp.Request, error) {
	if opts == nil {
		opts = &client.RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = fhttp.MethodGet
	}

	req, err := fhttp.NewRequestWithContext(ctx, method, target, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if opts.ContentLength > 0 {
		req.ContentLength = opts.ContentLength
	}

	hdrs := make(map[string]string)
	for key, value := range headers.Fold(headers.Normalize(opts.Headers)) {
		if key == "host" {
			req.Host = value
			continue
		}
		hdrs[key] = value
	}

	for key, value := range hdrs {
		req.Header[key] = []string{value}
	}
	req.Header[fhttp.HeaderOrderKey] = headerOrder(hdrs)
	req.Header[fhttp.PHeaderOrderKey] = pseudoHeaderOrder

	return req, nil
}

// headerOrder lists the present headers in the order the detected browser
// sends them, followed by any others sorted by name
func headerOrder(hdrs map[string]string) []string {
	browser := fingerprint.Detect(hdrs["user-agent"])

	order := make([]string, 0, len(hdrs))
	known := make(map[string]bool)
	for _, key := range fingerprint.HeaderOrder(browser) {
		known[key] = true
		if _, ok := hdrs[key]; ok {
			order = append(order, key)
		}
	}

	var rest []string
	for key := range hdrs {
		if !known[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

// toHTTPResponse copies an fhttp response into a net/http one sharing the same body
func toHTTPResponse(resp *fhttp.Response) *http.Response {
	out := &http.Response{
		Status:           resp.Status,
		StatusCode:       resp.StatusCode,
		Proto:            resp.Proto,
		ProtoMajor:       resp.ProtoMajor,
		ProtoMinor:       resp.ProtoMinor,
		Header:           http.Header(resp.Header),
		Body:             resp.Body,
		ContentLength:    resp.ContentLength,
		TransferEncoding: resp.TransferEncoding,
		Uncompressed:     resp.Uncompressed,
		Trailer:          http.Header(resp.Trailer),
	}
	if out.Header == nil {
		out.Header = http.Header{}
	}
	return out
}
