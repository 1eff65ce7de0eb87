// Package hmmfetch makes HTTP requests look like they come from a real browser
// by generating a plausible header set for every call.
//
// Generated headers cover the user agent, client hints, accept and
// accept-language. Headers you pass yourself always win.
//
// Basic usage:
//
//	resp, err := hmmfetch.Request(ctx, "https://example.com", nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// Pinning the browser:
//
//	h := hmmfetch.GenerateHeaders(&hmmfetch.HeaderOptions{Browser: "firefox", OS: "linux"})
//	fmt.Println(h["user-agent"])
//
// With your own client:
//
//	c := hmmfetch.New(
//	    client.WithBrowser("chrome"),
//	    client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//	)
package hmmfetch

import (
	"context"
	"net/http"

	"github.com/sardanioss/hmmfetch/client"
	"github.com/sardanioss/hmmfetch/fingerprint"
	"github.com/sardanioss/hmmfetch/headers"
)

// HeaderOptions constrains header generation
type HeaderOptions = headers.Options

// RequestOptions describes an outgoing request
type RequestOptions = client.RequestOptions

// Client injects generated headers into requests
type Client = client.Client

// Option configures a Client
type Option = client.Option

var defaultClient = client.NewClient()

// GenerateHeaders returns a fresh browser-like header set. A nil opts picks everything at random.
func GenerateHeaders(opts *HeaderOptions) map[string]string {
	return headers.Generate(opts)
}

// Request performs a request through the default client, which uses http.DefaultClient.
// Caller headers in opts win over generated ones.
func Request(ctx context.Context, target string, opts *RequestOptions, hopts *HeaderOptions) (*http.Response, error) {
	return defaultClient.Do(ctx, target, opts, hopts)
}

// New creates a client
func New(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// Browsers returns the supported browser names
func Browsers() []string {
	var names []string
	for _, b := range fingerprint.Browsers() {
		names = append(names, string(b))
	}
	return names
}
