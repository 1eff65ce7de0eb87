// Package client wraps an HTTP request primitive so every request carries a
// freshly generated, browser-like header set.
//
// The primitive itself is injected as a Fetcher. The default one is a plain
// net/http client; this package never dials, retries or reads responses on its own.
//
// # Basic Usage
//
//	c := client.NewClient(client.WithBrowser("firefox"))
//
//	resp, err := c.Get(ctx, "https://example.com", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// # Caller Headers
//
// Headers passed by the caller always win over generated ones:
//
//	resp, err := c.Do(ctx, "https://example.com/api", &client.RequestOptions{
//	    Method:  http.MethodPost,
//	    Headers: headers.Map{"accept": "application/json"},
//	    Body:    strings.NewReader(`{"q":1}`),
//	}, &headers.Options{Browser: "chrome", OS: "mac"})
package client

import (
	"context"
	"io"
	"net/http"

	"github.com/sardanioss/hmmfetch/headers"
)

// Fetcher performs one HTTP request. It receives the target and the options
// with headers already merged, and its result is handed back to the caller as is.
type Fetcher interface {
	Fetch(ctx context.Context, target string, opts *RequestOptions) (*http.Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, target string, opts *RequestOptions) (*http.Response, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, target string, opts *RequestOptions) (*http.Response, error) {
	return f(ctx, target, opts)
}

// RequestOptions describes the outgoing request. Everything except Headers
// is passed to the Fetcher untouched.
type RequestOptions struct {
	Method        string         // empty means GET
	Headers       headers.Source // caller headers, win over generated ones
	Body          io.Reader
	ContentLength int64 // optional, for bodies net/http can't size itself
}

// Client merges generated headers into requests and delegates to its Fetcher
type Client struct {
	generator *headers.Generator
	config    *ClientConfig
}

// NewClient creates a client with default configuration
func NewClient(opts ...Option) *Client {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	var genOpts []headers.GeneratorOption
	if config.Picker != nil {
		genOpts = append(genOpts, headers.WithPicker(config.Picker))
	}

	return &Client{
		generator: headers.NewGenerator(genOpts...),
		config:    config,
	}
}

// Generator returns the header generator used by the client
func (c *Client) Generator() *headers.Generator {
	return c.generator
}

// Headers generates a header set with the client's random source.
// A nil hopts uses the client's default header options.
func (c *Client) Headers(hopts *headers.Options) map[string]string {
	return c.generator.Generate(c.headerOptions(hopts))
}

// Do performs a request with generated headers merged beneath the caller's.
// opts is never modified; a nil opts is an empty GET.
// The Fetcher's response and error are returned unchanged.
func (c *Client) Do(ctx context.Context, target string, opts *RequestOptions, hopts *headers.Options) (*http.Response, error) {
	var reqOpts RequestOptions
	if opts != nil {
		reqOpts = *opts
	}

	caller := headers.Normalize(reqOpts.Headers)
	sel := c.generator.Resolve(c.headerOptions(hopts))
	c.config.Logger.Logf("[DEBUG] %s %s as %s/%s %s, %d caller headers",
		methodOrGet(reqOpts.Method), target, sel.Browser, sel.OS, sel.Version, len(caller))

	reqOpts.Headers = headers.Map(headers.Merge(c.generator.Render(sel), caller))
	return c.config.Fetcher.Fetch(ctx, target, &reqOpts)
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, target string, hdrs headers.Source) (*http.Response, error) {
	return c.Do(ctx, target, &RequestOptions{Method: http.MethodGet, Headers: hdrs}, nil)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, target string, body io.Reader, hdrs headers.Source) (*http.Response, error) {
	return c.Do(ctx, target, &RequestOptions{Method: http.MethodPost, Headers: hdrs, Body: body}, nil)
}

func (c *Client) headerOptions(hopts *headers.Options) *headers.Options {
	if hopts != nil {
		return hopts
	}
	o := c.config.HeaderOptions
	return &o
}

func methodOrGet(method string) string {
	if method == "" {
		return http.MethodGet
	}
	return method
}
