// Package client options - configuration for the header-injecting client.
//
// The client uses functional options pattern for configuration.
// All options have sensible defaults, so you can create a client with just:
//
//	c := client.NewClient()
//
// Or customize with options:
//
//	c := client.NewClient(
//	    client.WithBrowser("safari"),
//	    client.WithLanguage("de-DE,de;q=0.9"),
//	    client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//	)
package client

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/sardanioss/hmmfetch/headers"
)

// ClientConfig holds all configuration options for the client.
// Use functional options (WithFetcher, WithBrowser, etc.) to set these values.
type ClientConfig struct {
	// HeaderOptions are used whenever a call passes nil header options.
	// Default: everything random.
	HeaderOptions headers.Options

	// Fetcher performs the actual request.
	// Default: HTTPFetcher over http.DefaultClient.
	Fetcher Fetcher

	// Picker is the random source for header generation.
	// Default: headers.DefaultPicker.
	Picker headers.Picker

	// Logger receives one debug line per request.
	// Default: lgr.NoOp.
	Logger lgr.L
}

// DefaultConfig returns default client configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Fetcher: NewHTTPFetcher(nil),
		Picker:  headers.DefaultPicker,
		Logger:  lgr.NoOp,
	}
}

// Option is a function that modifies ClientConfig
type Option func(*ClientConfig)

// WithFetcher sets the request primitive
func WithFetcher(f Fetcher) Option {
	return func(c *ClientConfig) {
		if f != nil {
			c.Fetcher = f
		}
	}
}

// WithHTTPClient uses the given net/http client as request primitive
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ClientConfig) {
		c.Fetcher = NewHTTPFetcher(hc)
	}
}

// WithPicker sets the random source, mostly useful to pin a seed in tests
func WithPicker(p headers.Picker) Option {
	return func(c *ClientConfig) {
		if p != nil {
			c.Picker = p
		}
	}
}

// WithLogger sets the logger
func WithLogger(l lgr.L) Option {
	return func(c *ClientConfig) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithHeaderOptions sets the default header options
func WithHeaderOptions(opts headers.Options) Option {
	return func(c *ClientConfig) {
		c.HeaderOptions = opts
	}
}

// WithBrowser sets the default browser
func WithBrowser(browser string) Option {
	return func(c *ClientConfig) {
		c.HeaderOptions.Browser = browser
	}
}

// WithOS sets the default operating system
func WithOS(os string) Option {
	return func(c *ClientConfig) {
		c.HeaderOptions.OS = os
	}
}

// WithLanguage sets the default accept-language value
func WithLanguage(language string) Option {
	return func(c *ClientConfig) {
		c.HeaderOptions.Language = language
	}
}
