package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/sardanioss/hmmfetch/headers"
)

// HTTPFetcher is the default Fetcher, backed by a net/http client
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher wraps hc, http.DefaultClient if nil
func NewHTTPFetcher(hc *http.Client) *HTTPFetcher {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPFetcher{client: hc}
}

// Fetch builds a request from opts and sends it.
// Errors from the http client are returned as they come.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string, opts *RequestOptions) (*http.Response, error) {
	req, err := buildHTTPRequest(ctx, target, opts)
	if err != nil {
		return nil, err
	}
	return f.client.Do(req)
}

// buildHTTPRequest builds an http.Request from request options
func buildHTTPRequest(ctx context.Context, target string, opts *RequestOptions) (*http.Request, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	req, err := http.NewRequestWithContext(ctx, methodOrGet(opts.Method), target, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if opts.ContentLength > 0 {
		req.ContentLength = opts.ContentLength
	}

	for key, value := range headers.Fold(headers.Normalize(opts.Headers)) {
		if key == "host" {
			req.Host = value
			continue
		}
		req.Header.Set(key, value)
	}

	return req, nil
}

// DecodeBody returns a reader over the decoded response body for the br, zstd,
// gzip and deflate content codings. Unknown or absent codings return the body as is.
// Closing the returned reader closes resp.Body.
//
// Do never calls it: net/http only decodes gzip it asked for itself, and the
// generated accept-encoding asks for more.
func DecodeBody(resp *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))

	switch encoding {
	case "br":
		return &decodedBody{Reader: brotli.NewReader(resp.Body), body: resp.Body}, nil

	case "zstd":
		decoder, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		return &decodedBody{Reader: decoder, body: resp.Body, release: decoder.Close}, nil

	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &decodedBody{Reader: reader, body: resp.Body, release: func() { _ = reader.Close() }}, nil

	case "deflate":
		reader := flate.NewReader(resp.Body)
		return &decodedBody{Reader: reader, body: resp.Body, release: func() { _ = reader.Close() }}, nil

	default:
		// identity or unknown encoding, return as-is
		return resp.Body, nil
	}
}

// decodedBody closes the decoder and the underlying body together
type decodedBody struct {
	io.Reader
	body    io.Closer
	release func()
}

func (d *decodedBody) Close() error {
	if d.release != nil {
		d.release()
	}
	return d.body.Close()
}
