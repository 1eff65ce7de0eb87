// Package headers builds browser-like request headers and merges them with
// headers supplied by the caller.
//
// Basic usage:
//
//	h := headers.Generate(&headers.Options{Browser: "firefox", OS: "linux"})
//	fmt.Println(h["user-agent"])
//
// Generation never fails: unknown browsers fall back to chrome, and a platform
// the chosen browser doesn't ship on falls back to that browser's first platform.
package headers

import (
	"slices"

	"github.com/sardanioss/hmmfetch/fingerprint"
)

// Options constrains header generation. Empty fields and "random" mean any.
type Options struct {
	Browser  string // chrome, firefox, safari, edge or random
	OS       string // windows, mac, linux or random
	Language string // accept-language value used verbatim, or random
}

// Selection is one resolved profile
type Selection struct {
	Browser  fingerprint.Browser
	OS       fingerprint.OS
	Version  string
	Language string
}

const defaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"

var cacheControls = []string{"max-age=0", "no-cache"}

// Generator resolves options into a profile and renders its headers.
// It holds no state besides its random source.
type Generator struct {
	picker Picker
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithPicker sets the random source. The generator is only as goroutine-safe as the picker.
func WithPicker(p Picker) GeneratorOption {
	return func(g *Generator) {
		if p != nil {
			g.picker = p
		}
	}
}

// NewGenerator creates a generator drawing from DefaultPicker unless overridden
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{picker: DefaultPicker}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// Generate renders a fresh header set using the default generator
func Generate(opts *Options) map[string]string {
	return defaultGenerator.Generate(opts)
}

// Generate resolves opts and renders the headers. A nil opts is the same as empty options.
func (g *Generator) Generate(opts *Options) map[string]string {
	return g.Render(g.Resolve(opts))
}

// Resolve picks the concrete browser, platform, version and language.
// Draw order is browser, OS, version, language.
func (g *Generator) Resolve(opts *Options) Selection {
	var o Options
	if opts != nil {
		o = *opts
	}

	var browser fingerprint.Browser
	switch {
	case isRandom(o.Browser):
		browser = Pick(g.picker, fingerprint.Browsers())
	case slices.Contains(fingerprint.Browsers(), fingerprint.Browser(o.Browser)):
		browser = fingerprint.Browser(o.Browser)
	default:
		browser = fingerprint.Chrome
	}
	profile, _ := fingerprint.Lookup(browser)

	var os fingerprint.OS
	oses := profile.OSes()
	switch {
	case isRandom(o.OS):
		os = Pick(g.picker, oses)
	case profile.Supports(fingerprint.OS(o.OS)):
		os = fingerprint.OS(o.OS)
	default:
		os = oses[0]
	}

	version := Pick(g.picker, profile.Versions())

	language := o.Language
	if isRandom(language) {
		language = Pick(g.picker, fingerprint.Languages())
	}

	return Selection{Browser: browser, OS: os, Version: version, Language: language}
}

// Render builds the header map for a selection. Keys are lower-case and the
// map is never shared. An unknown browser in sel renders as chrome.
func (g *Generator) Render(sel Selection) map[string]string {
	profile, ok := fingerprint.Lookup(sel.Browser)
	if !ok {
		profile, _ = fingerprint.Lookup(fingerprint.Chrome)
	}
	os := sel.OS
	if !profile.Supports(os) {
		os = profile.OSes()[0]
	}

	h := map[string]string{
		"accept":                    defaultAccept,
		"accept-encoding":           "gzip, deflate, br",
		"accept-language":           sel.Language,
		"cache-control":             Pick(g.picker, cacheControls),
		"sec-fetch-dest":            "document",
		"sec-fetch-mode":            "navigate",
		"sec-fetch-site":            "none",
		"sec-fetch-user":            "?1",
		"upgrade-insecure-requests": "1",
		"user-agent":                profile.UserAgent(os, sel.Version),
	}

	for k, v := range profile.Extra(sel.Version) {
		h[k] = v
	}

	if profile.ChromiumFamily() {
		h["sec-ch-ua-platform"] = fingerprint.Platform(os)
		h["sec-ch-ua-mobile"] = "?0"
	}

	return h
}

func isRandom(v string) bool {
	return v == "" || v == fingerprint.Random
}
