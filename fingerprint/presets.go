package fingerprint

import (
	"strconv"
	"strings"
)

// Browser identifies an emulated browser family
type Browser string

// OS identifies an emulated operating system
type OS string

const (
	Chrome  Browser = "chrome"
	Firefox Browser = "firefox"
	Safari  Browser = "safari"
	Edge    Browser = "edge"
)

const (
	Windows OS = "windows"
	Mac     OS = "mac"
	Linux   OS = "linux"
)

// Random is the selector value that asks for a uniform random choice
const Random = "random"

// PlatformInfo contains platform-specific header values
type PlatformInfo struct {
	UserAgentOS        string // e.g., "Windows NT 10.0; Win64; x64" or "X11; Linux x86_64"
	FirefoxUserAgentOS string // Firefox has slightly different format on macOS
	Platform           string // e.g., "Windows", "Linux", "macOS"
}

var platforms = map[OS]PlatformInfo{
	Windows: {
		UserAgentOS:        "Windows NT 10.0; Win64; x64",
		FirefoxUserAgentOS: "Windows NT 10.0; Win64; x64",
		Platform:           "Windows",
	},
	Mac: {
		UserAgentOS:        "Macintosh; Intel Mac OS X 10_15_7",
		FirefoxUserAgentOS: "Macintosh; Intel Mac OS X 10.15",
		Platform:           "macOS",
	},
	Linux: {
		UserAgentOS:        "X11; Linux x86_64",
		FirefoxUserAgentOS: "X11; Linux x86_64",
		Platform:           "Linux",
	},
}

// languages is the accept-language pool used when no language is requested
var languages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-CA,en;q=0.9,fr-CA;q=0.8",
	"es-ES,es;q=0.9",
	"fr-FR,fr;q=0.9",
	"de-DE,de;q=0.9",
	"zh-CN,zh;q=0.9",
	"ja-JP,ja;q=0.9",
	"ko-KR,ko;q=0.9",
}

const (
	firefoxAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	safariAccept  = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	zstdEncoding  = "gzip, deflate, br, zstd"
)

// Profile describes one browser family: which platforms it runs on, which
// versions are plausible and how its user agent and extra headers look.
// Profiles are immutable; accessors hand out copies.
type Profile struct {
	browser  Browser
	oses     []OS
	versions []string
	ua       map[OS]func(version string) string
	extra    func(version string) map[string]string
	chromium bool
}

// Browser returns the browser identifier
func (p Profile) Browser() Browser { return p.browser }

// OSes returns the supported platforms, first entry is the fallback
func (p Profile) OSes() []OS { return append([]OS(nil), p.oses...) }

// Versions returns the plausible version strings
func (p Profile) Versions() []string { return append([]string(nil), p.versions...) }

// Supports reports whether the browser ships on the given platform
func (p Profile) Supports(os OS) bool {
	_, ok := p.ua[os]
	return ok
}

// ChromiumFamily reports whether the browser sends low-entropy client hints
func (p Profile) ChromiumFamily() bool { return p.chromium }

// UserAgent renders the user agent for a platform and version.
// Unsupported platforms render for the first supported one; a zero Profile renders "".
func (p Profile) UserAgent(os OS, version string) string {
	render, ok := p.ua[os]
	if !ok && len(p.oses) > 0 {
		render = p.ua[p.oses[0]]
	}
	if render == nil {
		return ""
	}
	return render(version)
}

// Extra returns the version-specific headers, or nil if the browser has none.
// The map is freshly built on every call.
func (p Profile) Extra(version string) map[string]string {
	if p.extra == nil {
		return nil
	}
	return p.extra(version)
}

func chromiumUA(os OS, suffix func(v string) string) func(string) string {
	return func(v string) string {
		ua := "Mozilla/5.0 (" + platforms[os].UserAgentOS + ") AppleWebKit/537.36 (KHTML, like Gecko) Chrome/" + v + ".0.0.0 Safari/537.36"
		if suffix != nil {
			ua += suffix(v)
		}
		return ua
	}
}

func firefoxUA(os OS) func(string) string {
	return func(v string) string {
		return "Mozilla/5.0 (" + platforms[os].FirefoxUserAgentOS + "; rv:" + v + ".0) Gecko/20100101 Firefox/" + v + ".0"
	}
}

func edgeSuffix(v string) string { return " Edg/" + v + ".0.1823.58" }

var profiles = map[Browser]Profile{
	Chrome: {
		browser:  Chrome,
		oses:     []OS{Windows, Mac, Linux},
		versions: versionRange(114, 135),
		ua: map[OS]func(string) string{
			Windows: chromiumUA(Windows, nil),
			Mac:     chromiumUA(Mac, nil),
			Linux:   chromiumUA(Linux, nil),
		},
		extra: func(v string) map[string]string {
			h := map[string]string{
				"sec-ch-ua":        `"Chromium";v="` + v + `", "Not:A-Brand";v="24", "Google Chrome";v="` + v + `"`,
				"sec-ch-ua-mobile": "?0",
				"priority":         "u=0, i",
			}
			// zstd shipped in Chrome 123
			if majorAtLeast(v, 123) {
				h["accept-encoding"] = zstdEncoding
			}
			return h
		},
		chromium: true,
	},
	Firefox: {
		browser:  Firefox,
		oses:     []OS{Windows, Mac, Linux},
		versions: versionRange(115, 126),
		ua: map[OS]func(string) string{
			Windows: firefoxUA(Windows),
			Mac:     firefoxUA(Mac),
			Linux:   firefoxUA(Linux),
		},
		extra: func(v string) map[string]string {
			h := map[string]string{"accept": firefoxAccept}
			if majorAtLeast(v, 126) {
				h["accept-encoding"] = zstdEncoding
			}
			return h
		},
	},
	Safari: {
		browser: Safari,
		oses:    []OS{Mac},
		versions: []string{
			"16.0", "16.1", "16.2", "16.3", "16.4", "16.5", "16.6",
			"17.0", "17.1", "17.2", "17.3", "17.4",
		},
		ua: map[OS]func(string) string{
			Mac: func(v string) string {
				return "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/" + v + " Safari/605.1.15"
			},
		},
		extra: func(string) map[string]string {
			return map[string]string{"accept": safariAccept}
		},
	},
	Edge: {
		browser:  Edge,
		oses:     []OS{Windows, Mac, Linux},
		versions: versionRange(114, 125),
		ua: map[OS]func(string) string{
			Windows: chromiumUA(Windows, edgeSuffix),
			Mac:     chromiumUA(Mac, edgeSuffix),
			Linux:   chromiumUA(Linux, edgeSuffix),
		},
		extra: func(v string) map[string]string {
			h := map[string]string{
				"sec-ch-ua": `"Chromium";v="` + v + `", "Not:A-Brand";v="24", "Microsoft Edge";v="` + v + `"`,
			}
			if majorAtLeast(v, 123) {
				h["accept-encoding"] = zstdEncoding
			}
			return h
		},
		chromium: true,
	},
}

// browsers fixes the enumeration order used for random picks
var browsers = []Browser{Chrome, Firefox, Safari, Edge}

// Lookup returns the profile of a browser
func Lookup(b Browser) (Profile, bool) {
	p, ok := profiles[b]
	return p, ok
}

// Browsers returns all known browsers in enumeration order
func Browsers() []Browser {
	return append([]Browser(nil), browsers...)
}

// Platform returns the quoted sec-ch-ua-platform value for an OS, or "" if unknown
func Platform(os OS) string {
	info, ok := platforms[os]
	if !ok {
		return ""
	}
	return `"` + info.Platform + `"`
}

// Languages returns the accept-language pool
func Languages() []string {
	return append([]string(nil), languages...)
}

func versionRange(from, to int) []string {
	versions := make([]string, 0, to-from+1)
	for v := from; v <= to; v++ {
		versions = append(versions, strconv.Itoa(v))
	}
	return versions
}

// majorAtLeast compares the major part of a dotted version
func majorAtLeast(version string, major int) bool {
	head, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return false
	}
	return n >= major
}
