package fingerprint

import "strings"

// Header emission order of a top-level navigation, lower-case.
// Only transports that control header order (HTTP/2 via fhttp) make use of it.
var headerOrders = map[Browser][]string{
	Chrome: {
		"cache-control",
		"sec-ch-ua",
		"sec-ch-ua-mobile",
		"sec-ch-ua-platform",
		"upgrade-insecure-requests",
		"user-agent",
		"accept",
		"sec-fetch-site",
		"sec-fetch-mode",
		"sec-fetch-user",
		"sec-fetch-dest",
		"accept-encoding",
		"accept-language",
		"cookie",
		"priority",
	},
	Firefox: {
		"user-agent",
		"accept",
		"accept-language",
		"accept-encoding",
		"cookie",
		"upgrade-insecure-requests",
		"sec-fetch-dest",
		"sec-fetch-mode",
		"sec-fetch-site",
		"sec-fetch-user",
		"priority",
		"cache-control",
	},
	Safari: {
		"sec-fetch-dest",
		"user-agent",
		"accept",
		"sec-fetch-site",
		"sec-fetch-mode",
		"upgrade-insecure-requests",
		"sec-fetch-user",
		"accept-language",
		"cache-control",
		"priority",
		"accept-encoding",
		"cookie",
	},
}

func init() {
	// Edge is Chromium on the wire
	headerOrders[Edge] = headerOrders[Chrome]
}

// HeaderOrder returns the header order a browser uses, chrome's for unknown browsers
func HeaderOrder(b Browser) []string {
	order, ok := headerOrders[b]
	if !ok {
		order = headerOrders[Chrome]
	}
	return append([]string(nil), order...)
}

// Detect infers the browser family from a user agent string.
// Every Chromium UA also carries "Safari/", so the checks run from most to least specific.
// Unrecognised agents are reported as chrome.
func Detect(userAgent string) Browser {
	switch {
	case strings.Contains(userAgent, "Edg/"):
		return Edge
	case strings.Contains(userAgent, "Firefox/"):
		return Firefox
	case strings.Contains(userAgent, "Chrome/"):
		return Chrome
	case strings.Contains(userAgent, "Safari/"):
		return Safari
	default:
		return Chrome
	}
}
