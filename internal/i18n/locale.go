// Package i18n resolves the active locale from the request path. The first
// path segment selects the language; everything else about translation
// (dictionaries, text rendering) lives outside this service.
package i18n

import "strings"

// Locale is a supported language code.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"

	// Default is used whenever the path carries no recognised locale segment.
	Default = LocaleEN
)

var supported = map[Locale]struct{}{
	LocaleEN: {},
	LocaleAR: {},
}

// Supported reports whether code is a known locale.
func Supported(code string) bool {
	_, ok := supported[Locale(code)]
	return ok
}

// Resolve inspects the first segment of path and returns the matching locale,
// or Default when the segment is absent or unknown. It never fails.
func Resolve(path string) Locale {
	seg := firstSegment(path)
	if Supported(seg) {
		return Locale(seg)
	}
	return Default
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

// HomePath returns the locale-prefixed home page path, e.g. "/en/".
func HomePath(l Locale) string {
	return "/" + string(l) + "/"
}
