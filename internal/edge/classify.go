package edge

import (
	"net/http"
	"strings"
)

// PathInfo is the classifier's verdict for one request. It is derived once
// per request and drives every later stage
type PathInfo struct {
	// Excluded paths are never gated for auth (auth entry pages, signup,
	// health). They still receive locale-prefix rewriting
	Excluded bool

	// Action marks a state-mutating same-origin call that cannot follow a
	// redirect; exempt from every redirect-producing stage
	Action bool

	// Locale is the canonical supported locale when the path already carries
	// a locale prefix, "" otherwise
	Locale string

	// Rest is the path with any locale prefix stripped, always starting "/"
	Rest string
}

// classify maps a request to its gating flags. Pure: no token inspection,
// no external calls
func (g *Gate) classify(r *http.Request) PathInfo {
	info := PathInfo{Rest: r.URL.Path}

	if loc, rest, ok := g.splitLocale(r.URL.Path); ok {
		info.Locale = loc
		info.Rest = rest
	}

	for _, p := range g.opt.Excluded {
		if info.Rest == p || strings.HasPrefix(info.Rest, p+"/") {
			info.Excluded = true
			break
		}
	}

	if r.Header.Get(ActionHeader) != "" && r.Method != http.MethodGet && r.Method != http.MethodHead {
		info.Action = true
	}

	return info
}

// splitLocale peels a leading supported-locale segment off path.
// "/pt-BR/dmps" -> ("pt-BR", "/dmps", true); "/dmps" -> ("", "", false)
func (g *Gate) splitLocale(path string) (loc, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, tail, found := strings.Cut(trimmed, "/")
	canon, member := g.opt.Locales.Canonical(seg)
	if !member {
		return "", "", false
	}
	if !found {
		return canon, "/", true
	}
	return canon, "/" + tail, true
}
