package edge

import (
	"net/http"
	"strings"
)

// rewriteLocale redirects paths lacking a locale prefix to their prefixed
// equivalent, preserving the query string. Runs only after auth has
// committed; action requests never receive this redirect either
func (g *Gate) rewriteLocale(r *http.Request, info PathInfo, loc string) (Decision, bool) {
	if info.Locale != "" || info.Action {
		return Decision{}, false
	}
	target := "/" + loc + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return Decision{
		Kind:     DecisionRedirect,
		Location: target,
		Status:   http.StatusFound,
		Locale:   loc,
		outcome:  "locale_redirect",
	}, true
}

// compose builds the pass-through decision, attaching the raw-URL marker for
// the plans section only. At most one extra header ever rides a pass
func (g *Gate) compose(info PathInfo, loc string) Decision {
	if info.Locale != "" {
		loc = info.Locale
	}
	attach := info.Rest == g.opt.RawURLPrefix || strings.HasPrefix(info.Rest, g.opt.RawURLPrefix+"/")
	return Decision{
		Kind:         DecisionPass,
		AttachRawURL: attach,
		Locale:       loc,
		outcome:      "pass",
	}
}
