package edge

import (
	"net/http"

	"dmphub/internal/platform/logger"
)

// DecisionKind tags the pipeline's verdict for one request
type DecisionKind int

const (
	// DecisionPass hands the request to the downstream router
	DecisionPass DecisionKind = iota

	// DecisionRedirect short-circuits with a redirect response
	DecisionRedirect
)

// Decision is the pipeline's outcome for one request: either pass-through
// (optionally with the raw-URL marker) or a redirect with cookie mutations.
// It is a value the HTTP adapter executes; nothing here touches the writer
type Decision struct {
	Kind     DecisionKind
	Location string
	Status   int

	// SetCookies are raw Set-Cookie values forwarded verbatim (refresh replay)
	SetCookies []string

	// ClearCookies names cookies to expire on the response
	ClearCookies []string

	// AttachRawURL asks the composer to attach the raw-URL marker header
	AttachRawURL bool

	// Locale is the resolved locale for the request, always set
	Locale string

	// outcome labels the decision for metrics
	outcome string
}

// Process runs the full pipeline for one request and commits to a single
// decision. Stage order is load-bearing: auth resolves before locale
// rewriting so an unauthenticated user lands on login rather than on a
// locale-prefixed path that fails auth again, and rewriting resolves before
// delegation so the downstream router only ever sees prefixed paths
func (g *Gate) Process(r *http.Request) Decision {
	info := g.classify(r)
	loc, src := g.resolveLocale(r)
	g.opt.Metrics.LocaleSource(src)

	if d, denied := g.authorize(r, info, loc); denied {
		g.opt.Metrics.Decision(d.outcome)
		return d
	}

	if d, rewrite := g.rewriteLocale(r, info, loc); rewrite {
		g.opt.Metrics.Decision(d.outcome)
		return d
	}

	d := g.compose(info, loc)
	g.opt.Metrics.Decision(d.outcome)
	return d
}

// authorize is the auth gate: pass, login redirect, or refresh-driven self
// redirect. Excluded paths skip token inspection entirely; action requests
// skip redirect-based denial and fail at the application layer instead
func (g *Gate) authorize(r *http.Request, info PathInfo, loc string) (Decision, bool) {
	if info.Excluded || info.Action {
		return Decision{}, false
	}

	access := cookieValue(r, AccessCookie)
	refresh := cookieValue(r, RefreshCookie)

	switch {
	case access != "":
		// presence suffices at this gate; downstream consumers verify
		return Decision{}, false

	case refresh != "" && g.opt.Refresher != nil:
		return g.refreshAndReplay(r, loc), true

	default:
		logger.C(r.Context()).Info().Str("path", r.URL.Path).Msg("no session, redirecting to login")
		return g.loginRedirect(loc, false), true
	}
}

// refreshAndReplay delegates to the Refresh Coordinator and translates its
// outcome. Established replays the original URL so the browser re-issues the
// request with fresh cookies; cookie mutations on this response are not
// visible to this same request's continued processing, hence the round trip
func (g *Gate) refreshAndReplay(r *http.Request, loc string) Decision {
	out := g.opt.Refresher.AttemptRefresh(r.Context(), r.Header.Get("Cookie"))
	g.opt.Metrics.Refresh(out.Kind.String())

	if out.Kind == RefreshEstablished {
		logger.C(r.Context()).Info().Str("path", r.URL.Path).Msg("session refreshed, replaying request")
		return Decision{
			Kind:       DecisionRedirect,
			Location:   requestURL(r),
			Status:     http.StatusTemporaryRedirect,
			SetCookies: out.SetCookies,
			Locale:     loc,
			outcome:    "self_redirect",
		}
	}

	logger.C(r.Context()).Warn().
		Str("path", r.URL.Path).
		Str("refresh", out.Kind.String()).
		Msg("refresh failed, clearing refresh cookie")
	return g.loginRedirect(loc, out.ClearRefreshCookie)
}

// loginRedirect builds the locale-prefixed login redirect, optionally
// expiring the refresh cookie so the next request does not retry a doomed
// refresh
func (g *Gate) loginRedirect(loc string, clearRefresh bool) Decision {
	d := Decision{
		Kind:     DecisionRedirect,
		Location: "/" + loc + g.opt.LoginPath,
		Status:   http.StatusFound,
		Locale:   loc,
		outcome:  "login_redirect",
	}
	if clearRefresh {
		d.ClearCookies = []string{RefreshCookie}
	}
	return d
}
