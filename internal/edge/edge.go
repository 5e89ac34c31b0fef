// Package edge implements the request-gating pipeline that fronts every
// inbound request: auth enforcement, transparent token refresh, locale
// resolution, and locale-prefix rewriting. The pipeline is a pure function of
// the request plus two external calls (secret fetch, token refresh); it holds
// no per-request state between invocations.
package edge

import (
	"net/http"

	"dmphub/internal/core/locale"
	"dmphub/internal/platform/metrics"
	pstrings "dmphub/internal/platform/strings"
)

// Cookie names issued by the authentication backend. These must match what
// the backend sets; they are wire constants, not tunables.
const (
	AccessCookie  = "dmspt"
	RefreshCookie = "dmspr"
)

// RawURLHeader carries the exact original request URL on pass-through
// responses under the plans section, so the landing page can recover it
const RawURLHeader = "x-url"

// ActionHeader flags a same-origin state-mutating call that cannot follow
// redirects transparently. Such requests are exempt from every
// redirect-producing stage and fail auth at the application layer instead
const ActionHeader = "x-action"

// Options configures a Gate. Zero values get sensible defaults in New
type Options struct {
	// Locales is the fixed supported set; required
	Locales *locale.Set

	// Secrets supplies the credential signing secret; required
	Secrets *SecretProvider

	// Refresher exchanges a refresh credential for a new session; required
	// for refresh handling, nil disables it (refresh-present requests are
	// then treated as credential-less)
	Refresher Refresher

	// LoginPath is the auth entry path, redirect targets are locale-prefixed
	LoginPath string

	// RawURLPrefix is the locale-stripped section that gets the RawURLHeader
	RawURLPrefix string

	// Excluded are locale-stripped path prefixes never gated for auth
	Excluded []string

	// Metrics records gate decisions; nil disables recording
	Metrics *metrics.Metrics
}

// Gate runs the pipeline. Construct once, share across requests; it is safe
// for concurrent use
type Gate struct {
	opt      Options
	verifier *Verifier
}

// New builds a Gate, applying defaults for unset options
func New(opt Options) *Gate {
	if opt.Locales == nil {
		panic("edge: Options.Locales is required")
	}
	if opt.Secrets == nil {
		panic("edge: Options.Secrets is required")
	}
	if opt.LoginPath == "" {
		opt.LoginPath = "/login"
	}
	opt.LoginPath = pstrings.MustPrefix(opt.LoginPath)
	if opt.RawURLPrefix == "" {
		opt.RawURLPrefix = "/dmps"
	}
	opt.RawURLPrefix = pstrings.MustPrefix(opt.RawURLPrefix)
	opt.Excluded = pstrings.IfEmpty(opt.Excluded, []string{
		opt.LoginPath,
		"/signup",
		"/auth",
		"/healthz",
		"/metrics",
		"/assets",
		"/favicon.ico",
	})
	return &Gate{opt: opt, verifier: NewVerifier(opt.Secrets)}
}

// cookieValue returns the named cookie's value or "" when absent
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil || c == nil {
		return ""
	}
	return c.Value
}

// requestURL reconstructs the full original URL for redirect-to-self and the
// raw-URL marker header. Scheme honors the usual proxy header
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
