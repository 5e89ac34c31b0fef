package edge

import (
	"net/http"

	perr "dmphub/internal/platform/errors"
	"dmphub/internal/platform/logger"
)

// localeStrategy is one step of the fallback chain: it either produces a
// supported locale or reports "no answer". Steps never error outward
type localeStrategy struct {
	source string
	fn     func(r *http.Request) (string, bool)
}

// resolveLocale runs the fallback chain and always returns exactly one
// supported locale plus the step that produced it. Adding a source is a list
// insertion, not another nesting level
func (g *Gate) resolveLocale(r *http.Request) (code, source string) {
	chain := []localeStrategy{
		{source: "claims", fn: g.localeFromClaims},
		{source: "header", fn: g.localeFromHeader},
	}
	for _, s := range chain {
		if c, ok := s.fn(r); ok {
			return c, s.source
		}
	}
	return g.opt.Locales.Default(), "default"
}

// localeFromClaims verifies the access credential, if any, and takes its
// locale preference when it names a supported locale. Verification failures
// mean "no answer"; a missing signing secret is logged loudly because it is
// an operational fault, not a user condition
func (g *Gate) localeFromClaims(r *http.Request) (string, bool) {
	cred := cookieValue(r, AccessCookie)
	if cred == "" {
		return "", false
	}
	claims, err := g.verifier.Verify(r.Context(), cred)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeConfig) {
			logger.C(r.Context()).Error().Err(err).Msg("credential verification misconfigured")
		}
		return "", false
	}
	return g.opt.Locales.Canonical(claims.Lang)
}

// localeFromHeader matches the Accept-Language header against the set
func (g *Gate) localeFromHeader(r *http.Request) (string, bool) {
	return g.opt.Locales.FromAcceptLanguage(r.Header.Get("Accept-Language"))
}
