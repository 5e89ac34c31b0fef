package edge

import (
	"net/http"
	"path"
	"strings"

	"dmphub/internal/platform/logger"
	pnet "dmphub/internal/platform/net"
)

// Middleware adapts the pipeline to http middleware. next is the downstream
// internationalized router; it only ever sees requests the pipeline passed,
// and by then the path is locale-prefixed (or exempt as an action request)
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Process(r)

		ctx := pnet.WithLocale(r.Context(), d.Locale)
		ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), d.Locale)
		r = r.WithContext(ctx)

		for _, raw := range d.SetCookies {
			w.Header().Add("Set-Cookie", raw)
		}
		for _, name := range d.ClearCookies {
			http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
		}

		if d.Kind == DecisionRedirect {
			http.Redirect(w, r, d.Location, d.Status)
			return
		}

		if d.AttachRawURL {
			w.Header().Set(RawURLHeader, requestURL(r))
		}
		next.ServeHTTP(w, r)
	})
}

// Skip wraps the gate middleware with a registration-time exclusion list:
// requests matching any pattern bypass the pipeline entirely. Patterns are
// path globs ("/assets/*", "/healthz"); a trailing "/*" matches any depth.
// This is coarser than the in-pipeline excluded list, which still resolves a
// locale for its paths
func Skip(gate func(http.Handler) http.Handler, patterns ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		gated := gate(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range patterns {
				if matchSkip(p, r.URL.Path) {
					next.ServeHTTP(w, r)
					return
				}
			}
			gated.ServeHTTP(w, r)
		})
	}
}

// matchSkip matches a registration glob against a path. "/assets/*" covers
// the whole subtree, not just one segment
func matchSkip(pattern, p string) bool {
	if sub, ok := strings.CutSuffix(pattern, "/*"); ok {
		return p == sub || strings.HasPrefix(p, sub+"/")
	}
	ok, err := path.Match(pattern, p)
	return err == nil && ok
}
