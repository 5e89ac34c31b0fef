package edge

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"dmphub/internal/core/locale"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-signing-secret")

// staticSecret is a SecretSource returning fixed bytes and counting fetches
type staticSecret struct {
	b     []byte
	err   error
	calls atomic.Int32
}

func (s *staticSecret) Fetch(_ context.Context) ([]byte, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.b, nil
}

// stubRefresher returns a canned outcome and records invocations
type stubRefresher struct {
	out    RefreshOutcome
	calls  int
	cookie string
}

func (s *stubRefresher) AttemptRefresh(_ context.Context, cookieHeader string) RefreshOutcome {
	s.calls++
	s.cookie = cookieHeader
	return s.out
}

func testLocales(t *testing.T) *locale.Set {
	t.Helper()
	s, err := locale.NewSet("en-US", "pt-BR")
	if err != nil {
		t.Fatalf("locale set: %v", err)
	}
	return s
}

func newTestGate(t *testing.T, ref Refresher) *Gate {
	t.Helper()
	return New(Options{
		Locales:   testLocales(t),
		Secrets:   NewSecretProvider(&staticSecret{b: testSecret}, time.Second),
		Refresher: ref,
	})
}

// mintToken signs an access credential with the test secret
func mintToken(t *testing.T, secret []byte, lang string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		Lang: lang,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func withCookie(r *http.Request, name, value string) *http.Request {
	r.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}
