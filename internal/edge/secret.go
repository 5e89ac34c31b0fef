package edge

import (
	"context"
	"os"
	"strings"
	"sync/atomic"
	"time"

	perr "dmphub/internal/platform/errors"

	"golang.org/x/sync/singleflight"
)

// SecretSource supplies the credential signing secret. Implementations may
// hit the network; the provider bounds every call with a timeout
type SecretSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// EnvSource reads the secret from an environment variable
type EnvSource struct{ Key string }

// Fetch implements SecretSource
func (s EnvSource) Fetch(_ context.Context) ([]byte, error) {
	v := strings.TrimSpace(os.Getenv(s.Key))
	if v == "" {
		return nil, perr.Configf("secret env %s is empty", s.Key)
	}
	return []byte(v), nil
}

// FileSource reads the secret from a mounted file (trailing whitespace trimmed)
type FileSource struct{ Path string }

// Fetch implements SecretSource
func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "secret file %s", s.Path)
	}
	b = []byte(strings.TrimSpace(string(b)))
	if len(b) == 0 {
		return nil, perr.Configf("secret file %s is empty", s.Path)
	}
	return b, nil
}

// SecretProvider memoizes a SecretSource. The secret is immutable for the
// process lifetime: once populated the cache is read-only, so concurrent
// readers need no lock. First population is collapsed to at most one
// in-flight fetch via singleflight
type SecretProvider struct {
	source  SecretSource
	timeout time.Duration
	group   singleflight.Group
	cached  atomic.Pointer[[]byte]
}

// NewSecretProvider wraps src with memoization and a per-fetch timeout.
// timeout <= 0 defaults to 5s
func NewSecretProvider(src SecretSource, timeout time.Duration) *SecretProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SecretProvider{source: src, timeout: timeout}
}

// Get returns the cached secret, fetching it on first use. A failed fetch is
// a configuration error; nothing is cached so a later call retries
func (p *SecretProvider) Get(ctx context.Context) ([]byte, error) {
	if b := p.cached.Load(); b != nil {
		return *b, nil
	}
	v, err, _ := p.group.Do("secret", func() (any, error) {
		// re-check under the flight; a racing caller may have populated it
		if b := p.cached.Load(); b != nil {
			return *b, nil
		}
		fctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		b, err := p.source.Fetch(fctx)
		if err != nil {
			return nil, err
		}
		p.cached.Store(&b)
		return b, nil
	})
	if err != nil {
		if _, ok := perr.As(err); ok {
			return nil, err
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "signing secret unobtainable")
	}
	return v.([]byte), nil
}

// Prime fetches the secret eagerly so a misconfigured deployment fails at
// startup instead of silently treating every user as anonymous
func (p *SecretProvider) Prime(ctx context.Context) error {
	_, err := p.Get(ctx)
	return err
}
