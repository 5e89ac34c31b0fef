package edge

import (
	"context"

	perr "dmphub/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of a verified access credential. Only the
// Verifier constructs these; a failed verification produces no Claims
type Claims struct {
	// Lang is the user's locale preference recorded at sign-in
	Lang string `json:"lang"`
	jwt.RegisteredClaims
}

// Verifier validates access credentials against the signing secret
type Verifier struct {
	secrets *SecretProvider
}

// NewVerifier builds a Verifier over the given secret provider
func NewVerifier(secrets *SecretProvider) *Verifier {
	return &Verifier{secrets: secrets}
}

// Verify checks signature and expiry and returns the decoded claims.
// A missing secret surfaces as a configuration error (ErrorCodeConfig),
// distinct from a bad credential; every verification failure collapses to an
// unauthorized error that callers treat as credential absence. Never panics,
// never lets a jwt error type cross this boundary
func (v *Verifier) Verify(ctx context.Context, credential string) (*Claims, error) {
	if credential == "" {
		return nil, perr.Unauthorizedf("no credential")
	}

	secret, err := v.secrets.Get(ctx)
	if err != nil {
		// configuration error, not a bad credential; keep the code
		return nil, err
	}

	parsed, err := jwt.ParseWithClaims(credential, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return secret, nil
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnauthorized, "invalid credential")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, perr.Unauthorizedf("invalid credential claims")
	}
	return claims, nil
}
