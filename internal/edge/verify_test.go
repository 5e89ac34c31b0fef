package edge

import (
	"context"
	"testing"
	"time"

	perr "dmphub/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
)

func newTestVerifier(t *testing.T, src SecretSource) *Verifier {
	t.Helper()
	return NewVerifier(NewSecretProvider(src, time.Second))
}

func TestVerifyValidCredential(t *testing.T) {
	v := newTestVerifier(t, &staticSecret{b: testSecret})
	tok := mintToken(t, testSecret, "pt-BR", time.Hour)

	claims, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Lang != "pt-BR" || claims.Subject != "user-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	v := newTestVerifier(t, &staticSecret{b: testSecret})

	tests := []struct {
		name string
		tok  string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"expired", mintToken(t, testSecret, "en-US", -time.Hour)},
		{"wrong key", mintToken(t, []byte("other-secret"), "en-US", time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(context.Background(), tt.tok); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	v := newTestVerifier(t, &staticSecret{b: testSecret})

	// alg=none style tokens must never verify
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Lang: "en-US"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := v.Verify(context.Background(), tok); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerifySecretUnavailableIsConfigError(t *testing.T) {
	v := newTestVerifier(t, &staticSecret{err: perr.Configf("vault down")})
	tok := mintToken(t, testSecret, "en-US", time.Hour)

	_, err := v.Verify(context.Background(), tok)
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
