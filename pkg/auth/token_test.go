package auth

import (
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := SessionClaims{
		UserID:       "user-1",
		BuyerStoreID: "store-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "packfinderz",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestInspectClaimsWithoutSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token := signedToken(t, now.Add(time.Hour))

	claims, err := InspectClaims(token)
	if err != nil {
		t.Fatalf("inspect claims: %v", err)
	}
	if claims.UserID != "user-1" || claims.BuyerStoreID != "store-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected exp claim to be decoded")
	}
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	if IsExpired(signedToken(t, now.Add(time.Hour)), now) {
		t.Fatal("future expiry should not be expired")
	}
	if !IsExpired(signedToken(t, now.Add(-time.Minute)), now) {
		t.Fatal("past expiry should be expired")
	}
	if !IsExpired("not-a-jwt", now) {
		t.Fatal("malformed tokens count as expired")
	}
}

func TestRequireFreshClearsExpiredToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := NewMemoryStore(signedToken(t, now.Add(-time.Minute)))

	_, err := RequireFresh(store, now)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAuthentication {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("expired token should have been cleared")
	}
}

func TestRequireFreshMissingToken(t *testing.T) {
	t.Parallel()

	_, err := RequireFresh(NewMemoryStore(""), time.Now())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAuthentication {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestRequireFreshReturnsValidToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token := signedToken(t, now.Add(time.Hour))
	store := NewMemoryStore(token)

	got, err := RequireFresh(store, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != token {
		t.Fatal("expected stored token back")
	}
}
