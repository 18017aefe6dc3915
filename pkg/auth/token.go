package auth

import (
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

// TokenSource yields the bearer token for outgoing requests.
type TokenSource interface {
	Token() (string, bool)
}

// CredentialStore is a TokenSource whose credentials can be cleared when
// the session is found to be invalid.
type CredentialStore interface {
	TokenSource
	Clear()
}

// unverifiedParser never validates signatures or registered claims; the
// storefront does not hold the signing secret and only needs to inspect
// the embedded expiry before spending a round trip.
var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// InspectClaims decodes the token's claims without verifying the signature.
func InspectClaims(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(strings.TrimSpace(tokenString), claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsExpired reports whether the token's exp claim is at or before now.
// Malformed tokens count as expired; a token without an exp claim does
// not, the service makes the final call on those.
func IsExpired(tokenString string, now time.Time) bool {
	claims, err := InspectClaims(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(now)
}

// RequireFresh returns the bearer token, or an authentication error when
// the token is missing or locally expired. An expired token clears the
// store so the next entry forces a sign-in.
func RequireFresh(store CredentialStore, now time.Time) (string, error) {
	if store == nil {
		return "", pkgerrors.New(pkgerrors.CodeAuthentication, "no credential store configured")
	}
	token, ok := store.Token()
	if !ok || strings.TrimSpace(token) == "" {
		return "", pkgerrors.New(pkgerrors.CodeAuthentication, "missing session token")
	}
	if IsExpired(token, now) {
		store.Clear()
		return "", pkgerrors.New(pkgerrors.CodeAuthentication, "session token expired")
	}
	return token, nil
}

// MemoryStore holds the session token in memory. The wider application
// injects its own storage-backed implementation; this one serves tests
// and the demo binary.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore seeds a store with the provided token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", false
	}
	return m.token, true
}

func (m *MemoryStore) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}
