package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims mirrors the JWT issued to storefront buyers. The client
// only reads these claims; signature verification happens server-side.
type SessionClaims struct {
	UserID       string `json:"user_id"`
	BuyerStoreID string `json:"buyer_store_id,omitempty"`
	Role         string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
