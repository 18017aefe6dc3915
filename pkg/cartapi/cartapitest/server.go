// Package cartapitest provides an in-memory implementation of the
// cart/order service contract for tests and local development.
package cartapitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-storefront/pkg/auth"
	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
)

// MintToken issues a parseable session JWT expiring at the given time.
// The fake only compares token strings, but the client inspects the
// expiry claim locally, so the token must decode.
func MintToken(expiresAt time.Time) string {
	claims := auth.SessionClaims{
		UserID:       "buyer-user",
		BuyerStoreID: "buyer-store",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cartapitest",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("cartapitest-secret"))
	if err != nil {
		panic(err)
	}
	return signed
}

// Server is a fake cart/order service backed by an in-memory cart.
type Server struct {
	mu sync.Mutex

	token string
	items []cartapi.CartLineItem

	// SubmitFailure, when non-empty, makes order submission answer 422
	// with this message instead of creating an order.
	SubmitFailure string

	orders    []cartapi.OrderRequest
	lastOrder *cartapi.OrderCreated
}

// NewServer builds a fake service accepting the given bearer token.
func NewServer(token string) *Server {
	return &Server{token: token}
}

// Seed replaces the cart contents.
func (s *Server) Seed(items ...cartapi.CartLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]cartapi.CartLineItem(nil), items...)
}

// Items returns a copy of the current cart contents.
func (s *Server) Items() []cartapi.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]cartapi.CartLineItem(nil), s.items...)
}

// Orders returns every order request accepted so far.
func (s *Server) Orders() []cartapi.OrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]cartapi.OrderRequest(nil), s.orders...)
}

// Router exposes the service's HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requireBearer)
	r.Get("/cart", s.handleGetCart)
	r.Put("/cart/items/{lineItemID}", s.handleUpdateQuantity)
	r.Delete("/cart/items/{lineItemID}", s.handleRemoveItem)
	r.Delete("/cart", s.handleClearCart)
	r.Post("/orders", s.handleSubmitOrder)
	return r
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == token || strings.TrimSpace(token) == "" || token != s.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid session"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.payloadLocked())
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if body.Quantity < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "quantity must be at least 1"})
		return
	}

	id := chi.URLParam(r, "lineItemID")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = body.Quantity
			writeJSON(w, http.StatusOK, s.items[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "line item not found"})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "lineItemID")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "line item not found"})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req cartapi.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SubmitFailure != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": s.SubmitFailure})
		return
	}
	if len(s.items) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "cart is empty"})
		return
	}

	created := cartapi.OrderCreated{OrderID: uuid.NewString()}
	s.orders = append(s.orders, req)
	s.lastOrder = &created
	// Order creation empties the cart server-side.
	s.items = nil
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) payloadLocked() cartapi.CartPayload {
	subtotal := decimal.Zero
	totalQty := 0
	for _, item := range s.items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		totalQty += item.Quantity
	}
	return cartapi.CartPayload{
		CartItems:     append([]cartapi.CartLineItem(nil), s.items...),
		Subtotal:      subtotal,
		TotalQuantity: totalQty,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
