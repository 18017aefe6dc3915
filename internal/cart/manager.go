package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
)

// Service is the slice of the remote cart API the manager consumes.
type Service interface {
	GetCart(ctx context.Context) (*cartapi.CartPayload, error)
	UpdateItemQuantity(ctx context.Context, lineItemID string, quantity int) (*cartapi.CartLineItem, error)
	RemoveItem(ctx context.Context, lineItemID string) error
	ClearCart(ctx context.Context) error
}

// Confirmer blocks for an explicit user decision before a destructive
// operation proceeds.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Manager owns the local view of the buyer's cart. Every mutation is
// followed by a full reload so the displayed aggregates always reflect
// server state; the manager never patches the snapshot optimistically.
// The mutex serializes operations so a second mutation is only issued
// after the prior one's reload completes.
type Manager struct {
	mu       sync.Mutex
	api      Service
	confirm  Confirmer
	logger   *logger.Logger
	snapshot Snapshot
}

// NewManager builds a cart manager backed by the provided service.
func NewManager(api Service, confirm Confirmer, logg *logger.Logger) (*Manager, error) {
	if api == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if confirm == nil {
		return nil, fmt.Errorf("confirmer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		api:     api,
		confirm: confirm,
		logger:  logg,
	}, nil
}

// Snapshot returns the most recently loaded view of the cart.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Load fetches a fresh snapshot from the service. Aggregates are
// recomputed from the returned items; a disagreement with the server's
// own aggregates is logged but the derived values win.
func (m *Manager) Load(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reload(ctx)
}

// SetQuantity updates a line item's quantity and reloads. Requests for
// a quantity below 1 are rejected locally: no request is sent and the
// snapshot is unchanged.
func (m *Manager) SetQuantity(ctx context.Context, lineItemID string, quantity int) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if quantity < 1 {
		m.logger.Debug(m.logger.WithFields(ctx, map[string]any{
			"line_item_id": lineItemID,
			"quantity":     quantity,
		}), "quantity below 1 rejected locally")
		return m.snapshot, nil
	}

	if _, err := m.api.UpdateItemQuantity(ctx, lineItemID, quantity); err != nil {
		return m.snapshot, err
	}
	return m.reload(ctx)
}

// RemoveItem deletes a line item and reloads.
func (m *Manager) RemoveItem(ctx context.Context, lineItemID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.api.RemoveItem(ctx, lineItemID); err != nil {
		return m.snapshot, err
	}
	return m.reload(ctx)
}

// Clear empties the cart after an explicit confirmation. A declined
// prompt is a no-op: no request is sent and the snapshot is unchanged.
// There is no undo.
func (m *Manager) Clear(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.confirm.Confirm(ctx, "Remove all items from your cart? This cannot be undone.") {
		m.logger.Debug(ctx, "cart clear declined")
		return m.snapshot, nil
	}

	if err := m.api.ClearCart(ctx); err != nil {
		return m.snapshot, err
	}
	return m.reload(ctx)
}

func (m *Manager) reload(ctx context.Context) (Snapshot, error) {
	payload, err := m.api.GetCart(ctx)
	if err != nil {
		return m.snapshot, err
	}

	snapshot := snapshotFromPayload(payload)
	if !payload.Subtotal.Equal(snapshot.Subtotal()) || payload.TotalQuantity != snapshot.TotalQuantity() {
		m.logger.Warn(m.logger.WithFields(ctx, map[string]any{
			"server_subtotal":  payload.Subtotal.String(),
			"derived_subtotal": snapshot.Subtotal().String(),
			"server_quantity":  payload.TotalQuantity,
			"derived_quantity": snapshot.TotalQuantity(),
		}), "server cart aggregates disagree with derived values")
	}

	m.snapshot = snapshot
	return snapshot, nil
}
