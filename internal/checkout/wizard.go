package checkout

import (
	"context"
	"fmt"

	"github.com/angelmondragon/packfinderz-storefront/internal/cart"
	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
)

// OrderSubmitter is the slice of the remote cart API the wizard needs.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req cartapi.OrderRequest, idempotencyKey string) (*cartapi.OrderCreated, error)
}

// Wizard drives the three-step checkout flow over a cart snapshot taken
// at entry. Steps advance only through SubmitShipping, SubmitPayment and
// PlaceOrder; Back walks the same path in reverse and entered data
// survives the round trip. Terminal steps admit no further transitions.
type Wizard struct {
	snapshot  cart.Snapshot
	submitter OrderSubmitter
	logger    *logger.Logger

	step           enums.CheckoutStep
	shipping       cartapi.ShippingInfo
	payment        cartapi.PaymentInfo
	shippingMethod enums.ShippingMethod

	idempotencyKey string
	orderID        string
	lastSubmitErr  string
}

// NewWizard starts a checkout session over the given snapshot. An empty
// cart terminates immediately; otherwise the wizard opens on shipping.
func NewWizard(snapshot cart.Snapshot, submitter OrderSubmitter, logg *logger.Logger) (*Wizard, error) {
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	w := &Wizard{
		snapshot:       snapshot,
		submitter:      submitter,
		logger:         logg,
		step:           enums.CheckoutStepShipping,
		shippingMethod: enums.ShippingMethodStandard,
	}
	if snapshot.IsEmpty() {
		w.step = enums.CheckoutStepEmptyCart
	}
	return w, nil
}

// Step returns the wizard's current state.
func (w *Wizard) Step() enums.CheckoutStep {
	return w.step
}

// Snapshot returns the cart view the session was opened with.
func (w *Wizard) Snapshot() cart.Snapshot {
	return w.snapshot
}

// Shipping returns the shipping form state, including values entered
// before a Back navigation.
func (w *Wizard) Shipping() cartapi.ShippingInfo {
	return w.shipping
}

// Payment returns the payment form state.
func (w *Wizard) Payment() cartapi.PaymentInfo {
	return w.payment
}

// ShippingMethod returns the currently selected delivery option.
func (w *Wizard) ShippingMethod() enums.ShippingMethod {
	return w.shippingMethod
}

// OrderID returns the created order's identifier after a successful
// submission, empty otherwise.
func (w *Wizard) OrderID() string {
	return w.orderID
}

// LastSubmissionError returns the message from the most recent failed
// submission, empty when the last attempt succeeded or none was made.
func (w *Wizard) LastSubmissionError() string {
	return w.lastSubmitErr
}

// SubmitShipping validates the shipping form and, when clean, advances
// to payment. Field errors keep the wizard on shipping; the entered
// values are retained either way.
func (w *Wizard) SubmitShipping(info cartapi.ShippingInfo) (FieldErrors, error) {
	if w.step != enums.CheckoutStepShipping {
		return nil, w.stepConflict("submit shipping")
	}

	w.shipping = info
	fields := ValidateShipping(info)
	if fields.HasErrors() {
		return fields, nil
	}
	w.step = enums.CheckoutStepPayment
	return fields, nil
}

// SubmitPayment validates the payment form for its selected method and,
// when clean, advances to review.
func (w *Wizard) SubmitPayment(info cartapi.PaymentInfo) (FieldErrors, error) {
	if w.step != enums.CheckoutStepPayment {
		return nil, w.stepConflict("submit payment")
	}

	w.payment = info
	fields := ValidatePayment(info)
	if fields.HasErrors() {
		return fields, nil
	}
	// One key per review entry: a failed submission retried from review
	// carries the same key so the service can dedupe it, while revisiting
	// payment starts a fresh attempt.
	w.idempotencyKey = cartapi.NewIdempotencyKey()
	w.step = enums.CheckoutStepReview
	return fields, nil
}

// SetShippingMethod records the delivery option priced on review.
func (w *Wizard) SetShippingMethod(method enums.ShippingMethod) error {
	if w.step.IsTerminal() || w.step == enums.CheckoutStepSubmitting {
		return w.stepConflict("set shipping method")
	}
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid shipping method %q", method))
	}
	w.shippingMethod = method
	return nil
}

// Back returns to the previous form step. Entered data is retained.
func (w *Wizard) Back() error {
	switch w.step {
	case enums.CheckoutStepPayment:
		w.step = enums.CheckoutStepShipping
	case enums.CheckoutStepReview:
		w.step = enums.CheckoutStepPayment
	default:
		return w.stepConflict("back")
	}
	return nil
}

// Quote prices the session's snapshot for the selected shipping method.
func (w *Wizard) Quote() Quote {
	return PriceQuote(w.snapshot, w.shippingMethod)
}

// PlaceOrder submits the assembled order from the review step. Success
// terminates the session with the created order's ID. Failure returns
// the wizard to review with the entered data intact and the service's
// message available for display; the buyer may correct and resubmit.
func (w *Wizard) PlaceOrder(ctx context.Context) (string, error) {
	if w.step != enums.CheckoutStepReview {
		return "", w.stepConflict("place order")
	}

	w.step = enums.CheckoutStepSubmitting
	w.lastSubmitErr = ""

	created, err := w.submitter.SubmitOrder(ctx, cartapi.OrderRequest{
		ShippingInfo:   w.shipping,
		PaymentInfo:    w.payment,
		ShippingMethod: w.shippingMethod,
	}, w.idempotencyKey)
	if err != nil {
		w.step = enums.CheckoutStepReview
		w.lastSubmitErr = pkgerrors.As(err).UserMessage()
		w.logger.Warn(w.logger.WithOperation(ctx, "place_order"), "order submission failed: "+err.Error())
		return "", err
	}

	w.step = enums.CheckoutStepSucceeded
	w.orderID = created.OrderID
	w.logger.Info(w.logger.WithFields(ctx, map[string]any{
		"order_id": created.OrderID,
	}), "order placed")
	return created.OrderID, nil
}

func (w *Wizard) stepConflict(action string) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict,
		fmt.Sprintf("cannot %s from step %s", action, w.step))
}
