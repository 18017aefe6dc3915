package enums

import "fmt"

// CheckoutStep identifies the wizard's current state. EmptyCart and
// Succeeded are terminal; no transition leaves them.
type CheckoutStep string

const (
	CheckoutStepShipping   CheckoutStep = "SHIPPING"
	CheckoutStepPayment    CheckoutStep = "PAYMENT"
	CheckoutStepReview     CheckoutStep = "REVIEW"
	CheckoutStepSubmitting CheckoutStep = "SUBMITTING"
	CheckoutStepSucceeded  CheckoutStep = "SUCCEEDED"
	CheckoutStepEmptyCart  CheckoutStep = "EMPTY_CART"
)

var validCheckoutSteps = []CheckoutStep{
	CheckoutStepShipping,
	CheckoutStepPayment,
	CheckoutStepReview,
	CheckoutStepSubmitting,
	CheckoutStepSucceeded,
	CheckoutStepEmptyCart,
}

// String implements fmt.Stringer.
func (c CheckoutStep) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStep.
func (c CheckoutStep) IsValid() bool {
	for _, candidate := range validCheckoutSteps {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the step admits no further transitions.
func (c CheckoutStep) IsTerminal() bool {
	return c == CheckoutStepSucceeded || c == CheckoutStepEmptyCart
}

// ParseCheckoutStep converts raw input into a CheckoutStep.
func ParseCheckoutStep(value string) (CheckoutStep, error) {
	for _, candidate := range validCheckoutSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}
