package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

func validShipping() cartapi.ShippingInfo {
	return cartapi.ShippingInfo{
		Address:     "1200 Industrial Pkwy",
		City:        "Sacramento",
		State:       "CA",
		PostalCode:  "95814",
		PhoneNumber: "0916555012",
	}
}

func TestValidateShippingAcceptsCompleteForm(t *testing.T) {
	t.Parallel()

	fields := ValidateShipping(validShipping())
	assert.False(t, fields.HasErrors(), "unexpected field errors: %v", fields)
}

func TestValidateShippingFieldRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*cartapi.ShippingInfo)
		field   string
		message string
	}{
		{
			name:    "blank address",
			mutate:  func(s *cartapi.ShippingInfo) { s.Address = "" },
			field:   "address",
			message: "is required",
		},
		{
			name:    "city with digits",
			mutate:  func(s *cartapi.ShippingInfo) { s.City = "Sacramento 2" },
			field:   "city",
			message: "must not contain digits",
		},
		{
			name:    "state with digits",
			mutate:  func(s *cartapi.ShippingInfo) { s.State = "CA1" },
			field:   "state",
			message: "must not contain digits",
		},
		{
			name:    "short postal code",
			mutate:  func(s *cartapi.ShippingInfo) { s.PostalCode = "1234" },
			field:   "postalCode",
			message: "must be exactly 5 digits",
		},
		{
			name:    "postal code with letters",
			mutate:  func(s *cartapi.ShippingInfo) { s.PostalCode = "9581a" },
			field:   "postalCode",
			message: "must be exactly 5 digits",
		},
		{
			name:    "phone not starting with zero",
			mutate:  func(s *cartapi.ShippingInfo) { s.PhoneNumber = "9165550123" },
			field:   "phoneNumber",
			message: "must be exactly 10 digits starting with 0",
		},
		{
			name:    "phone too short",
			mutate:  func(s *cartapi.ShippingInfo) { s.PhoneNumber = "091655501" },
			field:   "phoneNumber",
			message: "must be exactly 10 digits starting with 0",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := validShipping()
			tc.mutate(&info)
			fields := ValidateShipping(info)
			assert.Equal(t, tc.message, fields[tc.field])
			assert.Len(t, fields, 1, "expected only %s to fail: %v", tc.field, fields)
		})
	}
}

func TestValidateShippingReportsEveryViolation(t *testing.T) {
	t.Parallel()

	fields := ValidateShipping(cartapi.ShippingInfo{
		City:        "Oak 9",
		State:       "CA",
		PostalCode:  "abcde",
		PhoneNumber: "12",
	})

	assert.Len(t, fields, 4)
	assert.Contains(t, fields, "address")
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "postalCode")
	assert.Contains(t, fields, "phoneNumber")
}

func validCardPayment() cartapi.PaymentInfo {
	return cartapi.PaymentInfo{
		Method:         enums.PaymentMethodCreditCard,
		CardNumber:     "4111 1111 1111 1",
		ExpirationDate: "09/27",
		CVV:            "123",
		CardHolderName: "Dana Velasquez",
	}
}

func TestValidatePaymentCreditCard(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidatePayment(validCardPayment()).HasErrors())

	cases := []struct {
		name    string
		mutate  func(*cartapi.PaymentInfo)
		field   string
		message string
	}{
		{
			name:    "card number with twelve digits",
			mutate:  func(p *cartapi.PaymentInfo) { p.CardNumber = "4111 1111 1111" },
			field:   "cardNumber",
			message: "must be exactly 13 digits",
		},
		{
			name:    "card number with letters",
			mutate:  func(p *cartapi.PaymentInfo) { p.CardNumber = "4111 1111 111a 1" },
			field:   "cardNumber",
			message: "must be exactly 13 digits",
		},
		{
			name:    "expiry month out of range",
			mutate:  func(p *cartapi.PaymentInfo) { p.ExpirationDate = "13/27" },
			field:   "expirationDate",
			message: "must be MM/YY with month 01-12",
		},
		{
			name:    "expiry missing slash",
			mutate:  func(p *cartapi.PaymentInfo) { p.ExpirationDate = "0927" },
			field:   "expirationDate",
			message: "must be MM/YY with month 01-12",
		},
		{
			name:    "cvv too long",
			mutate:  func(p *cartapi.PaymentInfo) { p.CVV = "1234" },
			field:   "cvv",
			message: "must be exactly 3 digits",
		},
		{
			name:    "holder name with digits",
			mutate:  func(p *cartapi.PaymentInfo) { p.CardHolderName = "Dana V3lasquez" },
			field:   "cardHolderName",
			message: "must not contain digits",
		},
		{
			name:    "holder name blank",
			mutate:  func(p *cartapi.PaymentInfo) { p.CardHolderName = "" },
			field:   "cardHolderName",
			message: "is required",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := validCardPayment()
			tc.mutate(&info)
			fields := ValidatePayment(info)
			assert.Equal(t, tc.message, fields[tc.field])
		})
	}
}

func TestValidatePaymentSpacedCardNumberPassesThirteenDigitCheck(t *testing.T) {
	t.Parallel()

	info := validCardPayment()
	info.CardNumber = "4111 1111 1111 1"
	fields := ValidatePayment(info)
	assert.NotContains(t, fields, "cardNumber")
}

func TestValidatePaymentPurchaseOrder(t *testing.T) {
	t.Parallel()

	fields := ValidatePayment(cartapi.PaymentInfo{
		Method:              enums.PaymentMethodPurchaseOrder,
		PurchaseOrderNumber: "PO-88412",
	})
	assert.False(t, fields.HasErrors())

	fields = ValidatePayment(cartapi.PaymentInfo{Method: enums.PaymentMethodPurchaseOrder})
	assert.Equal(t, "is required", fields["purchaseOrderNumber"])
}

func TestValidatePaymentNetThirtyNeedsNothing(t *testing.T) {
	t.Parallel()

	fields := ValidatePayment(cartapi.PaymentInfo{Method: enums.PaymentMethodNet30})
	assert.False(t, fields.HasErrors())
}

func TestValidatePaymentRejectsUnknownMethod(t *testing.T) {
	t.Parallel()

	fields := ValidatePayment(cartapi.PaymentInfo{Method: enums.PaymentMethod("BARTER")})
	assert.Equal(t, "is invalid", fields["method"])
}

func TestCollectFieldErrorsPanicsOnNonFieldError(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a non-field validation error")
		}
	}()
	collectFieldErrors(errors.New("broken rule struct"))
}

func TestValidatePaymentIgnoresOtherMethodsFields(t *testing.T) {
	t.Parallel()

	// A stale card entry must not block a NET_30 submission.
	fields := ValidatePayment(cartapi.PaymentInfo{
		Method:     enums.PaymentMethodNet30,
		CardNumber: "not a card",
	})
	assert.False(t, fields.HasErrors())
}
