package checkout

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

// FieldErrors maps a field's json name to its violation message. An
// empty map means the step may advance. Each field is reported
// independently so one violation never masks another.
type FieldErrors map[string]string

// HasErrors reports whether any field failed validation.
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

var (
	postalCodeRe  = regexp.MustCompile(`^\d{5}$`)
	phoneNumberRe = regexp.MustCompile(`^0\d{9}$`)
	cardExpiryRe  = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	digitsOnlyRe  = regexp.MustCompile(`^\d+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})

	mustRegister(v, "no_digits", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "0123456789")
	})
	mustRegister(v, "postal_code", func(fl validator.FieldLevel) bool {
		return postalCodeRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone_number", func(fl validator.FieldLevel) bool {
		return phoneNumberRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "card_number", func(fl validator.FieldLevel) bool {
		stripped := StripCardNumber(fl.Field().String())
		return len(stripped) == 13 && digitsOnlyRe.MatchString(stripped)
	})
	mustRegister(v, "card_expiry", func(fl validator.FieldLevel) bool {
		return cardExpiryRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "digits_only", func(fl validator.FieldLevel) bool {
		return digitsOnlyRe.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// creditCardFields carries the rules that apply only when the buyer
// settles by card. Card data is validated locally and never charged.
type creditCardFields struct {
	CardNumber     string `json:"cardNumber" validate:"required,card_number"`
	ExpirationDate string `json:"expirationDate" validate:"required,card_expiry"`
	CVV            string `json:"cvv" validate:"required,len=3,digits_only"`
	CardHolderName string `json:"cardHolderName" validate:"required,no_digits"`
}

type purchaseOrderFields struct {
	PurchaseOrderNumber string `json:"purchaseOrderNumber" validate:"required"`
}

// ValidateShipping evaluates the shipping step's rules. Rules are pure
// functions of the form state and never contact the network.
func ValidateShipping(info cartapi.ShippingInfo) FieldErrors {
	return collectFieldErrors(validate.Struct(info))
}

// ValidatePayment evaluates the rules for the selected payment method.
// NET_30 requires nothing beyond a valid method.
func ValidatePayment(info cartapi.PaymentInfo) FieldErrors {
	if !info.Method.IsValid() {
		return FieldErrors{"method": "is invalid"}
	}

	switch info.Method {
	case enums.PaymentMethodCreditCard:
		return collectFieldErrors(validate.Struct(creditCardFields{
			CardNumber:     info.CardNumber,
			ExpirationDate: info.ExpirationDate,
			CVV:            info.CVV,
			CardHolderName: info.CardHolderName,
		}))
	case enums.PaymentMethodPurchaseOrder:
		return collectFieldErrors(validate.Struct(purchaseOrderFields{
			PurchaseOrderNumber: info.PurchaseOrderNumber,
		}))
	default:
		return FieldErrors{}
	}
}

func collectFieldErrors(err error) FieldErrors {
	fields := FieldErrors{}
	if err == nil {
		return fields
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Only reachable when a rule struct itself is broken.
		panic(fmt.Sprintf("unexpected validation failure: %v", err))
	}
	for _, fieldErr := range errs {
		fields[fieldErr.Field()] = validationMessage(fieldErr)
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "no_digits":
		return "must not contain digits"
	case "postal_code":
		return "must be exactly 5 digits"
	case "phone_number":
		return "must be exactly 10 digits starting with 0"
	case "card_number":
		return "must be exactly 13 digits"
	case "card_expiry":
		return "must be MM/YY with month 01-12"
	case "len", "digits_only":
		return "must be exactly 3 digits"
	}
	return "is invalid"
}
