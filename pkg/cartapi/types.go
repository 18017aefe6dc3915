package cartapi

import (
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// CartLineItem mirrors a single cart entry as returned by the service.
// UnitPrice is the price snapshot taken when the item was added; it is
// not re-fetched from the live catalog.
type CartLineItem struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	SKU           string          `json:"sku"`
	Brand         string          `json:"brand"`
	SupplierName  string          `json:"supplierName"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
	StockQuantity int             `json:"stockQuantity"`
}

// CartPayload is the service's cart representation. Subtotal and
// TotalQuantity are the server's own aggregates; the cart manager
// recomputes them from the items rather than trusting them.
type CartPayload struct {
	CartItems     []CartLineItem  `json:"cartItems"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalQuantity int             `json:"totalQuantity"`
}

// ShippingInfo is the address block collected in the first checkout step.
// The validate tags carry the submission rules; the checkout wizard
// evaluates them and translates violations into field messages.
type ShippingInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address" validate:"required"`
	Apartment   string `json:"apartment,omitempty"`
	City        string `json:"city" validate:"no_digits"`
	State       string `json:"state" validate:"no_digits"`
	PostalCode  string `json:"postalCode" validate:"postal_code"`
	PhoneNumber string `json:"phoneNumber" validate:"phone_number"`
}

// PaymentInfo carries the selected settlement method plus the fields the
// method requires. Card data never leaves the client in logs and is
// validated locally only, never charged.
type PaymentInfo struct {
	Method              enums.PaymentMethod `json:"method"`
	CardNumber          string              `json:"cardNumber,omitempty"`
	ExpirationDate      string              `json:"expirationDate,omitempty"`
	CVV                 string              `json:"cvv,omitempty"`
	CardHolderName      string              `json:"cardHolderName,omitempty"`
	PurchaseOrderNumber string              `json:"purchaseOrderNumber,omitempty"`
}

// OrderRequest is the composite payload submitted when the buyer
// confirms the review step.
type OrderRequest struct {
	ShippingInfo   ShippingInfo         `json:"shippingInfo"`
	PaymentInfo    PaymentInfo          `json:"paymentInfo"`
	ShippingMethod enums.ShippingMethod `json:"shippingMethod"`
}

// OrderCreated is the service's acknowledgement of a submitted order.
type OrderCreated struct {
	OrderID string `json:"orderId"`
}

type quantityUpdate struct {
	Quantity int `json:"quantity"`
}

type errorBody struct {
	Message string `json:"message"`
}
