package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-storefront/internal/cart"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
	"github.com/angelmondragon/packfinderz-storefront/pkg/money"
)

var (
	taxRate          = money.MustParse("0.08")
	expressSurcharge = money.MustParse("25.00")
)

// Quote is the priced view of the cart for the selected shipping
// method. Components are rounded independently at two decimal places;
// tax is computed on the unrounded subtotal so rounding never
// compounds. The total is the exact sum of the rounded components.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// PriceQuote prices a cart snapshot. It is a pure function, recomputed
// on every render and never cached.
func PriceQuote(snapshot cart.Snapshot, method enums.ShippingMethod) Quote {
	subtotal := snapshot.Subtotal()
	tax := subtotal.Mul(taxRate)

	shipping := money.Zero
	if method == enums.ShippingMethodExpress {
		shipping = expressSurcharge
	}

	quote := Quote{
		Subtotal: money.Round2(subtotal),
		Tax:      money.Round2(tax),
		Shipping: money.Round2(shipping),
	}
	quote.Total = quote.Subtotal.Add(quote.Tax).Add(quote.Shipping)
	return quote
}
