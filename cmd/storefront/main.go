package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/packfinderz-storefront/internal/cart"
	"github.com/angelmondragon/packfinderz-storefront/internal/checkout"
	"github.com/angelmondragon/packfinderz-storefront/pkg/auth"
	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
	"github.com/angelmondragon/packfinderz-storefront/pkg/config"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
	"github.com/angelmondragon/packfinderz-storefront/pkg/env"
	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
	"github.com/angelmondragon/packfinderz-storefront/pkg/metrics"
	"github.com/angelmondragon/packfinderz-storefront/pkg/money"
)

// Walks the cart and checkout flow against the configured cart/order
// service. Pair with cmd/stub-server for a local round trip.
func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	token := env.Get("STOREFRONT_SESSION_TOKEN", "")
	if token == "" {
		logg.Error(context.Background(), "STOREFRONT_SESSION_TOKEN is required", nil)
		os.Exit(1)
	}
	creds := auth.NewMemoryStore(token)

	client, err := cartapi.NewClient(cfg.CartAPI, creds, logg,
		cartapi.WithMetrics(metrics.NewClientMetrics(prometheus.DefaultRegisterer)))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart api client", err)
		os.Exit(1)
	}

	manager, err := cart.NewManager(client, terminalConfirmer(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, manager, client, logg); err != nil {
		if pkgerrors.RequiresLogin(err) {
			fmt.Println("Your session has expired. Please sign in again.")
			os.Exit(1)
		}
		logg.Error(ctx, "storefront flow failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, manager *cart.Manager, submitter checkout.OrderSubmitter, logg *logger.Logger) error {
	snapshot, err := manager.Load(ctx)
	if err != nil {
		return err
	}
	printCart(snapshot)

	wizard, err := checkout.NewWizard(snapshot, submitter, logg)
	if err != nil {
		return err
	}
	if wizard.Step() == enums.CheckoutStepEmptyCart {
		fmt.Println("Your cart is empty.")
		return nil
	}

	if fields, err := wizard.SubmitShipping(cartapi.ShippingInfo{
		FirstName:   "Dana",
		LastName:    "Velasquez",
		CompanyName: "Velasquez Distribution",
		Address:     "1200 Industrial Pkwy",
		City:        "Sacramento",
		State:       "CA",
		PostalCode:  "95814",
		PhoneNumber: "0916555012",
	}); err != nil {
		return err
	} else if fields.HasErrors() {
		return fmt.Errorf("shipping rejected: %v", fields)
	}

	if fields, err := wizard.SubmitPayment(cartapi.PaymentInfo{
		Method: enums.PaymentMethodNet30,
	}); err != nil {
		return err
	} else if fields.HasErrors() {
		return fmt.Errorf("payment rejected: %v", fields)
	}

	if err := wizard.SetShippingMethod(enums.ShippingMethodExpress); err != nil {
		return err
	}
	printQuote(wizard.Quote())

	orderID, err := wizard.PlaceOrder(ctx)
	if err != nil {
		if wizard.LastSubmissionError() != "" {
			fmt.Printf("Order was not placed: %s\n", wizard.LastSubmissionError())
		}
		return err
	}
	fmt.Printf("Order placed: %s\n", orderID)
	return nil
}

func printCart(snapshot cart.Snapshot) {
	fmt.Printf("Cart (%d items):\n", snapshot.TotalQuantity())
	for _, item := range snapshot.Items {
		fmt.Printf("  %-24s x%-3d %8s\n", item.ProductName, item.Quantity, money.Format(item.LineTotal()))
	}
	fmt.Printf("  Subtotal: %s\n", money.Format(snapshot.Subtotal()))
}

func printQuote(quote checkout.Quote) {
	fmt.Printf("Subtotal %s  Tax %s  Shipping %s  Total %s\n",
		money.Format(quote.Subtotal),
		money.Format(quote.Tax),
		money.Format(quote.Shipping),
		money.Format(quote.Total))
}

// terminalConfirmer asks on stdin before destructive cart operations.
func terminalConfirmer() cart.ConfirmerFunc {
	reader := bufio.NewReader(os.Stdin)
	return func(ctx context.Context, prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "y")
	}
}
