package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi/cartapitest"
	"github.com/angelmondragon/packfinderz-storefront/pkg/env"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
)

// Runs the in-memory cart/order fake as a standalone process so the
// storefront can be exercised locally without the real service.
func main() {
	logg := logger.New(logger.Options{ServiceName: "stub-server"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	token := env.Get("STOREFRONT_SESSION_TOKEN", "")
	if token == "" {
		token = cartapitest.MintToken(time.Now().Add(24 * time.Hour))
	}

	server := cartapitest.NewServer(token)
	server.Seed(
		cartapi.CartLineItem{
			ID:            "li-1",
			ProductID:     "prod-mylar-1g",
			ProductName:   "Mylar Bags 1g",
			SKU:           "MYL-1G-100",
			Brand:         "PackRight",
			SupplierName:  "PackRight Supply Co",
			UnitPrice:     decimal.RequireFromString("29.99"),
			Quantity:      2,
			StockQuantity: 240,
		},
		cartapi.CartLineItem{
			ID:            "li-2",
			ProductID:     "prod-jar-4oz",
			ProductName:   "Glass Jar 4oz",
			SKU:           "JAR-4OZ-24",
			Brand:         "ClearPack",
			SupplierName:  "West Coast Wholesale",
			UnitPrice:     decimal.RequireFromString("10.50"),
			Quantity:      1,
			StockQuantity: 96,
		},
	)

	addr := ":" + env.Get("PORT", "8089")
	ctx := logg.WithFields(context.Background(), map[string]any{
		"addr":  addr,
		"token": token,
	})
	logg.Info(ctx, "starting cart/order stub server")

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "stub server stopped unexpectedly", err)
		os.Exit(1)
	}
}
