package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSnapshotAggregatesDeriveFromItems(t *testing.T) {
	t.Parallel()

	snapshot := Snapshot{Items: []LineItem{
		{ID: "li-1", UnitPrice: decimal.RequireFromString("29.99"), Quantity: 2},
		{ID: "li-2", UnitPrice: decimal.RequireFromString("10.50"), Quantity: 3},
	}}

	if got := snapshot.Subtotal().StringFixed(2); got != "91.48" {
		t.Fatalf("unexpected subtotal %s", got)
	}
	if got := snapshot.TotalQuantity(); got != 5 {
		t.Fatalf("unexpected total quantity %d", got)
	}
	if snapshot.IsEmpty() {
		t.Fatal("snapshot with items should not be empty")
	}
}

func TestLineTotalIsDerived(t *testing.T) {
	t.Parallel()

	item := LineItem{UnitPrice: decimal.RequireFromString("29.99"), Quantity: 2}
	if got := item.LineTotal().StringFixed(2); got != "59.98" {
		t.Fatalf("unexpected line total %s", got)
	}
}

func TestEmptySnapshot(t *testing.T) {
	t.Parallel()

	var snapshot Snapshot
	if !snapshot.IsEmpty() {
		t.Fatal("zero snapshot should be empty")
	}
	if !snapshot.Subtotal().IsZero() {
		t.Fatal("empty snapshot subtotal should be zero")
	}
	if snapshot.TotalQuantity() != 0 {
		t.Fatal("empty snapshot quantity should be zero")
	}
}

func TestSnapshotFind(t *testing.T) {
	t.Parallel()

	snapshot := Snapshot{Items: []LineItem{{ID: "li-1", Quantity: 1}}}
	if _, ok := snapshot.Find("li-1"); !ok {
		t.Fatal("expected to find li-1")
	}
	if _, ok := snapshot.Find("li-9"); ok {
		t.Fatal("did not expect to find li-9")
	}
}
