//go:build testutil
// +build testutil

package repository

import (
	"context"
	"errors"
	"testing"
)

// Deleting a package must succeed even when purchases reference it, and
// the purchase ledger must keep its copied credits and price afterwards.
func TestDeletePackageKeepsPurchaseHistory(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()
	repo := NewCreditRepo(db)

	userID := seedUser(t, db, "buyer", "USER")
	pkgID := seedPackage(t, db, "starter", 10, 100)
	seedPurchase(t, db, userID, pkgID, 10, 100)

	if err := repo.DeletePackage(ctx, pkgID); err != nil {
		t.Fatalf("delete package with purchases: %v", err)
	}

	total, err := repo.TotalPurchased(ctx, userID)
	if err != nil {
		t.Fatalf("total purchased: %v", err)
	}
	if total != 10 {
		t.Fatalf("purchased credits = %d, want 10", total)
	}

	items, err := repo.ListPurchasesByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("purchase rows = %d, want 1", len(items))
	}
	if items[0].PurchasedCredits != 10 || items[0].PricePaid != 100 {
		t.Fatalf("purchase kept %d credits at %d, want 10 at 100", items[0].PurchasedCredits, items[0].PricePaid)
	}
	if items[0].Name != "" {
		t.Fatalf("deleted package name = %q, want empty", items[0].Name)
	}
}

func TestDeletePackageMissing(t *testing.T) {
	db := startDB(t)
	repo := NewCreditRepo(db)

	if err := repo.DeletePackage(context.Background(), 9999); !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("err = %v, want ErrPackageNotFound", err)
	}
}
