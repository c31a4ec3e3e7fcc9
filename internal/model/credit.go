package model

import "time"

// CreditPackage is an immutable catalog entry users buy credits from.
// Name is unique across the catalog.
type CreditPackage struct {
	ID           uint64    // credit_packages.id
	Name         string    // credit_packages.name
	CreditAmount uint32    // credit_packages.credit_amount
	Price        uint32    // credit_packages.price
	CreatedAt    time.Time // credit_packages.created_at
}

// CreditPurchase is an append-only ledger entry recording one package
// purchase.  PurchasedCredits and PricePaid are copied from the package
// at purchase time and never re-derived, so later catalog edits cannot
// change a user's balance history.
type CreditPurchase struct {
	ID               uint64    // credit_purchases.id
	UserID           uint64    // credit_purchases.user_id
	CreditPackageID  uint64    // credit_purchases.credit_package_id
	PurchasedCredits uint32    // credit_purchases.purchased_credits
	PricePaid        uint32    // credit_purchases.price_paid
	PurchasedAt      time.Time // credit_purchases.purchased_at
	CreatedAt        time.Time // credit_purchases.created_at
}
