package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/coachup/coaching-api/internal/model"
)

// CreditRepo covers the credit package catalog, the append-only purchase
// ledger, and the derived credit balance.  No stored balance exists
// anywhere: the remaining credits are always recomputed from purchase and
// booking rows, so the ledger cannot drift from a cached counter.
type CreditRepo struct{ DB *sql.DB }

func NewCreditRepo(db *sql.DB) *CreditRepo { return &CreditRepo{DB: db} }

// ListPackages returns the whole catalog ordered by id.
func (r *CreditRepo) ListPackages(ctx context.Context) ([]model.CreditPackage, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, credit_amount, price, created_at FROM credit_packages ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	pkgs := make([]model.CreditPackage, 0)
	for rows.Next() {
		var p model.CreditPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.CreditAmount, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, rows.Err()
}

// CreatePackage inserts a catalog entry; duplicate names map to
// ErrNameExists via the unique key on credit_packages.name.
func (r *CreditRepo) CreatePackage(ctx context.Context, name string, creditAmount, price uint32) (model.CreditPackage, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO credit_packages (name, credit_amount, price) VALUES (?,?,?)",
		name, creditAmount, price)
	if err != nil {
		if isDuplicateKey(err) {
			return model.CreditPackage{}, ErrNameExists
		}
		return model.CreditPackage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CreditPackage{}, err
	}
	var p model.CreditPackage
	err = r.DB.QueryRowContext(ctx,
		"SELECT id, name, credit_amount, price, created_at FROM credit_packages WHERE id=?", id).
		Scan(&p.ID, &p.Name, &p.CreditAmount, &p.Price, &p.CreatedAt)
	return p, err
}

// DeletePackage hard-deletes a catalog entry.  Purchases keep their copied
// credits and price, so history survives the removal.
func (r *CreditRepo) DeletePackage(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM credit_packages WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPackageNotFound
	}
	return nil
}

// Purchase records one purchase of a package for a user.  The package's
// credit_amount and price are copied into the purchase row at this moment
// and never re-derived (the ledger is append-only).
func (r *CreditRepo) Purchase(ctx context.Context, userID, packageID uint64) (model.CreditPurchase, error) {
	var amount, price uint32
	err := r.DB.QueryRowContext(ctx,
		"SELECT credit_amount, price FROM credit_packages WHERE id=?", packageID).
		Scan(&amount, &price)
	if err == sql.ErrNoRows {
		return model.CreditPurchase{}, ErrPackageNotFound
	}
	if err != nil {
		return model.CreditPurchase{}, err
	}

	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO credit_purchases (user_id, credit_package_id, purchased_credits, price_paid, purchased_at)
		 VALUES (?,?,?,?,?)`,
		userID, packageID, amount, price, now)
	if err != nil {
		return model.CreditPurchase{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CreditPurchase{}, err
	}
	var p model.CreditPurchase
	err = r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, credit_package_id, purchased_credits, price_paid, purchased_at, created_at
		 FROM credit_purchases WHERE id=?`, id).
		Scan(&p.ID, &p.UserID, &p.CreditPackageID, &p.PurchasedCredits, &p.PricePaid, &p.PurchasedAt, &p.CreatedAt)
	return p, err
}

// PurchaseDetail is a purchase row joined with the package name for
// display to the purchasing user.
type PurchaseDetail struct {
	Name             string    `json:"name"`
	PurchasedCredits uint32    `json:"purchased_credits"`
	PricePaid        uint32    `json:"price_paid"`
	PurchasedAt      time.Time `json:"purchase_at"`
}

// ListPurchasesByUser returns the user's purchase history, newest first.
// Purchases of since-deleted packages still list; their name comes back
// empty because only the package row is gone.
func (r *CreditRepo) ListPurchasesByUser(ctx context.Context, userID uint64) ([]PurchaseDetail, error) {
	const q = `SELECT COALESCE(cp.name, ''), p.purchased_credits, p.price_paid, p.purchased_at
	           FROM credit_purchases p
	           LEFT JOIN credit_packages cp ON cp.id = p.credit_package_id
	           WHERE p.user_id = ?
	           ORDER BY p.purchased_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]PurchaseDetail, 0)
	for rows.Next() {
		var d PurchaseDetail
		if err := rows.Scan(&d.Name, &d.PurchasedCredits, &d.PricePaid, &d.PurchasedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// TotalPurchased sums purchased_credits over every purchase of the user.
func (r *CreditRepo) TotalPurchased(ctx context.Context, userID uint64) (uint64, error) {
	var total uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(purchased_credits),0) FROM credit_purchases WHERE user_id=?", userID).
		Scan(&total)
	return total, err
}

// RemainingCredits derives the user's bookable balance: total purchased
// credits minus currently active bookings.  Pure read, no side effects.
func (r *CreditRepo) RemainingCredits(ctx context.Context, userID uint64) (total, used uint64, err error) {
	if total, err = r.TotalPurchased(ctx, userID); err != nil {
		return 0, 0, err
	}
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM course_bookings WHERE user_id=? AND status='ACTIVE'", userID).
		Scan(&used)
	if err != nil {
		return 0, 0, err
	}
	return total, used, nil
}
