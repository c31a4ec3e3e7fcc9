//go:build testutil
// +build testutil

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/coachup/coaching-api/internal/testutil/testdb"
)

// startDB boots a MySQL container with the migrated schema.  Tests share
// one container per test function to keep runtime reasonable.
func startDB(t *testing.T) *sql.DB {
	t.Helper()
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatalf("start test db: %v", err)
	}
	t.Cleanup(h.Close)
	return h.DB
}

func seedUser(t *testing.T, db *sql.DB, name, role string) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, name+"@example.com", "x", role)
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func seedSkill(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO skills (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func seedCourse(t *testing.T, db *sql.DB, ownerID, skillID uint64, name string, capacity uint32) uint64 {
	t.Helper()
	start := time.Now().UTC().Add(24 * time.Hour)
	res, err := db.Exec(
		`INSERT INTO courses (user_id, skill_id, name, description, start_at, end_at, max_participants, meeting_url)
		 VALUES (?,?,?,?,?,?,?,?)`,
		ownerID, skillID, name, "d", start, start.Add(time.Hour), capacity, "https://meet.example.com/x")
	if err != nil {
		t.Fatalf("seed course %s: %v", name, err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func seedPackage(t *testing.T, db *sql.DB, name string, credits, price uint32) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO credit_packages (name, credit_amount, price) VALUES (?,?,?)",
		name, credits, price)
	if err != nil {
		t.Fatalf("seed package: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func seedPurchase(t *testing.T, db *sql.DB, userID, packageID uint64, credits, price uint32) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO credit_purchases (user_id, credit_package_id, purchased_credits, price_paid, purchased_at)
		 VALUES (?,?,?,?,?)`,
		userID, packageID, credits, price, time.Now().UTC())
	if err != nil {
		t.Fatalf("seed purchase: %v", err)
	}
}

// seedCourses creates n distinct courses owned by the same coach.
func seedCourses(t *testing.T, db *sql.DB, ownerID, skillID uint64, n int, capacity uint32) []uint64 {
	t.Helper()
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, seedCourse(t, db, ownerID, skillID, fmt.Sprintf("course-%d", i), capacity))
	}
	return ids
}
