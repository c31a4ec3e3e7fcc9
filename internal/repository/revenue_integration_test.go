//go:build testutil
// +build testutil

package repository

import (
	"context"
	"testing"
	"time"
)

func TestMonthlyStats(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	skill := seedSkill(t, db, "go")
	course := seedCourse(t, db, coach, skill, "intro", 10)
	pkg := seedPackage(t, db, "thirty", 30, 3000) // 100 per credit

	alice := seedUser(t, db, "alice", "USER")
	bob := seedUser(t, db, "bob", "USER")
	seedPurchase(t, db, alice, pkg, 30, 3000)
	seedPurchase(t, db, bob, pkg, 30, 3000)

	bookings := NewBookingRepo(db)
	if _, err := bookings.Book(ctx, alice, course); err != nil {
		t.Fatalf("book alice: %v", err)
	}
	if _, err := bookings.Book(ctx, bob, course); err != nil {
		t.Fatalf("book bob: %v", err)
	}
	// A cancelled booking earns nothing.
	if _, err := bookings.Cancel(ctx, bob, course); err != nil {
		t.Fatalf("cancel bob: %v", err)
	}

	month := time.Now().UTC().Month().String()
	revenue := NewRevenueRepo(db)
	stats, err := revenue.MonthlyStats(ctx, coach, month)
	if err != nil {
		t.Fatalf("monthly stats: %v", err)
	}
	if stats.Bookings != 1 || stats.Participants != 1 {
		t.Fatalf("want 1 booking / 1 participant, got %d/%d", stats.Bookings, stats.Participants)
	}
	if stats.Revenue != 100 {
		t.Fatalf("want revenue 100, got %v", stats.Revenue)
	}
}

func TestMonthlyStatsWithoutCourses(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	revenue := NewRevenueRepo(db)

	stats, err := revenue.MonthlyStats(ctx, coach, "january")
	if err != nil {
		t.Fatalf("monthly stats: %v", err)
	}
	if stats.Revenue != 0 || stats.Participants != 0 || stats.Bookings != 0 {
		t.Fatalf("want all-zero stats, got %+v", stats)
	}
}
