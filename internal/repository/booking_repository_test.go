//go:build testutil
// +build testutil

package repository

import (
	"context"
	"testing"
	"time"
)

func TestBookWithoutCredits(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	skill := seedSkill(t, db, "go")
	course := seedCourse(t, db, coach, skill, "intro", 10)
	user := seedUser(t, db, "alice", "USER")

	bookings := NewBookingRepo(db)
	if _, err := bookings.Book(ctx, user, course); err != ErrInsufficientCredits {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestCreditsAreConsumedByActiveBookings(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	skill := seedSkill(t, db, "go")
	courses := seedCourses(t, db, coach, skill, 11, 10)
	user := seedUser(t, db, "alice", "USER")
	pkg := seedPackage(t, db, "ten", 10, 1000)
	seedPurchase(t, db, user, pkg, 10, 1000)

	bookings := NewBookingRepo(db)
	for i := 0; i < 10; i++ {
		if _, err := bookings.Book(ctx, user, courses[i]); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}
	if _, err := bookings.Book(ctx, user, courses[10]); err != ErrInsufficientCredits {
		t.Fatalf("11th booking: expected ErrInsufficientCredits, got %v", err)
	}

	credits := NewCreditRepo(db)
	total, used, err := credits.RemainingCredits(ctx, user)
	if err != nil {
		t.Fatalf("remaining credits: %v", err)
	}
	if total != 10 || used != 10 {
		t.Fatalf("want total=10 used=10, got total=%d used=%d", total, used)
	}
}

func TestCourseCapacity(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	skill := seedSkill(t, db, "go")
	course := seedCourse(t, db, coach, skill, "solo", 1)
	pkg := seedPackage(t, db, "ten", 10, 1000)

	alice := seedUser(t, db, "alice", "USER")
	bob := seedUser(t, db, "bob", "USER")
	seedPurchase(t, db, alice, pkg, 10, 1000)
	seedPurchase(t, db, bob, pkg, 10, 1000)

	bookings := NewBookingRepo(db)
	if _, err := bookings.Book(ctx, alice, course); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := bookings.Book(ctx, bob, course); err != ErrCourseFull {
		t.Fatalf("expected ErrCourseFull, got %v", err)
	}
}

func TestCancelReleasesCreditAndSeat(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	skill := seedSkill(t, db, "go")
	course := seedCourse(t, db, coach, skill, "solo", 1)
	pkg := seedPackage(t, db, "one", 1, 100)

	alice := seedUser(t, db, "alice", "USER")
	bob := seedUser(t, db, "bob", "USER")
	seedPurchase(t, db, alice, pkg, 1, 100)
	seedPurchase(t, db, bob, pkg, 1, 100)

	bookings := NewBookingRepo(db)
	credits := NewCreditRepo(db)

	if _, err := bookings.Book(ctx, alice, course); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := bookings.Cancel(ctx, alice, course); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancellation restores the derived balance.
	total, used, err := credits.RemainingCredits(ctx, alice)
	if err != nil {
		t.Fatalf("remaining credits: %v", err)
	}
	if total-used != 1 {
		t.Fatalf("want 1 credit remaining, got %d", total-used)
	}

	// The seat is free again for a different user.
	if _, err := bookings.Book(ctx, bob, course); err != nil {
		t.Fatalf("bob booking after cancel: %v", err)
	}

	// A second cancellation finds no active row.
	if _, err := bookings.Cancel(ctx, alice, course); err != ErrBookingNotFound {
		t.Fatalf("double cancel: expected ErrBookingNotFound, got %v", err)
	}
}

func TestRebookingAfterCancelIsBlocked(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	skill := seedSkill(t, db, "go")
	course := seedCourse(t, db, coach, skill, "solo", 5)
	pkg := seedPackage(t, db, "ten", 10, 1000)
	alice := seedUser(t, db, "alice", "USER")
	seedPurchase(t, db, alice, pkg, 10, 1000)

	bookings := NewBookingRepo(db)
	if _, err := bookings.Book(ctx, alice, course); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := bookings.Book(ctx, alice, course); err != ErrAlreadyBooked {
		t.Fatalf("double book: expected ErrAlreadyBooked, got %v", err)
	}
	if _, err := bookings.Cancel(ctx, alice, course); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// The cancelled row still blocks a new booking on the same course.
	if _, err := bookings.Book(ctx, alice, course); err != ErrAlreadyBooked {
		t.Fatalf("rebook after cancel: expected ErrAlreadyBooked, got %v", err)
	}
}

// Two concurrent cancels of the same booking: the loser finds the row
// ACTIVE in its snapshot read but matches zero rows on the guarded
// UPDATE once the winner commits, and must report ErrUpdateFailed
// instead of a silent no-op.
func TestCancelLosesRaceToConcurrentCancel(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	coach := seedUser(t, db, "coach", "COACH")
	skill := seedSkill(t, db, "go")
	course := seedCourse(t, db, coach, skill, "intro", 10)
	pkg := seedPackage(t, db, "ten", 10, 1000)
	alice := seedUser(t, db, "alice", "USER")
	seedPurchase(t, db, alice, pkg, 10, 1000)

	bookings := NewBookingRepo(db)
	if _, err := bookings.Book(ctx, alice, course); err != nil {
		t.Fatalf("book: %v", err)
	}

	// First canceller: flip the row but hold the commit so the row lock
	// stays ours while the second cancel runs.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE course_bookings SET status='CANCELLED', cancelled_at=NOW() WHERE user_id=? AND course_id=? AND status='ACTIVE'",
		alice, course); err != nil {
		t.Fatalf("competing update: %v", err)
	}

	// Second canceller blocks on the locked row inside its UPDATE.
	done := make(chan error, 1)
	go func() {
		_, err := bookings.Cancel(ctx, alice, course)
		done <- err
	}()

	time.Sleep(300 * time.Millisecond)
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := <-done; err != ErrUpdateFailed {
		t.Fatalf("racing cancel: expected ErrUpdateFailed, got %v", err)
	}
}

func TestBookMissingCourse(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", "USER")
	bookings := NewBookingRepo(db)
	if _, err := bookings.Book(ctx, alice, 9999); err != ErrCourseNotFound {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
