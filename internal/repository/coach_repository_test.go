//go:build testutil
// +build testutil

package repository

import (
	"context"
	"testing"
)

func TestPromote(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", "USER")
	coaches := NewCoachRepo(db)

	u, co, err := coaches.Promote(ctx, alice, 3, "gopher", nil)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if u.Role != "COACH" {
		t.Fatalf("want role COACH, got %s", u.Role)
	}
	if co.UserID != alice {
		t.Fatalf("coach row user id: want %d, got %d", alice, co.UserID)
	}

	if _, _, err := coaches.Promote(ctx, alice, 3, "gopher", nil); err != ErrAlreadyCoach {
		t.Fatalf("second promote: expected ErrAlreadyCoach, got %v", err)
	}
	if _, _, err := coaches.Promote(ctx, 9999, 1, "ghost", nil); err != ErrUserNotFound {
		t.Fatalf("missing user: expected ErrUserNotFound, got %v", err)
	}
}

func TestPromoteRollsBackRoleOnInsertFailure(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	// A coach row already exists for the user while the role is still
	// USER, so the insert inside Promote hits the unique constraint and
	// the whole transaction, including the role flip, must roll back.
	alice := seedUser(t, db, "alice", "USER")
	if _, err := db.Exec(
		"INSERT INTO coaches (user_id, experience_years, description) VALUES (?,?,?)",
		alice, 1, "stale"); err != nil {
		t.Fatalf("seed stale coach row: %v", err)
	}

	coaches := NewCoachRepo(db)
	if _, _, err := coaches.Promote(ctx, alice, 2, "fresh", nil); err != ErrAlreadyCoach {
		t.Fatalf("expected ErrAlreadyCoach, got %v", err)
	}

	var role string
	if err := db.QueryRow("SELECT role FROM users WHERE id=?", alice).Scan(&role); err != nil {
		t.Fatalf("read role: %v", err)
	}
	if role != "USER" {
		t.Fatalf("role flip must roll back, got %s", role)
	}
}

func TestUpdateProfileReplacesSkillLinks(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", "USER")
	coaches := NewCoachRepo(db)
	if _, _, err := coaches.Promote(ctx, alice, 3, "gopher", nil); err != nil {
		t.Fatalf("promote: %v", err)
	}

	s1 := seedSkill(t, db, "go")
	s2 := seedSkill(t, db, "sql")
	s3 := seedSkill(t, db, "k8s")

	if _, linked, err := coaches.UpdateProfile(ctx, alice, 4, "updated", "https://img.example.com/a.png", []uint64{s1, s2}); err != nil {
		t.Fatalf("update profile: %v", err)
	} else if len(linked) != 2 {
		t.Fatalf("want 2 linked skills, got %d", len(linked))
	}

	_, linked, err := coaches.UpdateProfile(ctx, alice, 4, "updated", "https://img.example.com/a.png", []uint64{s3})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if len(linked) != 1 || linked[0] != s3 {
		t.Fatalf("links must be replaced, got %v", linked)
	}
}
