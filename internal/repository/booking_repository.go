package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/coachup/coaching-api/internal/model"
)

// BookingRepo is the admission and cancellation engine for course
// bookings.  Both operations run their read-check-write sequence inside a
// single transaction with a row lock on the course, so capacity and credit
// checks cannot interleave with a concurrent insert.  The
// UNIQUE(user_id, course_id) constraint is the storage-level backstop for
// the one-booking-per-user-per-course rule.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Book admits or rejects a booking request for (userID, courseID).
//
// Check order is deliberate: existence of a prior booking row is the
// cheapest and most specific failure, so it runs before the credit and
// capacity checks.  A prior row blocks re-booking even when cancelled;
// the pair's booking history is a single row.
func (r *BookingRepo) Book(ctx context.Context, userID, courseID uint64) (*model.CourseBooking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the course row so concurrent admissions for the same course
	// serialize on its capacity check.
	var maxParticipants uint64
	err = tx.QueryRowContext(ctx,
		"SELECT max_participants FROM courses WHERE id=? FOR UPDATE", courseID).
		Scan(&maxParticipants)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	var existing uint64
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM course_bookings WHERE user_id=? AND course_id=?", userID, courseID).
		Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyBooked
	}

	var purchased uint64
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(purchased_credits),0) FROM credit_purchases WHERE user_id=?", userID).
		Scan(&purchased)
	if err != nil {
		return nil, err
	}
	var activeOfUser uint64
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM course_bookings WHERE user_id=? AND status='ACTIVE'", userID).
		Scan(&activeOfUser)
	if err != nil {
		return nil, err
	}
	if activeOfUser >= purchased {
		return nil, ErrInsufficientCredits
	}

	var activeOfCourse uint64
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM course_bookings WHERE course_id=? AND status='ACTIVE'", courseID).
		Scan(&activeOfCourse)
	if err != nil {
		return nil, err
	}
	if activeOfCourse >= maxParticipants {
		return nil, ErrCourseFull
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO course_bookings (user_id, course_id, status) VALUES (?,?, 'ACTIVE')",
		userID, courseID)
	if err != nil {
		if isDuplicateKey(err) {
			// constraint backstop: another worker inserted first
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var b model.CourseBooking
	var cancelledAt sql.NullTime
	err = tx.QueryRowContext(ctx,
		"SELECT id, user_id, course_id, status, cancelled_at, created_at FROM course_bookings WHERE id=?", id).
		Scan(&b.ID, &b.UserID, &b.CourseID, &b.Status, &cancelledAt, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &b, nil
}

// Cancel soft-cancels the user's active booking on a course.  The credit
// and the capacity slot are released implicitly because both counters are
// derived from active rows.  A second cancellation of the same booking
// finds no active row and fails with ErrBookingNotFound; losing the update
// race to a concurrent canceller surfaces as ErrUpdateFailed.  Returns the
// id of the cancelled booking.
func (r *BookingRepo) Cancel(ctx context.Context, userID, courseID uint64) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var id uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM course_bookings WHERE user_id=? AND course_id=? AND status='ACTIVE'",
		userID, courseID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrBookingNotFound
	}
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE course_bookings SET status='CANCELLED', cancelled_at=? WHERE id=? AND status='ACTIVE'",
		time.Now().UTC(), id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrUpdateFailed
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return id, nil
}

// ActiveCountForCourse counts the active bookings of one course.
func (r *BookingRepo) ActiveCountForCourse(ctx context.Context, courseID uint64) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM course_bookings WHERE course_id=? AND status='ACTIVE'", courseID).
		Scan(&n)
	return n, err
}

// BookedCourse is a booking row joined with course and coach details for
// the "my courses" listing.
type BookedCourse struct {
	CourseID   uint64    `json:"course_id"`
	Name       string    `json:"name"`
	CoachName  string    `json:"coach_name"`
	Status     string    `json:"status"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	MeetingURL string    `json:"meeting_url"`
}

// ListForUser returns every booking of the user (active and cancelled)
// with course and coach names, newest first.
func (r *BookingRepo) ListForUser(ctx context.Context, userID uint64) ([]BookedCourse, error) {
	const q = `SELECT b.course_id, c.name, u.name, b.status, c.start_at, c.end_at, c.meeting_url
	           FROM course_bookings b
	           JOIN courses c ON c.id = b.course_id
	           JOIN users u ON u.id = c.user_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]BookedCourse, 0)
	for rows.Next() {
		var bc BookedCourse
		if err := rows.Scan(&bc.CourseID, &bc.Name, &bc.CoachName, &bc.Status, &bc.StartAt, &bc.EndAt, &bc.MeetingURL); err != nil {
			return nil, err
		}
		items = append(items, bc)
	}
	return items, rows.Err()
}
