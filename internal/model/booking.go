package model

import "time"

// Booking status values.  A booking starts ACTIVE and can move to
// CANCELLED exactly once; there is no way back.  Rows are never deleted
// so booking history stays available for revenue accounting.
const (
	BookingActive    = "ACTIVE"
	BookingCancelled = "CANCELLED"
)

// CourseBooking records a user's registration for a course.  The pair
// (UserID, CourseID) is unique: a user holds at most one booking row per
// course regardless of status.  CancelledAt is set together with the
// CANCELLED status.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – booking user.
//  CourseID    – booked course.
//  Status      – ACTIVE or CANCELLED.
//  CancelledAt – cancellation time, nil while active.
//  CreatedAt   – timestamp of creation.
type CourseBooking struct {
	ID          uint64     // course_bookings.id
	UserID      uint64     // course_bookings.user_id
	CourseID    uint64     // course_bookings.course_id
	Status      string     // course_bookings.status
	CancelledAt *time.Time // course_bookings.cancelled_at (nullable)
	CreatedAt   time.Time  // course_bookings.created_at
}
