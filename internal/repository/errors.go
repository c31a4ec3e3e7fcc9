// Package repository implements data access over MySQL and carries the
// credit/booking consistency rules.  The sentinel errors below form the
// domain failure taxonomy; handlers translate them into HTTP status codes
// (400/401/404/409) while any other error is treated as a storage failure
// and surfaces as 500.
package repository

import "errors"

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrCourseNotFound is returned when a referenced course does not exist.
var ErrCourseNotFound = errors.New("course not found")

// ErrCoachNotFound is returned when a coach profile does not exist.
var ErrCoachNotFound = errors.New("coach not found")

// ErrPackageNotFound is returned when a credit package does not exist.
var ErrPackageNotFound = errors.New("credit package not found")

// ErrBookingNotFound is returned when no active booking exists for a
// (user, course) pair on cancellation.
var ErrBookingNotFound = errors.New("booking not found")

// ErrAlreadyBooked is returned when a booking row, active or cancelled,
// already exists for the (user, course) pair.
var ErrAlreadyBooked = errors.New("already booked")

// ErrInsufficientCredits is returned when a user's active bookings have
// consumed all purchased credits.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrCourseFull is returned when a course has reached max_participants.
var ErrCourseFull = errors.New("course full")

// ErrAlreadyCoach is returned when promoting a user who is already a coach.
var ErrAlreadyCoach = errors.New("user is already a coach")

// ErrNameExists is returned on unique-name collisions (packages, skills).
var ErrNameExists = errors.New("name already exists")

// ErrEmailExists is returned when registering an email that is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidMonth is returned when a month name cannot be resolved.
var ErrInvalidMonth = errors.New("invalid month")

// ErrUpdateFailed is returned when an update that should have matched
// exactly one row reports zero rows affected, which indicates a concurrent
// writer got there first.
var ErrUpdateFailed = errors.New("update affected no rows")
