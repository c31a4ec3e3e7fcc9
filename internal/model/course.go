package model

import "time"

// Course represents a bookable course session owned by a coach.  The
// owning user_id must belong to a user with role COACH; only that coach
// may modify the course.  MeetingURL must be an https URL.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – owning coach's user id.
//  SkillID         – skill taught by the course.
//  Name            – course title.
//  Description     – free-form description.
//  StartAt         – session start (UTC).
//  EndAt           – session end (UTC).
//  MaxParticipants – capacity: upper bound on simultaneous active bookings.
//  MeetingURL      – https meeting link.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Course struct {
	ID              uint64    // courses.id
	UserID          uint64    // courses.user_id
	SkillID         uint64    // courses.skill_id
	Name            string    // courses.name
	Description     string    // courses.description
	StartAt         time.Time // courses.start_at
	EndAt           time.Time // courses.end_at
	MaxParticipants uint32    // courses.max_participants
	MeetingURL      string    // courses.meeting_url
	CreatedAt       time.Time // courses.created_at
	UpdatedAt       time.Time // courses.updated_at
}
