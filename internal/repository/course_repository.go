package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/coachup/coaching-api/internal/model"
)

// CourseRepo provides course catalog access and the coach-side course
// management operations.  Ownership is enforced here: a course is mutated
// only through queries scoped to its owning coach's user id.
type CourseRepo struct{ DB *sql.DB }

func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{DB: db} }

// CourseListing is a course row joined with coach and skill names for the
// public catalog.
type CourseListing struct {
	ID              uint64    `json:"id"`
	CoachName       string    `json:"coach_name"`
	SkillName       string    `json:"skill_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants uint32    `json:"max_participants"`
}

const courseListingQuery = `SELECT c.id, u.name, s.name, c.name, c.description,
	       c.start_at, c.end_at, c.max_participants
	FROM courses c
	JOIN users u ON u.id = c.user_id
	JOIN skills s ON s.id = c.skill_id`

func scanListings(rows *sql.Rows) ([]CourseListing, error) {
	defer rows.Close()
	items := make([]CourseListing, 0)
	for rows.Next() {
		var l CourseListing
		if err := rows.Scan(&l.ID, &l.CoachName, &l.SkillName, &l.Name, &l.Description,
			&l.StartAt, &l.EndAt, &l.MaxParticipants); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// List returns the public catalog of all courses.
func (r *CourseRepo) List(ctx context.Context) ([]CourseListing, error) {
	rows, err := r.DB.QueryContext(ctx, courseListingQuery+" ORDER BY c.start_at")
	if err != nil {
		return nil, err
	}
	return scanListings(rows)
}

// ListByOwner returns the public listing of one coach's courses.
func (r *CourseRepo) ListByOwner(ctx context.Context, ownerUserID uint64) ([]CourseListing, error) {
	rows, err := r.DB.QueryContext(ctx, courseListingQuery+" WHERE c.user_id = ? ORDER BY c.start_at", ownerUserID)
	if err != nil {
		return nil, err
	}
	return scanListings(rows)
}

// Create inserts a course owned by the given coach user.
func (r *CourseRepo) Create(ctx context.Context, course *model.Course) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO courses (user_id, skill_id, name, description, start_at, end_at, max_participants, meeting_url)
		 VALUES (?,?,?,?,?,?,?,?)`,
		course.UserID, course.SkillID, course.Name, course.Description,
		course.StartAt, course.EndAt, course.MaxParticipants, course.MeetingURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	course.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM courses WHERE id=?", course.ID).
		Scan(&course.CreatedAt, &course.UpdatedAt)
}

// Update replaces the mutable fields of a course.  The WHERE clause is
// scoped to the owner, so a coach cannot touch someone else's course; a
// missing or foreign course both surface as ErrCourseNotFound.
func (r *CourseRepo) Update(ctx context.Context, course *model.Course) error {
	var owner uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM courses WHERE id=?", course.ID).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrCourseNotFound
	}
	if err != nil {
		return err
	}
	if owner != course.UserID {
		return ErrForbidden
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE courses SET skill_id=?, name=?, description=?, start_at=?, end_at=?, max_participants=?, meeting_url=?
		 WHERE id=? AND user_id=?`,
		course.SkillID, course.Name, course.Description, course.StartAt, course.EndAt,
		course.MaxParticipants, course.MeetingURL, course.ID, course.UserID)
	if err != nil {
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	// RowsAffected is legitimately zero when nothing changed, so the row
	// is read back instead of checking the count.
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM courses WHERE id=?", course.ID).
		Scan(&course.CreatedAt, &course.UpdatedAt)
}

// GetByID fetches a single course.
func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (model.Course, error) {
	var c model.Course
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, skill_id, name, description, start_at, end_at, max_participants, meeting_url, created_at, updated_at
		 FROM courses WHERE id=?`, id).
		Scan(&c.ID, &c.UserID, &c.SkillID, &c.Name, &c.Description, &c.StartAt, &c.EndAt,
			&c.MaxParticipants, &c.MeetingURL, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, ErrCourseNotFound
	}
	return c, err
}

// CoachCourseSummary is a course row with its current active booking count,
// shown to the owning coach.
type CoachCourseSummary struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants uint32    `json:"max_participants"`
	Participants    uint64    `json:"participants"`
}

// ListForCoach returns the coach's own courses with active participant
// counts, computed with a single grouped join over active bookings.
func (r *CourseRepo) ListForCoach(ctx context.Context, coachUserID uint64) ([]CoachCourseSummary, error) {
	const q = `SELECT c.id, c.name, c.start_at, c.end_at, c.max_participants,
	                  COUNT(b.id)
	           FROM courses c
	           LEFT JOIN course_bookings b ON b.course_id = c.id AND b.status = 'ACTIVE'
	           WHERE c.user_id = ?
	           GROUP BY c.id, c.name, c.start_at, c.end_at, c.max_participants
	           ORDER BY c.start_at`
	rows, err := r.DB.QueryContext(ctx, q, coachUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]CoachCourseSummary, 0)
	for rows.Next() {
		var s CoachCourseSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.StartAt, &s.EndAt, &s.MaxParticipants, &s.Participants); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// CoachCourseDetail is the owner's view of one course including the skill
// name and meeting URL.
type CoachCourseDetail struct {
	ID              uint64    `json:"id"`
	SkillName       string    `json:"skill_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants uint32    `json:"max_participants"`
	MeetingURL      string    `json:"meeting_url"`
}

// GetDetailForCoach loads a course scoped to its owner; a course owned by
// someone else is indistinguishable from a missing one.
func (r *CourseRepo) GetDetailForCoach(ctx context.Context, courseID, coachUserID uint64) (CoachCourseDetail, error) {
	const q = `SELECT c.id, s.name, c.name, c.description, c.start_at, c.end_at, c.max_participants, c.meeting_url
	           FROM courses c
	           JOIN skills s ON s.id = c.skill_id
	           WHERE c.id = ? AND c.user_id = ?`
	var d CoachCourseDetail
	err := r.DB.QueryRowContext(ctx, q, courseID, coachUserID).
		Scan(&d.ID, &d.SkillName, &d.Name, &d.Description, &d.StartAt, &d.EndAt, &d.MaxParticipants, &d.MeetingURL)
	if err == sql.ErrNoRows {
		return d, ErrCourseNotFound
	}
	return d, err
}
