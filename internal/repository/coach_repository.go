package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/coachup/coaching-api/internal/model"
)

// CoachRepo manages coach profiles, their skill links, and the USER→COACH
// role transition.
type CoachRepo struct{ DB *sql.DB }

func NewCoachRepo(db *sql.DB) *CoachRepo { return &CoachRepo{DB: db} }

func scanCoach(row *sql.Row) (model.Coach, error) {
	var co model.Coach
	var img sql.NullString
	err := row.Scan(&co.ID, &co.UserID, &co.ExperienceYears, &co.Description, &img, &co.CreatedAt, &co.UpdatedAt)
	if err == sql.ErrNoRows {
		return co, ErrCoachNotFound
	}
	if err != nil {
		return co, err
	}
	if img.Valid {
		s := img.String
		co.ProfileImageURL = &s
	}
	return co, nil
}

const coachColumns = "id, user_id, experience_years, description, profile_image_url, created_at, updated_at"

// GetByID fetches a coach by primary key.
func (r *CoachRepo) GetByID(ctx context.Context, id uint64) (model.Coach, error) {
	return scanCoach(r.DB.QueryRowContext(ctx,
		"SELECT "+coachColumns+" FROM coaches WHERE id=?", id))
}

// GetByUserID fetches the coach profile of a user.
func (r *CoachRepo) GetByUserID(ctx context.Context, userID uint64) (model.Coach, error) {
	return scanCoach(r.DB.QueryRowContext(ctx,
		"SELECT "+coachColumns+" FROM coaches WHERE user_id=?", userID))
}

// CoachListing is one row of the public paginated coach list.
type CoachListing struct {
	ID              uint64  `json:"id"`
	UserID          uint64  `json:"user_id"`
	Name            string  `json:"name"`
	ExperienceYears uint32  `json:"experience_years"`
	Description     string  `json:"description"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// List returns one page of coaches with their user names plus the total
// row count, for the public paginated listing.
func (r *CoachRepo) List(ctx context.Context, page, per int) ([]CoachListing, uint64, error) {
	var total uint64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM coaches").Scan(&total); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * per
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.user_id, u.name, c.experience_years, c.description, c.profile_image_url
		   FROM coaches c JOIN users u ON u.id = c.user_id
		  ORDER BY c.id LIMIT ? OFFSET ?`, per, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	coaches := make([]CoachListing, 0, per)
	for rows.Next() {
		var cl CoachListing
		var img sql.NullString
		if err := rows.Scan(&cl.ID, &cl.UserID, &cl.Name, &cl.ExperienceYears, &cl.Description, &img); err != nil {
			return nil, 0, err
		}
		if img.Valid {
			s := img.String
			cl.ProfileImageURL = &s
		}
		coaches = append(coaches, cl)
	}
	return coaches, total, rows.Err()
}

// GetDetail returns the public detail of one coach: profile joined with the
// user name plus the linked skills.
func (r *CoachRepo) GetDetail(ctx context.Context, coachID uint64) (CoachListing, []model.Skill, error) {
	var cl CoachListing
	var img sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT c.id, c.user_id, u.name, c.experience_years, c.description, c.profile_image_url
		   FROM coaches c JOIN users u ON u.id = c.user_id
		  WHERE c.id=?`, coachID).
		Scan(&cl.ID, &cl.UserID, &cl.Name, &cl.ExperienceYears, &cl.Description, &img)
	if err == sql.ErrNoRows {
		return cl, nil, ErrCoachNotFound
	}
	if err != nil {
		return cl, nil, err
	}
	if img.Valid {
		s := img.String
		cl.ProfileImageURL = &s
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, s.created_at FROM skills s
		   JOIN coach_link_skills l ON l.skill_id = s.id
		  WHERE l.coach_id=? ORDER BY s.id`, coachID)
	if err != nil {
		return cl, nil, err
	}
	defer rows.Close()
	skills := make([]model.Skill, 0)
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return cl, nil, err
		}
		skills = append(skills, s)
	}
	return cl, skills, rows.Err()
}

// SkillIDs returns the linked skill ids of a coach.
func (r *CoachRepo) SkillIDs(ctx context.Context, coachID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT skill_id FROM coach_link_skills WHERE coach_id=? ORDER BY skill_id", coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Promote turns a USER into a COACH: the role update and the coach-row
// insert execute in one transaction, so a crash or failure between the two
// writes leaves no partial state.  The user row is locked first to keep a
// concurrent promotion from racing the role check.
func (r *CoachRepo) Promote(ctx context.Context, userID uint64, experienceYears uint32, description string, profileImageURL *string) (model.User, model.Coach, error) {
	var u model.User
	var co model.Coach

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return u, co, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id=? FOR UPDATE",
		userID).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, co, ErrUserNotFound
	}
	if err != nil {
		return u, co, err
	}
	if u.Role == model.RoleCoach {
		return u, co, ErrAlreadyCoach
	}

	res, err := tx.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", model.RoleCoach, userID)
	if err != nil {
		return u, co, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return u, co, err
	}
	if n == 0 {
		return u, co, ErrUpdateFailed
	}

	ins, err := tx.ExecContext(ctx,
		"INSERT INTO coaches (user_id, experience_years, description, profile_image_url) VALUES (?,?,?,?)",
		userID, experienceYears, description, profileImageURL)
	if err != nil {
		if isDuplicateKey(err) {
			return u, co, ErrAlreadyCoach
		}
		return u, co, err
	}
	coachID, err := ins.LastInsertId()
	if err != nil {
		return u, co, err
	}

	co, err = scanCoach(tx.QueryRowContext(ctx,
		"SELECT "+coachColumns+" FROM coaches WHERE id=?", coachID))
	if err != nil {
		return u, co, err
	}

	if err := tx.Commit(); err != nil {
		return u, co, err
	}
	committed = true
	u.Role = model.RoleCoach
	return u, co, nil
}

// UpdateProfile replaces the coach's profile fields and their skill links
// atomically: old links are deleted and the new set inserted in the same
// transaction.
func (r *CoachRepo) UpdateProfile(ctx context.Context, userID uint64, experienceYears uint32, description, profileImageURL string, skillIDs []uint64) (model.Coach, []uint64, error) {
	co, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return co, nil, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return co, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		"UPDATE coaches SET experience_years=?, description=?, profile_image_url=? WHERE id=?",
		experienceYears, description, profileImageURL, co.ID); err != nil {
		return co, nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM coach_link_skills WHERE coach_id=?", co.ID); err != nil {
		return co, nil, err
	}
	if len(skillIDs) > 0 {
		q := "INSERT INTO coach_link_skills (coach_id, skill_id) VALUES " +
			strings.TrimSuffix(strings.Repeat("(?,?),", len(skillIDs)), ",")
		args := make([]interface{}, 0, len(skillIDs)*2)
		for _, sid := range skillIDs {
			args = append(args, co.ID, sid)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return co, nil, err
		}
	}

	co2, err := scanCoach(tx.QueryRowContext(ctx, "SELECT "+coachColumns+" FROM coaches WHERE id=?", co.ID))
	if err != nil {
		return co, nil, err
	}

	if err := tx.Commit(); err != nil {
		return co, nil, err
	}
	committed = true

	linked, err := r.SkillIDs(ctx, co.ID)
	if err != nil {
		return co2, nil, err
	}
	return co2, linked, nil
}
