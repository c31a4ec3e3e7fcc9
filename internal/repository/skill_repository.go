package repository

import (
	"context"
	"database/sql"

	"github.com/coachup/coaching-api/internal/model"
)

// SkillRepo provides CRUD for the skills catalog.
type SkillRepo struct{ DB *sql.DB }

func NewSkillRepo(db *sql.DB) *SkillRepo { return &SkillRepo{DB: db} }

// List returns all skills ordered by id.
func (r *SkillRepo) List(ctx context.Context) ([]model.Skill, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, created_at FROM skills ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	skills := make([]model.Skill, 0)
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// Create inserts a skill; duplicate names map to ErrNameExists via the
// unique key on skills.name.
func (r *SkillRepo) Create(ctx context.Context, name string) (model.Skill, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO skills (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Skill{}, ErrNameExists
		}
		return model.Skill{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Skill{}, err
	}
	var s model.Skill
	err = r.DB.QueryRowContext(ctx, "SELECT id, name, created_at FROM skills WHERE id=?", id).
		Scan(&s.ID, &s.Name, &s.CreatedAt)
	return s, err
}

// Delete removes a skill by id.
func (r *SkillRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM skills WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUpdateFailed
	}
	return nil
}
