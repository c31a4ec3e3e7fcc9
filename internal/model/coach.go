package model

import "time"

// Coach holds the public coaching profile of a promoted user.  Each user
// has at most one coach row (users.id ↔ coaches.user_id is 1:1).  Skill
// links live in the coach_link_skills join table.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – owning user (unique).
//  ExperienceYears – years of coaching experience.
//  Description     – free-form profile text.
//  ProfileImageURL – optional https URL of the profile picture.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Coach struct {
	ID              uint64    // coaches.id
	UserID          uint64    // coaches.user_id
	ExperienceYears uint32    // coaches.experience_years
	Description     string    // coaches.description
	ProfileImageURL *string   // coaches.profile_image_url (nullable)
	CreatedAt       time.Time // coaches.created_at
	UpdatedAt       time.Time // coaches.updated_at
}

// Skill is a simple tag entity with a unique name.
type Skill struct {
	ID        uint64    // skills.id
	Name      string    // skills.name
	CreatedAt time.Time // skills.created_at
}

// CoachLinkSkill joins a coach to one of their skills.
type CoachLinkSkill struct {
	ID      uint64 // coach_link_skills.id
	CoachID uint64 // coach_link_skills.coach_id
	SkillID uint64 // coach_link_skills.skill_id
}
