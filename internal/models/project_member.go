package models

import "time"

// ProjectMember represents a user's membership and role within a project.
// The (project_id, user_id) unique index makes concurrent re-adds safe:
// the membership upsert relies on it, so duplicates cannot exist even when
// two requests race.
type ProjectMember struct {
	ID        uint        `gorm:"primaryKey" json:"-"`
	ProjectID uint        `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	UserID    uint        `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      ProjectRole `gorm:"size:50;not null" json:"role"`
	JoinedAt  time.Time   `gorm:"autoCreateTime" json:"joined_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
