package models

import "time"

// SubmissionStatus is the review state of a submission. All four states are
// mutually reachable by direct transition; the lifecycle manager does not
// restrict which status may follow which.
type SubmissionStatus string

const (
	StatusPending          SubmissionStatus = "pending"
	StatusInReview         SubmissionStatus = "in_review"
	StatusApproved         SubmissionStatus = "approved"
	StatusChangesRequested SubmissionStatus = "changes_requested"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusChangesRequested:
		return true
	}
	return false
}

// Submission is a work item submitted to a project, optionally carrying an
// attached artifact. The three file fields are all set or all empty.
type Submission struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ProjectID   uint             `gorm:"index;not null" json:"project_id"`
	UserID      uint             `gorm:"index;not null" json:"user_id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	Status      SubmissionStatus `gorm:"size:30;default:pending" json:"status"`
	FilePath    string           `gorm:"size:500" json:"file_path,omitempty"` // stored path, never the original filename
	FileName    string           `gorm:"size:255" json:"file_name,omitempty"` // original upload name
	FileType    string           `gorm:"size:100" json:"file_type,omitempty"` // content type
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Submission) TableName() string { return "submissions" }

// HasArtifact reports whether an artifact is attached.
func (s *Submission) HasArtifact() bool {
	return s.FilePath != ""
}
