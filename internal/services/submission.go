package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/pkg/logger"
	"github.com/reviewhub/reviewhub/pkg/response"
)

// ArtifactStore is the blob store holding submission artifacts. The HTTP
// layer stages uploads; the service promotes them into permanent storage.
type ArtifactStore interface {
	Promote(tempPath, originalName string) (storedPath string, err error)
	Remove(storedPath string) error
}

// ArtifactUpload describes a staged upload waiting to be promoted.
type ArtifactUpload struct {
	TempPath     string
	OriginalName string
	ContentType  string
}

// SubmissionService owns submission creation and status transitions.
type SubmissionService struct {
	db    *gorm.DB
	store ArtifactStore
}

func NewSubmissionService(db *gorm.DB, store ArtifactStore) *SubmissionService {
	return &SubmissionService{db: db, store: store}
}

type CreateSubmissionRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create stores a new submission in state pending. The author must be a
// member of the project. When an artifact is supplied it is promoted into
// permanent storage first; if the row insert then fails the stored blob is
// removed again, so no orphan metadata and no orphan blob survive a failure.
func (s *SubmissionService) Create(projectID, authorID uint, req *CreateSubmissionRequest, artifact *ArtifactUpload) (*models.Submission, error) {
	project, err := s.loadProjectWithRoster(projectID)
	if err != nil {
		return nil, err
	}
	if !isMember(project, authorID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	submission := models.Submission{
		ProjectID:   projectID,
		UserID:      authorID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusPending,
	}

	if artifact != nil {
		storedPath, err := s.store.Promote(artifact.TempPath, artifact.OriginalName)
		if err != nil {
			return nil, response.NewPersistence("failed to store attached file")
		}
		submission.FilePath = storedPath
		submission.FileName = artifact.OriginalName
		submission.FileType = artifact.ContentType
	}

	if err := s.db.Create(&submission).Error; err != nil {
		if submission.FilePath != "" {
			if rmErr := s.store.Remove(submission.FilePath); rmErr != nil {
				logger.Warn().Err(rmErr).Str("path", submission.FilePath).Msg("failed to roll back stored artifact")
			}
		}
		return nil, response.NewPersistence("failed to create submission")
	}

	return &submission, nil
}

// GetByID returns a submission to members of its project.
func (s *SubmissionService) GetByID(id, actingUserID uint) (*models.Submission, error) {
	submission, err := s.loadSubmission(id)
	if err != nil {
		return nil, err
	}

	project, err := s.loadProjectWithRoster(submission.ProjectID)
	if err != nil {
		return nil, err
	}
	if !isMember(project, actingUserID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	return submission, nil
}

// ListByProject returns a project's submissions, newest first, to members.
func (s *SubmissionService) ListByProject(projectID, actingUserID uint) ([]models.Submission, error) {
	project, err := s.loadProjectWithRoster(projectID)
	if err != nil {
		return nil, err
	}
	if !isMember(project, actingUserID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	var submissions []models.Submission
	err = s.db.Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, response.NewPersistence("failed to list submissions")
	}
	return submissions, nil
}

// UpdateStatus moves a submission to any of the four states. The value is
// validated before any storage access; the acting user's project role must be
// admin or reviewer. The update timestamp is refreshed on every transition,
// including re-applying the current status.
func (s *SubmissionService) UpdateStatus(id uint, status string, actingUserID uint) (*models.Submission, error) {
	newStatus := models.SubmissionStatus(status)
	if !newStatus.Valid() {
		return nil, response.NewInvalidStatus("invalid status")
	}

	submission, err := s.loadSubmission(id)
	if err != nil {
		return nil, err
	}

	role, ok, err := s.memberRole(submission.ProjectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !ok || !role.CanReview() {
		return nil, response.NewForbidden("only reviewers and admins can update submission status")
	}

	if err := s.db.Model(submission).Updates(map[string]interface{}{"status": newStatus}).Error; err != nil {
		return nil, response.NewPersistence("failed to update submission status")
	}

	return submission, nil
}

// Delete removes a submission. Only the author may delete it. The stored
// artifact is removed first, best-effort: a blob-store failure is logged and
// the row deletion proceeds anyway, so a delete never fails on blob-store
// trouble at the cost of the occasional orphaned blob.
func (s *SubmissionService) Delete(id, actingUserID uint) error {
	submission, err := s.loadSubmission(id)
	if err != nil {
		return err
	}

	if submission.UserID != actingUserID {
		return response.NewForbidden("you can only delete your own submissions")
	}

	if submission.HasArtifact() {
		if err := s.store.Remove(submission.FilePath); err != nil {
			logger.Warn().Err(err).Str("path", submission.FilePath).Msg("failed to remove submission artifact")
		}
	}

	if err := s.db.Delete(&models.Submission{}, id).Error; err != nil {
		return response.NewPersistence("failed to delete submission")
	}
	return nil
}

func (s *SubmissionService) loadSubmission(id uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("submission not found")
		}
		return nil, response.NewPersistence("failed to load submission")
	}
	return &submission, nil
}

func (s *SubmissionService) loadProjectWithRoster(id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Preload("Members", rosterPreload).First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, response.NewPersistence("failed to load project")
	}
	return &project, nil
}

func (s *SubmissionService) memberRole(projectID, userID uint) (models.ProjectRole, bool, error) {
	var member models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, response.NewPersistence("failed to load membership")
	}
	return member.Role, true, nil
}
