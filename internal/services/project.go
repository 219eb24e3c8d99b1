package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/pkg/logger"
	"github.com/reviewhub/reviewhub/pkg/response"
)

// ProjectService owns project creation, the membership roster, and role
// changes within a project. It carries the artifact store so deleting a
// project can clean up attached submission artifacts.
type ProjectService struct {
	db    *gorm.DB
	store ArtifactStore
}

func NewProjectService(db *gorm.DB, store ArtifactStore) *ProjectService {
	return &ProjectService{db: db, store: store}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

type AddMemberRequest struct {
	UserID uint               `json:"userId" binding:"required"`
	Role   models.ProjectRole `json:"role" binding:"required"`
}

// rosterPreload loads the membership roster in deterministic join order.
func rosterPreload(db *gorm.DB) *gorm.DB {
	return db.Order("project_members.joined_at ASC, project_members.id ASC")
}

// Create inserts the project row and the creator's admin membership as one
// transactional unit; on failure no partial state is visible.
func (s *ProjectService) Create(req *CreateProjectRequest, ownerID uint) (*models.Project, error) {
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   ownerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      models.ProjectRoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, response.NewPersistence("failed to create project")
	}

	return s.loadProject(project.ID)
}

// GetByID loads a project with its full roster. Only members may read it.
func (s *ProjectService) GetByID(id, actingUserID uint) (*models.Project, error) {
	project, err := s.loadProject(id)
	if err != nil {
		return nil, err
	}

	if !isMember(project, actingUserID) {
		return nil, response.NewForbidden("not authorized to access this project")
	}

	return project, nil
}

// ListForUser returns all projects the user is a member of, most recently
// updated first.
func (s *ProjectService) ListForUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.updated_at DESC").
		Preload("Members", rosterPreload).
		Find(&projects).Error
	if err != nil {
		return nil, response.NewPersistence("failed to list projects")
	}
	return projects, nil
}

// Update applies a partial update. Only the project's creator may update it;
// omitted fields are left unchanged.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest, actingUserID uint) (*models.Project, error) {
	project, err := s.loadProject(id)
	if err != nil {
		return nil, err
	}

	if project.CreatedBy != actingUserID {
		return nil, response.NewForbidden("only the project owner can update the project")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Project{ID: id}).Updates(updates).Error; err != nil {
			return nil, response.NewPersistence("failed to update project")
		}
	}

	return s.loadProject(id)
}

// Delete removes the project, its memberships, and its submissions in one
// transaction. Submission artifacts are removed best-effort after commit; a
// blob that outlives its rows is preferable to rows that outlive the project.
func (s *ProjectService) Delete(id, actingUserID uint) error {
	project, err := s.loadProject(id)
	if err != nil {
		return err
	}

	if project.CreatedBy != actingUserID {
		return response.NewForbidden("only the project owner can delete the project")
	}

	var artifactPaths []string
	if err := s.db.Model(&models.Submission{}).
		Where("project_id = ? AND file_path != ''", id).
		Pluck("file_path", &artifactPaths).Error; err != nil {
		return response.NewPersistence("failed to collect submission artifacts")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return response.NewPersistence("failed to delete project")
	}

	for _, p := range artifactPaths {
		if err := s.store.Remove(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("failed to remove artifact of deleted project")
		}
	}

	return nil
}

// AddMember adds a user to the project roster, or updates their role if they
// are already a member. Callers need project-role admin or owner. The upsert
// runs against the (project_id, user_id) unique index so concurrent adds of
// the same user cannot duplicate the row.
func (s *ProjectService) AddMember(projectID uint, req *AddMemberRequest, actingUserID uint) (*models.Project, error) {
	if !req.Role.Valid() {
		return nil, response.NewInvalidInput("invalid role")
	}

	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	if !actorCanManage(project, actingUserID) {
		return nil, response.NewForbidden("only admins can add members to the project")
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, response.NewPersistence("failed to load user")
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"role": req.Role}),
	}).Create(&member).Error
	if err != nil {
		return nil, response.NewPersistence("failed to add member")
	}

	return s.loadProject(projectID)
}

// RemoveMember removes a user from the roster. Callers need project-role
// admin or owner; the member holding the owner role can never be removed
// through this path.
func (s *ProjectService) RemoveMember(projectID, targetUserID, actingUserID uint) (*models.Project, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	if !actorCanManage(project, actingUserID) {
		return nil, response.NewForbidden("only admins can remove members from the project")
	}

	target := findMember(project, targetUserID)
	if target == nil {
		return nil, response.NewNotFound("member not found")
	}
	if target.Role == models.ProjectRoleOwner {
		return nil, response.NewInvalidOperation("cannot remove the project owner")
	}

	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, targetUserID).
		Delete(&models.ProjectMember{}).Error; err != nil {
		return nil, response.NewPersistence("failed to remove member")
	}

	return s.loadProject(projectID)
}

// MemberRole returns the acting user's role within a project, if any.
func (s *ProjectService) MemberRole(projectID, userID uint) (models.ProjectRole, bool, error) {
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

func (s *ProjectService) loadProject(id uint) (*models.Project, error) {
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

func findMember(project *models.Project, userID uint) *models.ProjectMember {
	for i := range project.Members {
		if project.Members[i].UserID == userID {
			return &project.Members[i]
		}
	}
	return nil
}

func isMember(project *models.Project, userID uint) bool {
	return findMember(project, userID) != nil
}

func actorCanManage(project *models.Project, userID uint) bool {
	member := findMember(project, userID)
	return member != nil && member.Role.CanManageMembers()
}
