package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/reviewhub/reviewhub/internal/middleware"
	"github.com/reviewhub/reviewhub/internal/services"
	"github.com/reviewhub/reviewhub/pkg/response"
)

// ProjectMemberHandler manages the membership roster of a project.
type ProjectMemberHandler struct {
	projectService *services.ProjectService
}

func NewProjectMemberHandler(projectService *services.ProjectService) *ProjectMemberHandler {
	return &ProjectMemberHandler{projectService: projectService}
}

// Add adds a user to a project, or updates their role if already a member.
// POST /projects/:id/members
func (h *ProjectMemberHandler) Add(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.AddMember(projectID, &req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Remove removes a member from a project. The owner member is unremovable.
// DELETE /projects/:id/members/:userId
func (h *ProjectMemberHandler) Remove(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "userId", "invalid user id")
	if !ok {
		return
	}

	project, err := h.projectService.RemoveMember(projectID, userID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}
