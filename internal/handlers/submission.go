package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/reviewhub/internal/middleware"
	"github.com/reviewhub/reviewhub/internal/services"
	"github.com/reviewhub/reviewhub/internal/storage"
	"github.com/reviewhub/reviewhub/pkg/response"
)

// allowedFileTypes is the upload MIME allowlist: source files, text, and
// common archive formats.
var allowedFileTypes = map[string]bool{
	"text/plain":                   true,
	"application/json":             true,
	"application/javascript":       true,
	"application/x-javascript":     true,
	"text/x-python":                true,
	"text/x-java":                  true,
	"text/x-c":                     true,
	"text/x-c++":                   true,
	"text/x-csharp":                true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-rar-compressed": true,
	"application/x-tar":            true,
	"application/x-gzip":           true,
	"application/gzip":             true,
}

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	store             *storage.LocalStore
	maxFileSize       int64
}

func NewSubmissionHandler(submissionService *services.SubmissionService, store *storage.LocalStore, maxSizeMB int64) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		store:             store,
		maxFileSize:       maxSizeMB << 20,
	}
}

// Create accepts a multipart form with title, optional description, and an
// optional artifact under the "file" field. The artifact is staged to the
// temp dir before the service promotes it into permanent storage.
// POST /projects/:id/submissions
func (h *SubmissionHandler) Create(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	var req services.CreateSubmissionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var artifact *services.ArtifactUpload
	file, err := c.FormFile("file")
	if err == nil {
		artifact, err = h.stageUpload(c, file)
		if err != nil {
			response.Error(c, err)
			return
		}
		// Once promoted the staged path no longer exists; this only catches
		// uploads abandoned by a failed create.
		defer h.store.Discard(artifact.TempPath)
	}

	submission, err := h.submissionService.Create(projectID, middleware.GetUserID(c), &req, artifact)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, submission)
}

// List returns a project's submissions, newest first.
// GET /projects/:id/submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	submissions, err := h.submissionService.ListByProject(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, submissions)
}

// GetByID returns a single submission.
// GET /submissions/:id
func (h *SubmissionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid submission id")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetByID(id, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, submission)
}

// UpdateStatus moves a submission to a new review state.
// PATCH /submissions/:id/status
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid submission id")
	if !ok {
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	submission, err := h.submissionService.UpdateStatus(id, req.Status, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, submission)
}

// Delete removes a submission; author only.
// DELETE /submissions/:id
func (h *SubmissionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid submission id")
	if !ok {
		return
	}

	if err := h.submissionService.Delete(id, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "submission deleted successfully")
}

// stageUpload validates size and content type, then writes the upload into
// the staging dir. The caller owns the staged file and must discard it once
// the request finishes.
func (h *SubmissionHandler) stageUpload(c *gin.Context, file *multipart.FileHeader) (*services.ArtifactUpload, error) {
	if file.Size > h.maxFileSize {
		return nil, response.NewInvalidInput(fmt.Sprintf("file exceeds the %d MB size limit", h.maxFileSize>>20))
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedFileTypes[contentType] {
		return nil, response.NewInvalidInput("file type not allowed")
	}

	tempPath := h.store.StagePath()
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		return nil, response.NewPersistence("failed to receive uploaded file")
	}

	return &services.ArtifactUpload{
		TempPath:     tempPath,
		OriginalName: file.Filename,
		ContentType:  contentType,
	}, nil
}
