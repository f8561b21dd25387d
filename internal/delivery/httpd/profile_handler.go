package httpd

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	profile, err := h.profileService.GetProfile(ctx, user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, profile)
}

func (h *Handler) UpdateAcademics(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.UpdateAcademicsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.profileService.UpdateAcademics(ctx, user.ID, &req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Academic details updated successfully",
	})
}

func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	ctx := r.Context()
	url, err := h.profileService.UploadResume(ctx, user.ID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message":    "Resume uploaded successfully",
		"resume_url": url,
	})
}

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	ctx := r.Context()
	url, err := h.profileService.UploadPhoto(ctx, user.ID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message":   "Photo uploaded successfully",
		"photo_url": url,
	})
}

func (h *Handler) GetEligibilityStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	status, err := h.profileService.GetEligibilityStatus(ctx, user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, status)
}

func (h *Handler) AddSkill(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.AddSkillRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	skill, err := h.profileService.AddSkill(ctx, user.ID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, skill)
}

func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	skillID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(skillID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skill ID format")
		return
	}

	ctx := r.Context()
	if err := h.profileService.DeleteSkill(ctx, skillID, user.ID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Skill deleted successfully",
	})
}

func (h *Handler) AddProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.AddProjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	project, err := h.profileService.AddProject(ctx, user.ID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(projectID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	var req models.UpdateProjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.profileService.UpdateProject(ctx, projectID, user.ID, &req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Project updated successfully",
	})
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(projectID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	ctx := r.Context()
	if err := h.profileService.DeleteProject(ctx, projectID, user.ID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Project deleted successfully",
	})
}

func (h *Handler) AddAchievement(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.AddAchievementRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	achievement, err := h.profileService.AddAchievement(ctx, user.ID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, achievement)
}

func (h *Handler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	achievementID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(achievementID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid achievement ID format")
		return
	}

	ctx := r.Context()
	if err := h.profileService.DeleteAchievement(ctx, achievementID, user.ID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Achievement deleted successfully",
	})
}

// DownloadUpload streams a stored resume or photo back to the client.
func (h *Handler) DownloadUpload(w http.ResponseWriter, r *http.Request) {
	objectName := chi.URLParam(r, "*")
	if objectName == "" {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	ctx := r.Context()
	rc, size, err := h.profileService.DownloadFile(ctx, objectName)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error().Err(err).Str("object", objectName).Msg("Failed to stream upload")
	}
}
