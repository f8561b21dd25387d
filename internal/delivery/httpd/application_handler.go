package httpd

import (
	"net/http"

	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.ApplyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	response, err := h.applicationService.Apply(ctx, user, req.DriveID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, response)
}

func (h *Handler) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	applications, err := h.applicationService.GetMyApplications(ctx, user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, applications)
}

func (h *Handler) GetApplicationByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	applicationID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(applicationID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid application ID format")
		return
	}

	ctx := r.Context()
	details, err := h.applicationService.GetApplicationByID(ctx, user.ID, applicationID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, details)
}

func (h *Handler) WithdrawApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	applicationID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(applicationID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid application ID format")
		return
	}

	ctx := r.Context()
	if err := h.applicationService.Withdraw(ctx, user, applicationID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Application withdrawn successfully",
	})
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	applicationID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(applicationID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid application ID format")
		return
	}

	var req models.UpdateApplicationStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.applicationService.UpdateStatus(ctx, user, applicationID, req.Status, req.Remarks); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Application status updated",
	})
}

func (h *Handler) GetApplicationsByDrive(w http.ResponseWriter, r *http.Request) {
	driveID := chi.URLParam(r, "driveId")
	if _, err := uuid.Parse(driveID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid drive ID format")
		return
	}

	ctx := r.Context()
	applications, err := h.applicationService.GetApplicationsByDrive(ctx, driveID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, applications)
}
