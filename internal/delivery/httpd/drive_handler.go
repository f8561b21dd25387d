package httpd

import (
	"net/http"

	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) GetDrives(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	status := r.URL.Query().Get("status")

	ctx := r.Context()
	drives, err := h.driveService.GetDrives(ctx, user, status)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, drives)
}

func (h *Handler) GetDriveByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	driveID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(driveID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid drive ID format")
		return
	}

	ctx := r.Context()
	drive, err := h.driveService.GetDriveByID(ctx, user, driveID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, drive)
}

func (h *Handler) GetUpcomingDrives(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	drives, err := h.driveService.GetUpcomingDrives(ctx)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, drives)
}

func (h *Handler) CreateDrive(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateDriveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	drive, err := h.driveService.CreateDrive(ctx, user, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, drive)
}

func (h *Handler) UpdateDrive(w http.ResponseWriter, r *http.Request) {
	driveID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(driveID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid drive ID format")
		return
	}

	var req models.UpdateDriveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.driveService.UpdateDrive(ctx, driveID, &req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Drive updated successfully",
	})
}

func (h *Handler) DeleteDrive(w http.ResponseWriter, r *http.Request) {
	driveID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(driveID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid drive ID format")
		return
	}

	ctx := r.Context()
	if err := h.driveService.DeleteDrive(ctx, driveID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Drive deleted successfully",
	})
}
