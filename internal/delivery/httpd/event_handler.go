package httpd

import (
	"net/http"
	"time"

	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	eventType := r.URL.Query().Get("type")
	upcomingOnly := getBoolQueryParam(r, "upcoming")

	ctx := r.Context()
	events, err := h.eventService.GetEvents(ctx, eventType, upcomingOnly)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, events)
}

func (h *Handler) GetEventsByRange(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be an RFC3339 timestamp")
		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be an RFC3339 timestamp")
		return
	}

	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	ctx := r.Context()
	events, err := h.eventService.GetEventsByDateRange(ctx, start, end)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, events)
}

func (h *Handler) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	events, err := h.eventService.GetUpcomingEvents(ctx)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, events)
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := getIntQueryParam(r, "year", now.Year())
	month := getIntQueryParam(r, "month", int(now.Month()))

	ctx := r.Context()
	calendar, err := h.eventService.GetCalendar(ctx, year, month)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, calendar)
}

func (h *Handler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(eventID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	ctx := r.Context()
	event, err := h.eventService.GetEventByID(ctx, eventID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, event)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateEventRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	event, err := h.eventService.CreateEvent(ctx, user, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(eventID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var req models.UpdateEventRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.eventService.UpdateEvent(ctx, eventID, &req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Event updated successfully",
	})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(eventID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	ctx := r.Context()
	if err := h.eventService.DeleteEvent(ctx, eventID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Event deleted successfully",
	})
}
