package httpd

import (
	"net/http"

	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) GetInbox(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	unreadOnly := getBoolQueryParam(r, "unread")

	ctx := r.Context()
	messages, err := h.inboxService.GetMessages(ctx, user.ID, unreadOnly)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, messages)
}

func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	count, err := h.inboxService.UnreadCount(ctx, user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, models.UnreadCountResponse{Count: count})
}

func (h *Handler) GetInboxPreview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	messages, err := h.inboxService.GetPreview(ctx, user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, messages)
}

func (h *Handler) GetMessageByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	messageID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(messageID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID format")
		return
	}

	ctx := r.Context()
	message, err := h.inboxService.GetMessageByID(ctx, user.ID, messageID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, message)
}

func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	h.setMessageRead(w, r, true)
}

func (h *Handler) MarkMessageUnread(w http.ResponseWriter, r *http.Request) {
	h.setMessageRead(w, r, false)
}

func (h *Handler) setMessageRead(w http.ResponseWriter, r *http.Request, read bool) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	messageID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(messageID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID format")
		return
	}

	ctx := r.Context()
	if err := h.inboxService.MarkRead(ctx, user.ID, messageID, read); err != nil {
		h.handleServiceError(w, err)
		return
	}

	message := "Message marked as read"
	if !read {
		message = "Message marked as unread"
	}

	writeSuccess(w, map[string]interface{}{
		"message": message,
	})
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	messageID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(messageID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID format")
		return
	}

	ctx := r.Context()
	if err := h.inboxService.DeleteMessage(ctx, user.ID, messageID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Message deleted successfully",
	})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.SendMessageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	message, err := h.inboxService.SendMessage(ctx, user, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, message)
}

func (h *Handler) SendBulkMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.SendBulkMessageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	sent, err := h.inboxService.SendBulkMessage(ctx, user, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, map[string]interface{}{
		"message": "Messages sent successfully",
		"sent":    sent,
	})
}
