package httpd

import (
	"net/http"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	response, err := h.authService.Login(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, response)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	profile, err := h.authService.GetMe(ctx, user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, profile)
}

// ForgotPassword always reports success so callers cannot tell which
// emails are registered.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	token, err := h.authService.ForgotPassword(ctx, req.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"message": "If the email is registered, a reset token has been issued",
	}
	if token != "" {
		response["token"] = token
	}

	writeSuccess(w, response)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.authService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Password has been reset successfully",
	})
}
