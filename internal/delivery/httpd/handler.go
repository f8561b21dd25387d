package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Risingdell/Placement-mangement/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Handler struct {
	authService        service.AuthService
	applicationService service.ApplicationService
	driveService       service.DriveService
	profileService     service.ProfileService
	inboxService       service.InboxService
	eventService       service.EventService
	validate           *validator.Validate
	logger             zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	applicationService service.ApplicationService,
	driveService service.DriveService,
	profileService service.ProfileService,
	inboxService service.InboxService,
	eventService service.EventService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:        authService,
		applicationService: applicationService,
		driveService:       driveService,
		profileService:     profileService,
		inboxService:       inboxService,
		eventService:       eventService,
		validate:           validator.New(),
		logger:             logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Group(func(r chi.Router) {
		r.Use(h.Authenticated)
		r.Get("/uploads/*", h.DownloadUpload)
	})

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/reset-password", h.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(h.Authenticated)
				r.Get("/me", h.GetMe)
			})
		})

		api.Group(func(r chi.Router) {
			r.Use(h.Authenticated)

			r.Route("/applications", func(r chi.Router) {
				r.Post("/", h.Apply)
				r.Get("/", h.GetMyApplications)
				r.Get("/{id}", h.GetApplicationByID)
				r.Delete("/{id}", h.WithdrawApplication)

				r.Group(func(r chi.Router) {
					r.Use(h.AdminOnly)
					r.Put("/{id}/status", h.UpdateApplicationStatus)
					r.Get("/drive/{driveId}", h.GetApplicationsByDrive)
				})
			})

			r.Route("/drives", func(r chi.Router) {
				r.Get("/", h.GetDrives)
				r.Get("/upcoming/preview", h.GetUpcomingDrives)
				r.Get("/{id}", h.GetDriveByID)

				r.Group(func(r chi.Router) {
					r.Use(h.AdminOnly)
					r.Post("/", h.CreateDrive)
					r.Put("/{id}", h.UpdateDrive)
					r.Delete("/{id}", h.DeleteDrive)
				})
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.GetProfile)
				r.Get("/eligibility", h.GetEligibilityStatus)
				r.Put("/academics", h.UpdateAcademics)
				r.Post("/resume", h.UploadResume)
				r.Post("/photo", h.UploadPhoto)

				r.Post("/skills", h.AddSkill)
				r.Delete("/skills/{id}", h.DeleteSkill)
				r.Post("/projects", h.AddProject)
				r.Put("/projects/{id}", h.UpdateProject)
				r.Delete("/projects/{id}", h.DeleteProject)
				r.Post("/achievements", h.AddAchievement)
				r.Delete("/achievements/{id}", h.DeleteAchievement)
			})

			r.Route("/inbox", func(r chi.Router) {
				r.Get("/", h.GetInbox)
				r.Get("/unread/count", h.GetUnreadCount)
				r.Get("/preview", h.GetInboxPreview)
				r.Get("/{id}", h.GetMessageByID)
				r.Put("/{id}/read", h.MarkMessageRead)
				r.Put("/{id}/unread", h.MarkMessageUnread)
				r.Delete("/{id}", h.DeleteMessage)

				r.Group(func(r chi.Router) {
					r.Use(h.AdminOnly)
					r.Post("/send", h.SendMessage)
					r.Post("/send-bulk", h.SendBulkMessage)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.GetEvents)
				r.Get("/range", h.GetEventsByRange)
				r.Get("/upcoming/preview", h.GetUpcomingEvents)
				r.Get("/calendar", h.GetCalendar)
				r.Get("/{id}", h.GetEventByID)

				r.Group(func(r chi.Router) {
					r.Use(h.AdminOnly)
					r.Post("/", h.CreateEvent)
					r.Put("/{id}", h.UpdateEvent)
					r.Delete("/{id}", h.DeleteEvent)
				})
			})
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "placement-portal",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// decodeAndValidate decodes a JSON body into dst and runs struct
// validation. On failure it writes the 400 response itself and
// returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, "Validation failed on field '"+verrs[0].Field()+"'")
			return false
		}
		writeError(w, http.StatusBadRequest, "Validation failed")
		return false
	}

	return true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	if reason, ok := service.IsRejection(err); ok {
		writeError(w, http.StatusBadRequest, reason)
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrAlreadyApplied):
		writeError(w, http.StatusBadRequest, "You have already applied for this drive")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrAccountDisabled):
		writeError(w, http.StatusUnauthorized, "Account has been deactivated")
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolQueryParam(r *http.Request, key string) bool {
	value := r.URL.Query().Get(key)
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}

	return boolValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusCreated, response)
}
