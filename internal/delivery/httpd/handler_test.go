package httpd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/service"
)

func TestHandleServiceError_StatusMapping(t *testing.T) {
	h := &Handler{logger: zerolog.Nop()}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "business rejection",
			err:         &service.Rejection{Reason: "Registration deadline has passed"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Registration deadline has passed",
		},
		{
			name:        "duplicate application",
			err:         service.ErrAlreadyApplied,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "You have already applied for this drive",
		},
		{
			name:        "not found",
			err:         service.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Resource not found",
		},
		{
			name:        "bad credentials",
			err:         service.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.handleServiceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if body["message"] != tt.wantMessage {
				t.Fatalf("expected message %q, got %q", tt.wantMessage, body["message"])
			}
		})
	}
}
