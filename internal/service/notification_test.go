package service

import (
	"strings"
	"testing"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

func TestBuildStatusNotification_PerStatus(t *testing.T) {
	tests := []struct {
		status       string
		wantSubject  string
		wantCategory string
	}{
		{"Shortlisted", "Shortlisted - Acme Corp", "Shortlist"},
		{"Exam Scheduled", "Exam Scheduled - Acme Corp", "Notification"},
		{"Interview Scheduled", "Interview Scheduled - Acme Corp", "Notification"},
		{"Selected", "Congratulations! Selected at Acme Corp", "Result"},
		{"Rejected", "Application Update - Acme Corp", "Notification"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			n := buildStatusNotification(tt.status, "Acme Corp", "")
			if n.Subject != tt.wantSubject {
				t.Fatalf("expected subject %q, got %q", tt.wantSubject, n.Subject)
			}
			if n.Category != tt.wantCategory {
				t.Fatalf("expected category %q, got %q", tt.wantCategory, n.Category)
			}
			if !strings.Contains(n.Body, "Acme Corp") {
				t.Fatalf("expected body to mention the company, got %q", n.Body)
			}
		})
	}
}

func TestBuildStatusNotification_RemarksIncluded(t *testing.T) {
	n := buildStatusNotification("Shortlisted", "Acme Corp", "Report to hall B at 10am")
	if !strings.Contains(n.Body, "Report to hall B at 10am") {
		t.Fatalf("expected remarks in body, got %q", n.Body)
	}
	if strings.Contains(n.Body, "Further details will be shared soon.") {
		t.Fatalf("remarks must replace the fallback text, got %q", n.Body)
	}
}

func TestBuildStatusNotification_FallbackWithoutRemarks(t *testing.T) {
	n := buildStatusNotification("Rejected", "Acme Corp", "")
	if !strings.Contains(n.Body, "unable to proceed") {
		t.Fatalf("expected fallback text, got %q", n.Body)
	}
}

func TestBuildStatusNotification_UnknownStatus(t *testing.T) {
	n := buildStatusNotification("Mystery", "Acme Corp", "custom note")
	if n.Subject != "Application Update - Acme Corp" {
		t.Fatalf("unexpected subject %q", n.Subject)
	}
	if !strings.Contains(n.Body, "custom note") {
		t.Fatalf("expected remarks in body, got %q", n.Body)
	}
	if n.Category != models.MessageTypeNotification.String() {
		t.Fatalf("unexpected category %q", n.Category)
	}
}

func TestBuildApplyNotification(t *testing.T) {
	n := buildApplyNotification("Acme Corp")
	if n.Subject != "Application Submitted - Acme Corp" {
		t.Fatalf("unexpected subject %q", n.Subject)
	}
	if !strings.Contains(n.Body, "successfully submitted") {
		t.Fatalf("unexpected body %q", n.Body)
	}
	if n.Category != models.MessageTypeNotification.String() {
		t.Fatalf("unexpected category %q", n.Category)
	}
}
