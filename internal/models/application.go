package models

import (
	"time"
)

type Application struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	DriveID   string    `json:"drive_id" db:"drive_id"`
	Status    string    `json:"status" db:"status"`
	AppliedAt time.Time `json:"applied_at" db:"applied_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ApplicationStatus string

const (
	ApplicationStatusApplied            ApplicationStatus = "Applied"
	ApplicationStatusShortlisted        ApplicationStatus = "Shortlisted"
	ApplicationStatusExamScheduled      ApplicationStatus = "Exam Scheduled"
	ApplicationStatusInterviewScheduled ApplicationStatus = "Interview Scheduled"
	ApplicationStatusSelected           ApplicationStatus = "Selected"
	ApplicationStatusRejected           ApplicationStatus = "Rejected"
)

func (as ApplicationStatus) String() string {
	return string(as)
}

func IsValidApplicationStatus(status string) bool {
	switch status {
	case "Applied", "Shortlisted", "Exam Scheduled", "Interview Scheduled", "Selected", "Rejected":
		return true
	default:
		return false
	}
}

// Withdrawable reports whether a student may still withdraw the
// application; once the process has moved past Shortlisted the row is
// kept as an audit trail.
func Withdrawable(status string) bool {
	return status == ApplicationStatusApplied.String() || status == ApplicationStatusShortlisted.String()
}

// StatusHistoryEntry is an append-only record of a status change.
// OldStatus is nil on the entry written at application creation.
type StatusHistoryEntry struct {
	ID            string    `json:"id" db:"id"`
	ApplicationID string    `json:"application_id" db:"application_id"`
	OldStatus     *string   `json:"old_status" db:"old_status"`
	NewStatus     string    `json:"new_status" db:"new_status"`
	ChangedBy     string    `json:"changed_by" db:"changed_by"`
	Remarks       *string   `json:"remarks,omitempty" db:"remarks"`
	ChangedAt     time.Time `json:"changed_at" db:"changed_at"`
}

// ApplicationWithDrive joins in the drive columns the student cares
// about when listing their own applications.
type ApplicationWithDrive struct {
	Application
	CompanyName string    `json:"company_name" db:"company_name"`
	Role        string    `json:"role" db:"role"`
	CompanyType string    `json:"company_type" db:"company_type"`
	CTC         *float64  `json:"ctc,omitempty" db:"ctc"`
	DriveDate   time.Time `json:"drive_date" db:"drive_date"`
}

type ApplicationDetails struct {
	ApplicationWithDrive
	JobDescription *string              `json:"job_description,omitempty"`
	StatusHistory  []StatusHistoryEntry `json:"status_history"`
}

// ApplicationWithApplicant joins in the applicant and their academic
// snapshot for the admin per-drive listing.
type ApplicationWithApplicant struct {
	Application
	USN            string   `json:"usn" db:"usn"`
	FullName       string   `json:"full_name" db:"full_name"`
	Email          string   `json:"email" db:"email"`
	Phone          *string  `json:"phone,omitempty" db:"phone"`
	CGPA           *float64 `json:"cgpa,omitempty" db:"cgpa"`
	Branch         *string  `json:"branch,omitempty" db:"branch"`
	ActiveBacklogs *int     `json:"active_backlogs,omitempty" db:"active_backlogs"`
}
