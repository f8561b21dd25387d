package models

import (
	"time"
)

type Drive struct {
	ID                   string     `json:"id" db:"id"`
	CompanyName          string     `json:"company_name" db:"company_name"`
	Role                 string     `json:"role" db:"role"`
	CompanyType          string     `json:"company_type" db:"company_type"`
	CTC                  *float64   `json:"ctc,omitempty" db:"ctc"`
	JobDescription       *string    `json:"job_description,omitempty" db:"job_description"`
	MinCGPA              *float64   `json:"min_cgpa,omitempty" db:"min_cgpa"`
	MaxBacklogs          *int       `json:"max_backlogs,omitempty" db:"max_backlogs"`
	AllowedBranches      []string   `json:"allowed_branches,omitempty" db:"allowed_branches"`
	DriveDate            time.Time  `json:"drive_date" db:"drive_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty" db:"registration_deadline"`
	Status               string     `json:"status" db:"status"` // Upcoming, Ongoing, Closed, Cancelled
	CreatedBy            string     `json:"created_by" db:"created_by"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

type DriveStatus string

const (
	DriveStatusUpcoming  DriveStatus = "Upcoming"
	DriveStatusOngoing   DriveStatus = "Ongoing"
	DriveStatusClosed    DriveStatus = "Closed"
	DriveStatusCancelled DriveStatus = "Cancelled"
)

func (ds DriveStatus) String() string {
	return string(ds)
}

func IsValidDriveStatus(status string) bool {
	switch status {
	case "Upcoming", "Ongoing", "Closed", "Cancelled":
		return true
	default:
		return false
	}
}

// AcceptsApplications reports whether new applications may be submitted
// to the drive; only Upcoming and Ongoing drives accept them.
func (d *Drive) AcceptsApplications() bool {
	return d.Status == DriveStatusUpcoming.String() || d.Status == DriveStatusOngoing.String()
}

// DriveWithEligibility is a drive annotated with the requesting student's
// eligibility verdict, used by the drive listing.
type DriveWithEligibility struct {
	Drive
	HasApplied         bool     `json:"has_applied"`
	Eligible           bool     `json:"eligible"`
	EligibilityReasons []string `json:"eligibility_reasons,omitempty"`
}
