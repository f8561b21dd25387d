package models

import (
	"time"
)

type StudentAcademics struct {
	UserID            string    `json:"user_id" db:"user_id"`
	Branch            string    `json:"branch" db:"branch"`
	BatchYear         int       `json:"batch_year" db:"batch_year"`
	CurrentSemester   *int      `json:"current_semester,omitempty" db:"current_semester"`
	CGPA              *float64  `json:"cgpa,omitempty" db:"cgpa"`
	SGPA              *float64  `json:"sgpa,omitempty" db:"sgpa"`
	TotalBacklogs     int       `json:"total_backlogs" db:"total_backlogs"`
	ActiveBacklogs    int       `json:"active_backlogs" db:"active_backlogs"`
	TenthPercentage   *float64  `json:"tenth_percentage,omitempty" db:"tenth_percentage"`
	TwelfthPercentage *float64  `json:"twelfth_percentage,omitempty" db:"twelfth_percentage"`
	PhotoURL          *string   `json:"photo_url,omitempty" db:"photo_url"`
	ResumeURL         *string   `json:"resume_url,omitempty" db:"resume_url"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// AcademicSnapshot is the subset of the academic record that eligibility
// rules are evaluated against.
type AcademicSnapshot struct {
	CGPA           float64 `json:"cgpa" db:"cgpa"`
	ActiveBacklogs int     `json:"active_backlogs" db:"active_backlogs"`
	Branch         string  `json:"branch" db:"branch"`
}

type StudentProfile struct {
	User
	Academics    *StudentAcademics `json:"academics,omitempty"`
	Skills       []Skill           `json:"skills"`
	Projects     []Project         `json:"projects"`
	Achievements []Achievement     `json:"achievements"`
}
