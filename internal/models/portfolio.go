package models

import (
	"time"
)

type Skill struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	SkillName   string    `json:"skill_name" db:"skill_name"`
	Category    string    `json:"category" db:"category"`
	Proficiency string    `json:"proficiency" db:"proficiency"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Project struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	TechStack   *string    `json:"tech_stack,omitempty" db:"tech_stack"`
	Status      string     `json:"status" db:"status"`
	IsOngoing   bool       `json:"is_ongoing" db:"is_ongoing"`
	StartDate   *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	ProjectURL  *string    `json:"project_url,omitempty" db:"project_url"`
	GithubURL   *string    `json:"github_url,omitempty" db:"github_url"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type Achievement struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	Title          string     `json:"title" db:"title"`
	Type           string     `json:"type" db:"type"`
	Issuer         *string    `json:"issuer,omitempty" db:"issuer"`
	DateAchieved   *time.Time `json:"date_achieved,omitempty" db:"date_achieved"`
	Description    *string    `json:"description,omitempty" db:"description"`
	CertificateURL *string    `json:"certificate_url,omitempty" db:"certificate_url"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// EligibilityStatus is the student-facing overview of how they stand
// against the baseline placement criteria.
type EligibilityStatus struct {
	Eligible       bool                `json:"eligible"`
	CGPA           float64             `json:"cgpa"`
	ActiveBacklogs int                 `json:"active_backlogs"`
	IsPlaced       bool                `json:"is_placed"`
	OngoingProject *Project            `json:"ongoing_project"`
	Criteria       EligibilityCriteria `json:"criteria"`
}

type EligibilityCriteria struct {
	MinCGPA     float64 `json:"min_cgpa"`
	MaxBacklogs int     `json:"max_backlogs"`
}
