package models

import "time"

// Data Transfer Objects

type RegisterRequest struct {
	USN       string `json:"usn" validate:"required,min=3,max=20"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FullName  string `json:"full_name" validate:"required,min=2,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Branch    string `json:"branch" validate:"required,max=50"`
	BatchYear int    `json:"batch_year" validate:"required,min=2000,max=2100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

type ApplyRequest struct {
	DriveID string `json:"drive_id" validate:"required,uuid"`
}

type ApplyResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

type UpdateApplicationStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Remarks string `json:"remarks" validate:"omitempty,max=1000"`
}

type CreateDriveRequest struct {
	CompanyName          string     `json:"company_name" validate:"required,min=2,max=255"`
	Role                 string     `json:"role" validate:"required,min=2,max=255"`
	CompanyType          string     `json:"company_type" validate:"omitempty,max=50"`
	CTC                  *float64   `json:"ctc" validate:"omitempty,gte=0"`
	JobDescription       *string    `json:"job_description" validate:"omitempty,max=5000"`
	MinCGPA              *float64   `json:"min_cgpa" validate:"omitempty,gte=0,lte=10"`
	MaxBacklogs          *int       `json:"max_backlogs" validate:"omitempty,gte=0"`
	AllowedBranches      []string   `json:"allowed_branches" validate:"omitempty,dive,max=50"`
	DriveDate            time.Time  `json:"drive_date" validate:"required"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
}

type UpdateDriveRequest struct {
	CompanyName          *string    `json:"company_name" validate:"omitempty,min=2,max=255"`
	Role                 *string    `json:"role" validate:"omitempty,min=2,max=255"`
	CompanyType          *string    `json:"company_type" validate:"omitempty,max=50"`
	CTC                  *float64   `json:"ctc" validate:"omitempty,gte=0"`
	JobDescription       *string    `json:"job_description" validate:"omitempty,max=5000"`
	MinCGPA              *float64   `json:"min_cgpa" validate:"omitempty,gte=0,lte=10"`
	MaxBacklogs          *int       `json:"max_backlogs" validate:"omitempty,gte=0"`
	AllowedBranches      []string   `json:"allowed_branches" validate:"omitempty,dive,max=50"`
	DriveDate            *time.Time `json:"drive_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Status               *string    `json:"status" validate:"omitempty,oneof=Upcoming Ongoing Closed Cancelled"`
}

type UpdateAcademicsRequest struct {
	Branch            *string  `json:"branch" validate:"omitempty,max=50"`
	BatchYear         *int     `json:"batch_year" validate:"omitempty,min=2000,max=2100"`
	CurrentSemester   *int     `json:"current_semester" validate:"omitempty,min=1,max=10"`
	CGPA              *float64 `json:"cgpa" validate:"omitempty,gte=0,lte=10"`
	SGPA              *float64 `json:"sgpa" validate:"omitempty,gte=0,lte=10"`
	TotalBacklogs     *int     `json:"total_backlogs" validate:"omitempty,gte=0"`
	ActiveBacklogs    *int     `json:"active_backlogs" validate:"omitempty,gte=0"`
	TenthPercentage   *float64 `json:"tenth_percentage" validate:"omitempty,gte=0,lte=100"`
	TwelfthPercentage *float64 `json:"twelfth_percentage" validate:"omitempty,gte=0,lte=100"`
}

type AddSkillRequest struct {
	SkillName   string `json:"skill_name" validate:"required,max=100"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Proficiency string `json:"proficiency" validate:"omitempty,max=50"`
}

type AddProjectRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	TechStack   *string    `json:"tech_stack" validate:"omitempty,max=255"`
	Status      string     `json:"status" validate:"omitempty,max=20"`
	IsOngoing   bool       `json:"is_ongoing"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ProjectURL  *string    `json:"project_url" validate:"omitempty,max=512"`
	GithubURL   *string    `json:"github_url" validate:"omitempty,max=512"`
}

type UpdateProjectRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	TechStack   *string    `json:"tech_stack" validate:"omitempty,max=255"`
	Status      *string    `json:"status" validate:"omitempty,max=20"`
	IsOngoing   *bool      `json:"is_ongoing"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ProjectURL  *string    `json:"project_url" validate:"omitempty,max=512"`
	GithubURL   *string    `json:"github_url" validate:"omitempty,max=512"`
}

type AddAchievementRequest struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Type           string     `json:"type" validate:"omitempty,max=50"`
	Issuer         *string    `json:"issuer" validate:"omitempty,max=255"`
	DateAchieved   *time.Time `json:"date_achieved"`
	Description    *string    `json:"description" validate:"omitempty,max=5000"`
	CertificateURL *string    `json:"certificate_url" validate:"omitempty,max=512"`
}

type SendMessageRequest struct {
	RecipientID    string  `json:"recipient_id" validate:"required,uuid"`
	Subject        string  `json:"subject" validate:"required,max=255"`
	Message        string  `json:"message" validate:"required,max=5000"`
	MessageType    string  `json:"message_type" validate:"omitempty,oneof=Notification Shortlist Result"`
	RelatedDriveID *string `json:"related_drive_id" validate:"omitempty,uuid"`
}

// SendBulkMessageRequest with no recipient_ids broadcasts to every
// active student.
type SendBulkMessageRequest struct {
	RecipientIDs   []string `json:"recipient_ids" validate:"omitempty,dive,uuid"`
	Subject        string   `json:"subject" validate:"required,max=255"`
	Message        string   `json:"message" validate:"required,max=5000"`
	MessageType    string   `json:"message_type" validate:"omitempty,oneof=Notification Shortlist Result"`
	RelatedDriveID *string  `json:"related_drive_id" validate:"omitempty,uuid"`
}

type CreateEventRequest struct {
	Title          string    `json:"title" validate:"required,min=2,max=255"`
	EventType      string    `json:"event_type" validate:"omitempty,max=50"`
	Description    *string   `json:"description" validate:"omitempty,max=5000"`
	RelatedDriveID *string   `json:"related_drive_id" validate:"omitempty,uuid"`
	EventDate      time.Time `json:"event_date" validate:"required"`
	Location       *string   `json:"location" validate:"omitempty,max=255"`
}

type UpdateEventRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=2,max=255"`
	EventType      *string    `json:"event_type" validate:"omitempty,max=50"`
	Description    *string    `json:"description" validate:"omitempty,max=5000"`
	RelatedDriveID *string    `json:"related_drive_id" validate:"omitempty,uuid"`
	EventDate      *time.Time `json:"event_date"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
}

type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
