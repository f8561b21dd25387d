package models

import (
	"time"
)

type Event struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	EventType      string    `json:"event_type" db:"event_type"`
	Description    *string   `json:"description,omitempty" db:"description"`
	RelatedDriveID *string   `json:"related_drive_id,omitempty" db:"related_drive_id"`
	EventDate      time.Time `json:"event_date" db:"event_date"`
	Location       *string   `json:"location,omitempty" db:"location"`
	CreatedBy      string    `json:"created_by" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type EventWithDrive struct {
	Event
	CompanyName *string `json:"company_name,omitempty" db:"company_name"`
	DriveRole   *string `json:"drive_role,omitempty" db:"drive_role"`
}
