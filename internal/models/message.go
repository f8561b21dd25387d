package models

import (
	"time"
)

type InboxMessage struct {
	ID             string     `json:"id" db:"id"`
	RecipientID    string     `json:"recipient_id" db:"recipient_id"`
	SenderID       *string    `json:"sender_id,omitempty" db:"sender_id"`
	Subject        string     `json:"subject" db:"subject"`
	Message        string     `json:"message" db:"message"`
	MessageType    string     `json:"message_type" db:"message_type"` // Notification, Shortlist, Result
	RelatedDriveID *string    `json:"related_drive_id,omitempty" db:"related_drive_id"`
	IsRead         bool       `json:"is_read" db:"is_read"`
	SentAt         time.Time  `json:"sent_at" db:"sent_at"`
	ReadAt         *time.Time `json:"read_at,omitempty" db:"read_at"`
}

type MessageType string

const (
	MessageTypeNotification MessageType = "Notification"
	MessageTypeShortlist    MessageType = "Shortlist"
	MessageTypeResult       MessageType = "Result"
)

func (mt MessageType) String() string {
	return string(mt)
}

// InboxMessageWithDrive carries the related drive's display fields for
// inbox listings.
type InboxMessageWithDrive struct {
	InboxMessage
	CompanyName *string `json:"company_name,omitempty" db:"company_name"`
	DriveRole   *string `json:"drive_role,omitempty" db:"drive_role"`
}

// Notification is the rendered content of a lifecycle notification
// before it is written as an inbox message.
type Notification struct {
	Subject  string
	Body     string
	Category string
}
