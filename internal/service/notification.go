package service

import (
	"fmt"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

// buildStatusNotification renders the inbox message for a status
// transition. Pure templating keyed by status; the default branch
// covers values outside the vocabulary so the function is total.
func buildStatusNotification(status, companyName, remarks string) models.Notification {
	var subject, body string

	switch status {
	case models.ApplicationStatusShortlisted.String():
		subject = fmt.Sprintf("Shortlisted - %s", companyName)
		body = fmt.Sprintf("Congratulations! You have been shortlisted for %s. %s",
			companyName, orDefault(remarks, "Further details will be shared soon."))
	case models.ApplicationStatusExamScheduled.String():
		subject = fmt.Sprintf("Exam Scheduled - %s", companyName)
		body = fmt.Sprintf("Your online exam for %s has been scheduled. %s",
			companyName, orDefault(remarks, "Check your email for details."))
	case models.ApplicationStatusInterviewScheduled.String():
		subject = fmt.Sprintf("Interview Scheduled - %s", companyName)
		body = fmt.Sprintf("Your interview for %s has been scheduled. %s",
			companyName, orDefault(remarks, "Check your email for details."))
	case models.ApplicationStatusSelected.String():
		subject = fmt.Sprintf("Congratulations! Selected at %s", companyName)
		body = fmt.Sprintf("Congratulations! You have been selected for %s. %s",
			companyName, orDefault(remarks, "Further details will be communicated soon."))
	case models.ApplicationStatusRejected.String():
		subject = fmt.Sprintf("Application Update - %s", companyName)
		body = fmt.Sprintf("Thank you for your interest in %s. %s",
			companyName, orDefault(remarks, "Unfortunately, we are unable to proceed with your application at this time."))
	default:
		subject = fmt.Sprintf("Application Update - %s", companyName)
		body = fmt.Sprintf("Your application status has been updated. %s", remarks)
	}

	return models.Notification{
		Subject:  subject,
		Body:     body,
		Category: notificationCategory(status),
	}
}

// buildApplyNotification is the submission confirmation written inside
// the apply transaction.
func buildApplyNotification(companyName string) models.Notification {
	return models.Notification{
		Subject: fmt.Sprintf("Application Submitted - %s", companyName),
		Body: fmt.Sprintf("Your application for %s has been successfully submitted. "+
			"You will be notified about further updates.", companyName),
		Category: models.MessageTypeNotification.String(),
	}
}

// notificationCategory is advisory metadata for inbox filtering only.
func notificationCategory(status string) string {
	switch status {
	case models.ApplicationStatusShortlisted.String():
		return models.MessageTypeShortlist.String()
	case models.ApplicationStatusSelected.String():
		return models.MessageTypeResult.String()
	default:
		return models.MessageTypeNotification.String()
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
