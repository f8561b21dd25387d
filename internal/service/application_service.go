package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/Risingdell/Placement-mangement/internal/repository"
)

// TransitionPolicy decides whether a status transition is legal. The
// default policy only enforces membership in the status vocabulary;
// swap in a stricter one to enforce a transition graph without touching
// storage code.
type TransitionPolicy func(oldStatus, newStatus string) error

func PermissiveTransitionPolicy(oldStatus, newStatus string) error {
	if !models.IsValidApplicationStatus(newStatus) {
		return reject("Invalid status")
	}
	return nil
}

type ApplicationService interface {
	Apply(ctx context.Context, user models.CurrentUser, driveID string) (*models.ApplyResponse, error)
	Withdraw(ctx context.Context, user models.CurrentUser, applicationID string) error
	UpdateStatus(ctx context.Context, actor models.CurrentUser, applicationID, newStatus, remarks string) error
	GetMyApplications(ctx context.Context, userID string) ([]models.ApplicationWithDrive, error)
	GetApplicationByID(ctx context.Context, userID, applicationID string) (*models.ApplicationDetails, error)
	GetApplicationsByDrive(ctx context.Context, driveID string) ([]models.ApplicationWithApplicant, error)
}

type applicationService struct {
	appRepo      repository.ApplicationRepository
	driveRepo    repository.DriveRepository
	academicRepo repository.AcademicRepository
	policy       TransitionPolicy
	logger       zerolog.Logger
	now          func() time.Time
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	driveRepo repository.DriveRepository,
	academicRepo repository.AcademicRepository,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationService{
		appRepo:      appRepo,
		driveRepo:    driveRepo,
		academicRepo: academicRepo,
		policy:       PermissiveTransitionPolicy,
		logger:       logger,
		now:          time.Now,
	}
}

// Apply runs the precondition chain in a fixed order (placed flag,
// drive state, deadline, duplicate, profile, eligibility) and then
// submits the application, its initial history row and the
// confirmation message atomically. A concurrent duplicate loses at
// commit time and is reported as "already applied".
func (s *applicationService) Apply(ctx context.Context, user models.CurrentUser, driveID string) (*models.ApplyResponse, error) {
	if user.IsPlaced {
		return nil, reject("You are already placed and cannot apply for more drives")
	}

	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drive: %w", err)
	}
	if drive == nil {
		return nil, ErrNotFound
	}

	if !drive.AcceptsApplications() {
		return nil, reject("This drive is no longer accepting applications")
	}

	if drive.RegistrationDeadline != nil && s.now().After(*drive.RegistrationDeadline) {
		return nil, reject("Registration deadline has passed")
	}

	applied, err := s.appRepo.ExistsByUserAndDrive(ctx, user.ID, driveID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	snapshot, err := s.academicRepo.GetSnapshot(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get academic snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, reject("Please complete your academic profile before applying")
	}

	if err := CheckEligibility(snapshot, drive); err != nil {
		return nil, err
	}

	now := s.now()
	app := &models.Application{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		DriveID:   driveID,
		Status:    models.ApplicationStatusApplied.String(),
		AppliedAt: now,
		UpdatedAt: now,
	}

	entry := &models.StatusHistoryEntry{
		ID:            uuid.New().String(),
		ApplicationID: app.ID,
		OldStatus:     nil,
		NewStatus:     app.Status,
		ChangedBy:     user.ID,
		ChangedAt:     now,
	}

	notif := buildApplyNotification(drive.CompanyName)
	msg := &models.InboxMessage{
		ID:             uuid.New().String(),
		RecipientID:    user.ID,
		Subject:        notif.Subject,
		Message:        notif.Body,
		MessageType:    notif.Category,
		RelatedDriveID: &driveID,
		SentAt:         now,
	}

	if err := s.appRepo.Submit(ctx, app, entry, msg); err != nil {
		if err == repository.ErrDuplicateApplication {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	s.logger.Info().
		Str("application_id", app.ID).
		Str("user_id", user.ID).
		Str("drive_id", driveID).
		Msg("Application submitted")

	return &models.ApplyResponse{
		ID:        app.ID,
		Status:    app.Status,
		AppliedAt: app.AppliedAt,
	}, nil
}

// Withdraw deletes the student's own application while it is still at
// the Applied or Shortlisted stage. Later stages keep the row as an
// audit trail. An application owned by someone else reports not found.
func (s *applicationService) Withdraw(ctx context.Context, user models.CurrentUser, applicationID string) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil || app.UserID != user.ID {
		return ErrNotFound
	}

	if !models.Withdrawable(app.Status) {
		return reject("Cannot withdraw application at this stage")
	}

	if err := s.appRepo.Delete(ctx, applicationID); err != nil {
		return fmt.Errorf("failed to withdraw application: %w", err)
	}

	s.logger.Info().
		Str("application_id", applicationID).
		Str("user_id", user.ID).
		Msg("Application withdrawn")

	return nil
}

// UpdateStatus records an admin transition: status write, history
// append, placed flag on Selected, and the templated notification, all
// in one transaction.
func (s *applicationService) UpdateStatus(ctx context.Context, actor models.CurrentUser, applicationID, newStatus, remarks string) error {
	if !models.IsValidApplicationStatus(newStatus) {
		return reject("Invalid status")
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return ErrNotFound
	}

	if err := s.policy(app.Status, newStatus); err != nil {
		return err
	}

	drive, err := s.driveRepo.GetByID(ctx, app.DriveID)
	if err != nil {
		return fmt.Errorf("failed to get drive: %w", err)
	}
	if drive == nil {
		return ErrNotFound
	}

	oldStatus := app.Status
	now := s.now()
	entry := &models.StatusHistoryEntry{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		OldStatus:     &oldStatus,
		NewStatus:     newStatus,
		ChangedBy:     actor.ID,
		ChangedAt:     now,
	}
	if remarks != "" {
		entry.Remarks = &remarks
	}

	notif := buildStatusNotification(newStatus, drive.CompanyName, remarks)
	msg := &models.InboxMessage{
		ID:             uuid.New().String(),
		RecipientID:    app.UserID,
		SenderID:       &actor.ID,
		Subject:        notif.Subject,
		Message:        notif.Body,
		MessageType:    notif.Category,
		RelatedDriveID: &app.DriveID,
		SentAt:         now,
	}

	markPlaced := newStatus == models.ApplicationStatusSelected.String()

	if err := s.appRepo.UpdateStatus(ctx, entry, markPlaced, msg); err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	s.logger.Info().
		Str("application_id", applicationID).
		Str("old_status", oldStatus).
		Str("new_status", newStatus).
		Str("changed_by", actor.ID).
		Msg("Application status updated")

	return nil
}

func (s *applicationService) GetMyApplications(ctx context.Context, userID string) ([]models.ApplicationWithDrive, error) {
	apps, err := s.appRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}
	return apps, nil
}

func (s *applicationService) GetApplicationByID(ctx context.Context, userID, applicationID string) (*models.ApplicationDetails, error) {
	details, err := s.appRepo.GetDetailsByID(ctx, applicationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application details: %w", err)
	}
	if details == nil {
		return nil, ErrNotFound
	}
	return details, nil
}

func (s *applicationService) GetApplicationsByDrive(ctx context.Context, driveID string) ([]models.ApplicationWithApplicant, error) {
	apps, err := s.appRepo.GetByDriveID(ctx, driveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications by drive: %w", err)
	}
	return apps, nil
}
