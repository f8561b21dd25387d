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

type DriveService interface {
	GetDrives(ctx context.Context, user models.CurrentUser, status string) ([]models.DriveWithEligibility, error)
	GetDriveByID(ctx context.Context, user models.CurrentUser, id string) (*models.DriveWithEligibility, error)
	GetUpcomingDrives(ctx context.Context) ([]models.Drive, error)
	CreateDrive(ctx context.Context, actor models.CurrentUser, req *models.CreateDriveRequest) (*models.Drive, error)
	UpdateDrive(ctx context.Context, id string, req *models.UpdateDriveRequest) error
	DeleteDrive(ctx context.Context, id string) error
}

type driveService struct {
	driveRepo    repository.DriveRepository
	appRepo      repository.ApplicationRepository
	academicRepo repository.AcademicRepository
	logger       zerolog.Logger
}

func NewDriveService(
	driveRepo repository.DriveRepository,
	appRepo repository.ApplicationRepository,
	academicRepo repository.AcademicRepository,
	logger zerolog.Logger,
) DriveService {
	return &driveService{
		driveRepo:    driveRepo,
		appRepo:      appRepo,
		academicRepo: academicRepo,
		logger:       logger,
	}
}

// GetDrives lists drives annotated with the requesting student's
// eligibility, collecting every violated rule so the UI can show all
// of them at once.
func (s *driveService) GetDrives(ctx context.Context, user models.CurrentUser, status string) ([]models.DriveWithEligibility, error) {
	snapshot, err := s.academicRepo.GetSnapshot(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get academic snapshot: %w", err)
	}

	drives, err := s.driveRepo.GetAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get drives: %w", err)
	}

	result := make([]models.DriveWithEligibility, 0, len(drives))
	for _, drive := range drives {
		applied, err := s.appRepo.ExistsByUserAndDrive(ctx, user.ID, drive.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check application: %w", err)
		}

		verdict := EvaluateEligibility(snapshot, &drive, applied, user.IsPlaced)
		result = append(result, models.DriveWithEligibility{
			Drive:              drive,
			HasApplied:         applied,
			Eligible:           verdict.Eligible,
			EligibilityReasons: verdict.Reasons,
		})
	}

	return result, nil
}

func (s *driveService) GetDriveByID(ctx context.Context, user models.CurrentUser, id string) (*models.DriveWithEligibility, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get drive: %w", err)
	}
	if drive == nil {
		return nil, ErrNotFound
	}

	applied, err := s.appRepo.ExistsByUserAndDrive(ctx, user.ID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check application: %w", err)
	}

	snapshot, err := s.academicRepo.GetSnapshot(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get academic snapshot: %w", err)
	}

	verdict := EvaluateEligibility(snapshot, drive, applied, user.IsPlaced)

	return &models.DriveWithEligibility{
		Drive:              *drive,
		HasApplied:         applied,
		Eligible:           verdict.Eligible,
		EligibilityReasons: verdict.Reasons,
	}, nil
}

func (s *driveService) GetUpcomingDrives(ctx context.Context) ([]models.Drive, error) {
	drives, err := s.driveRepo.GetUpcoming(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming drives: %w", err)
	}
	return drives, nil
}

func (s *driveService) CreateDrive(ctx context.Context, actor models.CurrentUser, req *models.CreateDriveRequest) (*models.Drive, error) {
	now := time.Now()
	drive := &models.Drive{
		ID:                   uuid.New().String(),
		CompanyName:          req.CompanyName,
		Role:                 req.Role,
		CompanyType:          req.CompanyType,
		CTC:                  req.CTC,
		JobDescription:       req.JobDescription,
		MinCGPA:              req.MinCGPA,
		MaxBacklogs:          req.MaxBacklogs,
		AllowedBranches:      req.AllowedBranches,
		DriveDate:            req.DriveDate,
		RegistrationDeadline: req.RegistrationDeadline,
		Status:               models.DriveStatusUpcoming.String(),
		CreatedBy:            actor.ID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if drive.CompanyType == "" {
		drive.CompanyType = "Service"
	}

	if err := s.driveRepo.Create(ctx, drive); err != nil {
		return nil, fmt.Errorf("failed to create drive: %w", err)
	}

	s.logger.Info().
		Str("drive_id", drive.ID).
		Str("company", drive.CompanyName).
		Msg("Placement drive created")

	return drive, nil
}

func (s *driveService) UpdateDrive(ctx context.Context, id string, req *models.UpdateDriveRequest) error {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get drive: %w", err)
	}
	if drive == nil {
		return ErrNotFound
	}

	if err := s.driveRepo.Update(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update drive: %w", err)
	}

	return nil
}

func (s *driveService) DeleteDrive(ctx context.Context, id string) error {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get drive: %w", err)
	}
	if drive == nil {
		return ErrNotFound
	}

	if err := s.driveRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete drive: %w", err)
	}

	s.logger.Info().Str("drive_id", id).Msg("Placement drive deleted")

	return nil
}
