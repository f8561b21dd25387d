package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type DriveRepository interface {
	Create(ctx context.Context, drive *models.Drive) error
	GetByID(ctx context.Context, id string) (*models.Drive, error)
	GetAll(ctx context.Context, status string) ([]models.Drive, error)
	GetUpcoming(ctx context.Context, limit int) ([]models.Drive, error)
	Update(ctx context.Context, id string, req *models.UpdateDriveRequest) error
	Delete(ctx context.Context, id string) error
}

type driveRepository struct {
	*PostgresRepository
}

func NewDriveRepository(db *sql.DB, logger zerolog.Logger) DriveRepository {
	return &driveRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *driveRepository) Create(ctx context.Context, drive *models.Drive) error {
	query := `
		INSERT INTO placement_drives
			(id, company_name, role, company_type, ctc, job_description,
			 min_cgpa, max_backlogs, allowed_branches, drive_date, registration_deadline,
			 status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	var branches interface{}
	if len(drive.AllowedBranches) > 0 {
		branches = pq.Array(drive.AllowedBranches)
	}

	_, err := r.db.ExecContext(ctx, query,
		drive.ID,
		drive.CompanyName,
		drive.Role,
		drive.CompanyType,
		drive.CTC,
		drive.JobDescription,
		drive.MinCGPA,
		drive.MaxBacklogs,
		branches,
		drive.DriveDate,
		drive.RegistrationDeadline,
		drive.Status,
		drive.CreatedBy,
		drive.CreatedAt,
		drive.UpdatedAt,
	)

	return err
}

func (r *driveRepository) GetByID(ctx context.Context, id string) (*models.Drive, error) {
	query := `
		SELECT id, company_name, role, company_type, ctc, job_description,
		       min_cgpa, max_backlogs, allowed_branches, drive_date, registration_deadline,
		       status, created_by, created_at, updated_at
		FROM placement_drives
		WHERE id = $1
	`

	drive := &models.Drive{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&drive.ID,
		&drive.CompanyName,
		&drive.Role,
		&drive.CompanyType,
		&drive.CTC,
		&drive.JobDescription,
		&drive.MinCGPA,
		&drive.MaxBacklogs,
		pq.Array(&drive.AllowedBranches),
		&drive.DriveDate,
		&drive.RegistrationDeadline,
		&drive.Status,
		&drive.CreatedBy,
		&drive.CreatedAt,
		&drive.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return drive, err
}

func (r *driveRepository) GetAll(ctx context.Context, status string) ([]models.Drive, error) {
	query := `
		SELECT id, company_name, role, company_type, ctc, job_description,
		       min_cgpa, max_backlogs, allowed_branches, drive_date, registration_deadline,
		       status, created_by, created_at, updated_at
		FROM placement_drives
	`

	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY drive_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drives []models.Drive
	for rows.Next() {
		var drive models.Drive
		err := rows.Scan(
			&drive.ID,
			&drive.CompanyName,
			&drive.Role,
			&drive.CompanyType,
			&drive.CTC,
			&drive.JobDescription,
			&drive.MinCGPA,
			&drive.MaxBacklogs,
			pq.Array(&drive.AllowedBranches),
			&drive.DriveDate,
			&drive.RegistrationDeadline,
			&drive.Status,
			&drive.CreatedBy,
			&drive.CreatedAt,
			&drive.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		drives = append(drives, drive)
	}

	return drives, rows.Err()
}

func (r *driveRepository) GetUpcoming(ctx context.Context, limit int) ([]models.Drive, error) {
	query := `
		SELECT id, company_name, role, company_type, ctc, job_description,
		       min_cgpa, max_backlogs, allowed_branches, drive_date, registration_deadline,
		       status, created_by, created_at, updated_at
		FROM placement_drives
		WHERE status = 'Upcoming'
		  AND registration_deadline > NOW()
		ORDER BY drive_date ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drives []models.Drive
	for rows.Next() {
		var drive models.Drive
		err := rows.Scan(
			&drive.ID,
			&drive.CompanyName,
			&drive.Role,
			&drive.CompanyType,
			&drive.CTC,
			&drive.JobDescription,
			&drive.MinCGPA,
			&drive.MaxBacklogs,
			pq.Array(&drive.AllowedBranches),
			&drive.DriveDate,
			&drive.RegistrationDeadline,
			&drive.Status,
			&drive.CreatedBy,
			&drive.CreatedAt,
			&drive.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		drives = append(drives, drive)
	}

	return drives, rows.Err()
}

func (r *driveRepository) Update(ctx context.Context, id string, req *models.UpdateDriveRequest) error {
	query := `
		UPDATE placement_drives
		SET company_name = COALESCE($1, company_name),
		    role = COALESCE($2, role),
		    company_type = COALESCE($3, company_type),
		    ctc = COALESCE($4, ctc),
		    job_description = COALESCE($5, job_description),
		    min_cgpa = COALESCE($6, min_cgpa),
		    max_backlogs = COALESCE($7, max_backlogs),
		    allowed_branches = COALESCE($8, allowed_branches),
		    drive_date = COALESCE($9, drive_date),
		    registration_deadline = COALESCE($10, registration_deadline),
		    status = COALESCE($11, status),
		    updated_at = $12
		WHERE id = $13
	`

	var branches interface{}
	if len(req.AllowedBranches) > 0 {
		branches = pq.Array(req.AllowedBranches)
	}

	_, err := r.db.ExecContext(ctx, query,
		req.CompanyName,
		req.Role,
		req.CompanyType,
		req.CTC,
		req.JobDescription,
		req.MinCGPA,
		req.MaxBacklogs,
		branches,
		req.DriveDate,
		req.RegistrationDeadline,
		req.Status,
		time.Now(),
		id,
	)

	return err
}

func (r *driveRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM placement_drives WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
