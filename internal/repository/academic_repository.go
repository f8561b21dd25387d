package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type AcademicRepository interface {
	GetSnapshot(ctx context.Context, userID string) (*models.AcademicSnapshot, error)
	Update(ctx context.Context, userID string, req *models.UpdateAcademicsRequest) error
	SetPhotoURL(ctx context.Context, userID, url string) error
	SetResumeURL(ctx context.Context, userID, url string) error
}

type academicRepository struct {
	*PostgresRepository
}

func NewAcademicRepository(db *sql.DB, logger zerolog.Logger) AcademicRepository {
	return &academicRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// GetSnapshot returns nil when the student has no academic record or
// has not yet filled in a CGPA; both mean the profile is incomplete
// for eligibility purposes.
func (r *academicRepository) GetSnapshot(ctx context.Context, userID string) (*models.AcademicSnapshot, error) {
	query := `
		SELECT cgpa, active_backlogs, branch
		FROM student_academics
		WHERE user_id = $1 AND cgpa IS NOT NULL
	`

	snapshot := &models.AcademicSnapshot{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&snapshot.CGPA,
		&snapshot.ActiveBacklogs,
		&snapshot.Branch,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return snapshot, err
}

func (r *academicRepository) Update(ctx context.Context, userID string, req *models.UpdateAcademicsRequest) error {
	query := `
		UPDATE student_academics
		SET branch = COALESCE($1, branch),
		    batch_year = COALESCE($2, batch_year),
		    current_semester = COALESCE($3, current_semester),
		    cgpa = COALESCE($4, cgpa),
		    sgpa = COALESCE($5, sgpa),
		    total_backlogs = COALESCE($6, total_backlogs),
		    active_backlogs = COALESCE($7, active_backlogs),
		    tenth_percentage = COALESCE($8, tenth_percentage),
		    twelfth_percentage = COALESCE($9, twelfth_percentage),
		    updated_at = $10
		WHERE user_id = $11
	`

	_, err := r.db.ExecContext(ctx, query,
		req.Branch,
		req.BatchYear,
		req.CurrentSemester,
		req.CGPA,
		req.SGPA,
		req.TotalBacklogs,
		req.ActiveBacklogs,
		req.TenthPercentage,
		req.TwelfthPercentage,
		time.Now(),
		userID,
	)

	return err
}

func (r *academicRepository) SetPhotoURL(ctx context.Context, userID, url string) error {
	query := `UPDATE student_academics SET photo_url = $1, updated_at = $2 WHERE user_id = $3`
	_, err := r.db.ExecContext(ctx, query, url, time.Now(), userID)
	return err
}

func (r *academicRepository) SetResumeURL(ctx context.Context, userID, url string) error {
	query := `UPDATE student_academics SET resume_url = $1, updated_at = $2 WHERE user_id = $3`
	_, err := r.db.ExecContext(ctx, query, url, time.Now(), userID)
	return err
}
