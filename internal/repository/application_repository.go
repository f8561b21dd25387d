package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type ApplicationRepository interface {
	Submit(ctx context.Context, app *models.Application, entry *models.StatusHistoryEntry, msg *models.InboxMessage) error
	UpdateStatus(ctx context.Context, entry *models.StatusHistoryEntry, markPlaced bool, msg *models.InboxMessage) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	GetByUserAndDrive(ctx context.Context, userID, driveID string) (*models.Application, error)
	ExistsByUserAndDrive(ctx context.Context, userID, driveID string) (bool, error)
	GetByUserID(ctx context.Context, userID string) ([]models.ApplicationWithDrive, error)
	GetDetailsByID(ctx context.Context, id, userID string) (*models.ApplicationDetails, error)
	GetByDriveID(ctx context.Context, driveID string) ([]models.ApplicationWithApplicant, error)
	GetHistory(ctx context.Context, applicationID string) ([]models.StatusHistoryEntry, error)
}

type applicationRepository struct {
	*PostgresRepository
}

func NewApplicationRepository(db *sql.DB, logger zerolog.Logger) ApplicationRepository {
	return &applicationRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Submit inserts the application, its initial history row and the
// confirmation message in a single transaction. The UNIQUE(user_id,
// drive_id) constraint is the last line of defense against two
// concurrent applies for the same pair: the loser gets
// ErrDuplicateApplication at commit time.
func (r *applicationRepository) Submit(ctx context.Context, app *models.Application, entry *models.StatusHistoryEntry, msg *models.InboxMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO applications (id, user_id, drive_id, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		app.ID,
		app.UserID,
		app.DriveID,
		app.Status,
		app.AppliedAt,
		app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO application_status_history (id, application_id, old_status, new_status, changed_by, remarks, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		entry.ID,
		entry.ApplicationID,
		entry.OldStatus,
		entry.NewStatus,
		entry.ChangedBy,
		entry.Remarks,
		entry.ChangedAt,
	)
	if err != nil {
		return err
	}

	if err := insertInboxMessage(ctx, tx, msg); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateStatus applies an admin status transition atomically: the
// status column, the history append, the placed flag (Selected only)
// and the notification either all commit or none do.
func (r *applicationRepository) UpdateStatus(ctx context.Context, entry *models.StatusHistoryEntry, markPlaced bool, msg *models.InboxMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE applications
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, entry.NewStatus, time.Now(), entry.ApplicationID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO application_status_history (id, application_id, old_status, new_status, changed_by, remarks, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		entry.ID,
		entry.ApplicationID,
		entry.OldStatus,
		entry.NewStatus,
		entry.ChangedBy,
		entry.Remarks,
		entry.ChangedAt,
	)
	if err != nil {
		return err
	}

	if markPlaced {
		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET is_placed = TRUE, updated_at = $1
			WHERE id = $2
		`, time.Now(), msg.RecipientID)
		if err != nil {
			return err
		}
	}

	if err := insertInboxMessage(ctx, tx, msg); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	// History rows cascade with the application.
	query := `DELETE FROM applications WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	query := `
		SELECT id, user_id, drive_id, status, applied_at, updated_at
		FROM applications
		WHERE id = $1
	`

	app := &models.Application{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.UserID,
		&app.DriveID,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return app, err
}

func (r *applicationRepository) GetByUserAndDrive(ctx context.Context, userID, driveID string) (*models.Application, error) {
	query := `
		SELECT id, user_id, drive_id, status, applied_at, updated_at
		FROM applications
		WHERE user_id = $1 AND drive_id = $2
	`

	app := &models.Application{}
	err := r.db.QueryRowContext(ctx, query, userID, driveID).Scan(
		&app.ID,
		&app.UserID,
		&app.DriveID,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return app, err
}

func (r *applicationRepository) ExistsByUserAndDrive(ctx context.Context, userID, driveID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND drive_id = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, driveID).Scan(&exists)
	return exists, err
}

func (r *applicationRepository) GetByUserID(ctx context.Context, userID string) ([]models.ApplicationWithDrive, error) {
	query := `
		SELECT
			a.id, a.user_id, a.drive_id, a.status, a.applied_at, a.updated_at,
			pd.company_name, pd.role, pd.company_type, pd.ctc, pd.drive_date
		FROM applications a
		JOIN placement_drives pd ON a.drive_id = pd.id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.ApplicationWithDrive
	for rows.Next() {
		var app models.ApplicationWithDrive
		err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.DriveID,
			&app.Status,
			&app.AppliedAt,
			&app.UpdatedAt,
			&app.CompanyName,
			&app.Role,
			&app.CompanyType,
			&app.CTC,
			&app.DriveDate,
		)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (r *applicationRepository) GetDetailsByID(ctx context.Context, id, userID string) (*models.ApplicationDetails, error) {
	query := `
		SELECT
			a.id, a.user_id, a.drive_id, a.status, a.applied_at, a.updated_at,
			pd.company_name, pd.role, pd.company_type, pd.ctc, pd.drive_date,
			pd.job_description
		FROM applications a
		JOIN placement_drives pd ON a.drive_id = pd.id
		WHERE a.id = $1 AND a.user_id = $2
	`

	details := &models.ApplicationDetails{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&details.ID,
		&details.UserID,
		&details.DriveID,
		&details.Status,
		&details.AppliedAt,
		&details.UpdatedAt,
		&details.CompanyName,
		&details.Role,
		&details.CompanyType,
		&details.CTC,
		&details.DriveDate,
		&details.JobDescription,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	history, err := r.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	details.StatusHistory = history

	return details, nil
}

func (r *applicationRepository) GetByDriveID(ctx context.Context, driveID string) ([]models.ApplicationWithApplicant, error) {
	query := `
		SELECT
			a.id, a.user_id, a.drive_id, a.status, a.applied_at, a.updated_at,
			u.usn, u.full_name, u.email, u.phone,
			sa.cgpa, sa.branch, sa.active_backlogs
		FROM applications a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN student_academics sa ON u.id = sa.user_id
		WHERE a.drive_id = $1
		ORDER BY a.applied_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.ApplicationWithApplicant
	for rows.Next() {
		var app models.ApplicationWithApplicant
		err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.DriveID,
			&app.Status,
			&app.AppliedAt,
			&app.UpdatedAt,
			&app.USN,
			&app.FullName,
			&app.Email,
			&app.Phone,
			&app.CGPA,
			&app.Branch,
			&app.ActiveBacklogs,
		)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (r *applicationRepository) GetHistory(ctx context.Context, applicationID string) ([]models.StatusHistoryEntry, error) {
	query := `
		SELECT id, application_id, old_status, new_status, changed_by, remarks, changed_at
		FROM application_status_history
		WHERE application_id = $1
		ORDER BY changed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.StatusHistoryEntry
	for rows.Next() {
		var entry models.StatusHistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ApplicationID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.ChangedBy,
			&entry.Remarks,
			&entry.ChangedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// insertInboxMessage writes a notification inside an open transaction
// so it commits or rolls back with the lifecycle operation it belongs to.
func insertInboxMessage(ctx context.Context, tx *sql.Tx, msg *models.InboxMessage) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO inbox_messages (id, recipient_id, sender_id, subject, message, message_type, related_drive_id, is_read, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`,
		msg.ID,
		msg.RecipientID,
		msg.SenderID,
		msg.Subject,
		msg.Message,
		msg.MessageType,
		msg.RelatedDriveID,
		msg.SentAt,
	)
	return err
}
