package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type UserRepository interface {
	CreateWithAcademics(ctx context.Context, user *models.User, academics *models.StudentAcademics) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.StudentProfile, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	ListStudentIDs(ctx context.Context) ([]string, error)
}

type userRepository struct {
	*PostgresRepository
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) UserRepository {
	return &userRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// CreateWithAcademics inserts the user row and its academic record in
// one transaction so registration never leaves a student without an
// academics row.
func (r *userRepository) CreateWithAcademics(ctx context.Context, user *models.User, academics *models.StudentAcademics) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, usn, email, password_hash, full_name, phone, role, is_active, is_placed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, FALSE, $8, $9)
	`,
		user.ID,
		user.USN,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Phone,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO student_academics (user_id, branch, batch_year, updated_at)
		VALUES ($1, $2, $3, $4)
	`,
		academics.UserID,
		academics.Branch,
		academics.BatchYear,
		academics.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, usn, email, password_hash, full_name, phone, role, is_active, is_placed, created_at, updated_at
		FROM users
	` + where

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.USN,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Phone,
		&user.Role,
		&user.IsActive,
		&user.IsPlaced,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}

func (r *userRepository) GetProfile(ctx context.Context, id string) (*models.StudentProfile, error) {
	query := `
		SELECT u.id, u.usn, u.email, u.password_hash, u.full_name, u.phone, u.role,
		       u.is_active, u.is_placed, u.created_at, u.updated_at,
		       sa.user_id, sa.branch, sa.batch_year, sa.current_semester, sa.cgpa, sa.sgpa,
		       sa.total_backlogs, sa.active_backlogs, sa.tenth_percentage, sa.twelfth_percentage,
		       sa.photo_url, sa.resume_url, sa.updated_at
		FROM users u
		LEFT JOIN student_academics sa ON u.id = sa.user_id
		WHERE u.id = $1
	`

	profile := &models.StudentProfile{}
	var (
		acadUserID        sql.NullString
		branch            sql.NullString
		batchYear         sql.NullInt64
		currentSemester   sql.NullInt64
		cgpa, sgpa        sql.NullFloat64
		totalBacklogs     sql.NullInt64
		activeBacklogs    sql.NullInt64
		tenthPercentage   sql.NullFloat64
		twelfthPercentage sql.NullFloat64
		photoURL          sql.NullString
		resumeURL         sql.NullString
		acadUpdatedAt     sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.USN,
		&profile.Email,
		&profile.PasswordHash,
		&profile.FullName,
		&profile.Phone,
		&profile.Role,
		&profile.IsActive,
		&profile.IsPlaced,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&acadUserID,
		&branch,
		&batchYear,
		&currentSemester,
		&cgpa,
		&sgpa,
		&totalBacklogs,
		&activeBacklogs,
		&tenthPercentage,
		&twelfthPercentage,
		&photoURL,
		&resumeURL,
		&acadUpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if acadUserID.Valid {
		academics := &models.StudentAcademics{
			UserID:         acadUserID.String,
			Branch:         branch.String,
			BatchYear:      int(batchYear.Int64),
			TotalBacklogs:  int(totalBacklogs.Int64),
			ActiveBacklogs: int(activeBacklogs.Int64),
			UpdatedAt:      acadUpdatedAt.Time,
		}
		if currentSemester.Valid {
			v := int(currentSemester.Int64)
			academics.CurrentSemester = &v
		}
		if cgpa.Valid {
			academics.CGPA = &cgpa.Float64
		}
		if sgpa.Valid {
			academics.SGPA = &sgpa.Float64
		}
		if tenthPercentage.Valid {
			academics.TenthPercentage = &tenthPercentage.Float64
		}
		if twelfthPercentage.Valid {
			academics.TwelfthPercentage = &twelfthPercentage.Float64
		}
		if photoURL.Valid {
			academics.PhotoURL = &photoURL.String
		}
		if resumeURL.Valid {
			academics.ResumeURL = &resumeURL.String
		}
		profile.Academics = academics
	}

	return profile, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	return err
}

func (r *userRepository) ListStudentIDs(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM users WHERE role = 'student' AND is_active = TRUE`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
