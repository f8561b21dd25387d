package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.EventWithDrive, error)
	GetAll(ctx context.Context, eventType string, upcomingOnly bool) ([]models.EventWithDrive, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.EventWithDrive, error)
	GetUpcoming(ctx context.Context, limit int) ([]models.EventWithDrive, error)
	Update(ctx context.Context, id string, req *models.UpdateEventRequest) error
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	*PostgresRepository
}

func NewEventRepository(db *sql.DB, logger zerolog.Logger) EventRepository {
	return &eventRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const eventSelect = `
	SELECT e.id, e.title, e.event_type, e.description, e.related_drive_id,
	       e.event_date, e.location, e.created_by, e.created_at,
	       pd.company_name, pd.role
	FROM events e
	LEFT JOIN placement_drives pd ON e.related_drive_id = pd.id
`

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, title, event_type, description, related_drive_id, event_date, location, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.EventType,
		event.Description,
		event.RelatedDriveID,
		event.EventDate,
		event.Location,
		event.CreatedBy,
		event.CreatedAt,
	)

	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.EventWithDrive, error) {
	query := eventSelect + ` WHERE e.id = $1`

	event := &models.EventWithDrive{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.EventType,
		&event.Description,
		&event.RelatedDriveID,
		&event.EventDate,
		&event.Location,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.CompanyName,
		&event.DriveRole,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

func (r *eventRepository) GetAll(ctx context.Context, eventType string, upcomingOnly bool) ([]models.EventWithDrive, error) {
	query := eventSelect + ` WHERE 1=1`

	var args []interface{}
	if eventType != "" {
		args = append(args, eventType)
		query += ` AND e.event_type = $1`
	}
	if upcomingOnly {
		query += ` AND e.event_date >= NOW()`
	}
	query += ` ORDER BY e.event_date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *eventRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.EventWithDrive, error) {
	query := eventSelect + ` WHERE e.event_date BETWEEN $1 AND $2 ORDER BY e.event_date ASC`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *eventRepository) GetUpcoming(ctx context.Context, limit int) ([]models.EventWithDrive, error) {
	query := eventSelect + ` WHERE e.event_date >= NOW() ORDER BY e.event_date ASC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *eventRepository) Update(ctx context.Context, id string, req *models.UpdateEventRequest) error {
	query := `
		UPDATE events
		SET title = COALESCE($1, title),
		    event_type = COALESCE($2, event_type),
		    description = COALESCE($3, description),
		    related_drive_id = COALESCE($4, related_drive_id),
		    event_date = COALESCE($5, event_date),
		    location = COALESCE($6, location)
		WHERE id = $7
	`

	_, err := r.db.ExecContext(ctx, query,
		req.Title,
		req.EventType,
		req.Description,
		req.RelatedDriveID,
		req.EventDate,
		req.Location,
		id,
	)

	return err
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func scanEvents(rows *sql.Rows) ([]models.EventWithDrive, error) {
	var events []models.EventWithDrive
	for rows.Next() {
		var event models.EventWithDrive
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.EventType,
			&event.Description,
			&event.RelatedDriveID,
			&event.EventDate,
			&event.Location,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.CompanyName,
			&event.DriveRole,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
