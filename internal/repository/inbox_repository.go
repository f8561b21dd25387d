package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type InboxRepository interface {
	Create(ctx context.Context, msg *models.InboxMessage) error
	CreateBulk(ctx context.Context, msgs []models.InboxMessage) error
	GetByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]models.InboxMessageWithDrive, error)
	GetByIDMarkingRead(ctx context.Context, id, recipientID string) (*models.InboxMessageWithDrive, error)
	MarkRead(ctx context.Context, id, recipientID string, read bool) (bool, error)
	Delete(ctx context.Context, id, recipientID string) (bool, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	GetPreview(ctx context.Context, recipientID string, limit int) ([]models.InboxMessageWithDrive, error)
}

type inboxRepository struct {
	*PostgresRepository
}

func NewInboxRepository(db *sql.DB, logger zerolog.Logger) InboxRepository {
	return &inboxRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *inboxRepository) Create(ctx context.Context, msg *models.InboxMessage) error {
	query := `
		INSERT INTO inbox_messages (id, recipient_id, sender_id, subject, message, message_type, related_drive_id, is_read, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
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

// CreateBulk inserts all messages in one transaction; a bulk send
// either reaches every recipient or none.
func (r *inboxRepository) CreateBulk(ctx context.Context, msgs []models.InboxMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inbox_messages (id, recipient_id, sender_id, subject, message, message_type, related_drive_id, is_read, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, msg := range msgs {
		_, err := stmt.ExecContext(ctx,
			msg.ID,
			msg.RecipientID,
			msg.SenderID,
			msg.Subject,
			msg.Message,
			msg.MessageType,
			msg.RelatedDriveID,
			msg.SentAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *inboxRepository) GetByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]models.InboxMessageWithDrive, error) {
	query := `
		SELECT im.id, im.recipient_id, im.sender_id, im.subject, im.message, im.message_type,
		       im.related_drive_id, im.is_read, im.sent_at, im.read_at,
		       pd.company_name, pd.role
		FROM inbox_messages im
		LEFT JOIN placement_drives pd ON im.related_drive_id = pd.id
		WHERE im.recipient_id = $1
	`
	if unreadOnly {
		query += ` AND im.is_read = FALSE`
	}
	query += ` ORDER BY im.sent_at DESC`

	rows, err := r.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// GetByIDMarkingRead fetches a message and flips its read flag in the
// same transaction, matching the "opening the message reads it"
// behavior of the inbox.
func (r *inboxRepository) GetByIDMarkingRead(ctx context.Context, id, recipientID string) (*models.InboxMessageWithDrive, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT im.id, im.recipient_id, im.sender_id, im.subject, im.message, im.message_type,
		       im.related_drive_id, im.is_read, im.sent_at, im.read_at,
		       pd.company_name, pd.role
		FROM inbox_messages im
		LEFT JOIN placement_drives pd ON im.related_drive_id = pd.id
		WHERE im.id = $1 AND im.recipient_id = $2
	`

	msg := &models.InboxMessageWithDrive{}
	err = tx.QueryRowContext(ctx, query, id, recipientID).Scan(
		&msg.ID,
		&msg.RecipientID,
		&msg.SenderID,
		&msg.Subject,
		&msg.Message,
		&msg.MessageType,
		&msg.RelatedDriveID,
		&msg.IsRead,
		&msg.SentAt,
		&msg.ReadAt,
		&msg.CompanyName,
		&msg.DriveRole,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !msg.IsRead {
		now := time.Now()
		_, err = tx.ExecContext(ctx, `
			UPDATE inbox_messages SET is_read = TRUE, read_at = $1 WHERE id = $2
		`, now, id)
		if err != nil {
			return nil, err
		}
		msg.IsRead = true
		msg.ReadAt = &now
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return msg, nil
}

func (r *inboxRepository) MarkRead(ctx context.Context, id, recipientID string, read bool) (bool, error) {
	var result sql.Result
	var err error

	if read {
		result, err = r.db.ExecContext(ctx, `
			UPDATE inbox_messages SET is_read = TRUE, read_at = $1 WHERE id = $2 AND recipient_id = $3
		`, time.Now(), id, recipientID)
	} else {
		result, err = r.db.ExecContext(ctx, `
			UPDATE inbox_messages SET is_read = FALSE, read_at = NULL WHERE id = $1 AND recipient_id = $2
		`, id, recipientID)
	}
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *inboxRepository) Delete(ctx context.Context, id, recipientID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM inbox_messages WHERE id = $1 AND recipient_id = $2
	`, id, recipientID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *inboxRepository) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	query := `SELECT COUNT(*) FROM inbox_messages WHERE recipient_id = $1 AND is_read = FALSE`

	var count int
	err := r.db.QueryRowContext(ctx, query, recipientID).Scan(&count)
	return count, err
}

func (r *inboxRepository) GetPreview(ctx context.Context, recipientID string, limit int) ([]models.InboxMessageWithDrive, error) {
	query := `
		SELECT im.id, im.recipient_id, im.sender_id, im.subject, im.message, im.message_type,
		       im.related_drive_id, im.is_read, im.sent_at, im.read_at,
		       pd.company_name, pd.role
		FROM inbox_messages im
		LEFT JOIN placement_drives pd ON im.related_drive_id = pd.id
		WHERE im.recipient_id = $1
		ORDER BY im.sent_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]models.InboxMessageWithDrive, error) {
	var msgs []models.InboxMessageWithDrive
	for rows.Next() {
		var msg models.InboxMessageWithDrive
		err := rows.Scan(
			&msg.ID,
			&msg.RecipientID,
			&msg.SenderID,
			&msg.Subject,
			&msg.Message,
			&msg.MessageType,
			&msg.RelatedDriveID,
			&msg.IsRead,
			&msg.SentAt,
			&msg.ReadAt,
			&msg.CompanyName,
			&msg.DriveRole,
		)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, rows.Err()
}
