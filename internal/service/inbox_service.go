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

type InboxService interface {
	GetMessages(ctx context.Context, userID string, unreadOnly bool) ([]models.InboxMessageWithDrive, error)
	GetMessageByID(ctx context.Context, userID, messageID string) (*models.InboxMessageWithDrive, error)
	MarkRead(ctx context.Context, userID, messageID string, read bool) error
	DeleteMessage(ctx context.Context, userID, messageID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
	GetPreview(ctx context.Context, userID string) ([]models.InboxMessageWithDrive, error)
	SendMessage(ctx context.Context, sender models.CurrentUser, req *models.SendMessageRequest) (*models.InboxMessage, error)
	SendBulkMessage(ctx context.Context, sender models.CurrentUser, req *models.SendBulkMessageRequest) (int, error)
}

type inboxService struct {
	inboxRepo repository.InboxRepository
	userRepo  repository.UserRepository
	logger    zerolog.Logger
}

func NewInboxService(inboxRepo repository.InboxRepository, userRepo repository.UserRepository, logger zerolog.Logger) InboxService {
	return &inboxService{
		inboxRepo: inboxRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (s *inboxService) GetMessages(ctx context.Context, userID string, unreadOnly bool) ([]models.InboxMessageWithDrive, error) {
	msgs, err := s.inboxRepo.GetByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return msgs, nil
}

// GetMessageByID marks the message read as a side effect of opening it.
func (s *inboxService) GetMessageByID(ctx context.Context, userID, messageID string) (*models.InboxMessageWithDrive, error) {
	msg, err := s.inboxRepo.GetByIDMarkingRead(ctx, messageID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	if msg == nil {
		return nil, ErrNotFound
	}
	return msg, nil
}

func (s *inboxService) MarkRead(ctx context.Context, userID, messageID string, read bool) error {
	ok, err := s.inboxRepo.MarkRead(ctx, messageID, userID, read)
	if err != nil {
		return fmt.Errorf("failed to mark message: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *inboxService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	ok, err := s.inboxRepo.Delete(ctx, messageID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *inboxService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.inboxRepo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (s *inboxService) GetPreview(ctx context.Context, userID string) ([]models.InboxMessageWithDrive, error) {
	msgs, err := s.inboxRepo.GetPreview(ctx, userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to get inbox preview: %w", err)
	}
	return msgs, nil
}

func (s *inboxService) SendMessage(ctx context.Context, sender models.CurrentUser, req *models.SendMessageRequest) (*models.InboxMessage, error) {
	msg := newMessage(sender.ID, req.RecipientID, req.Subject, req.Message, req.MessageType, req.RelatedDriveID)

	if err := s.inboxRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return msg, nil
}

// SendBulkMessage delivers one message to many inboxes. An empty
// recipient list means broadcast to every active student.
func (s *inboxService) SendBulkMessage(ctx context.Context, sender models.CurrentUser, req *models.SendBulkMessageRequest) (int, error) {
	recipients := req.RecipientIDs
	if len(recipients) == 0 {
		var err error
		recipients, err = s.userRepo.ListStudentIDs(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to list students: %w", err)
		}
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	msgs := make([]models.InboxMessage, 0, len(recipients))
	for _, recipientID := range recipients {
		msgs = append(msgs, *newMessage(sender.ID, recipientID, req.Subject, req.Message, req.MessageType, req.RelatedDriveID))
	}

	if err := s.inboxRepo.CreateBulk(ctx, msgs); err != nil {
		return 0, fmt.Errorf("failed to send bulk messages: %w", err)
	}

	s.logger.Info().
		Int("recipients", len(msgs)).
		Str("sender_id", sender.ID).
		Msg("Bulk message sent")

	return len(msgs), nil
}

func newMessage(senderID, recipientID, subject, body, messageType string, relatedDriveID *string) *models.InboxMessage {
	if messageType == "" {
		messageType = models.MessageTypeNotification.String()
	}
	return &models.InboxMessage{
		ID:             uuid.New().String(),
		RecipientID:    recipientID,
		SenderID:       &senderID,
		Subject:        subject,
		Message:        body,
		MessageType:    messageType,
		RelatedDriveID: relatedDriveID,
		SentAt:         time.Now(),
	}
}
