package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type fakeInboxRepo struct {
	mu       sync.Mutex
	messages map[string]*models.InboxMessage
}

func newFakeInboxRepo() *fakeInboxRepo {
	return &fakeInboxRepo{messages: make(map[string]*models.InboxMessage)}
}

func (r *fakeInboxRepo) Create(ctx context.Context, msg *models.InboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *msg
	r.messages[msg.ID] = &copy
	return nil
}

func (r *fakeInboxRepo) CreateBulk(ctx context.Context, msgs []models.InboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range msgs {
		copy := msgs[i]
		r.messages[copy.ID] = &copy
	}
	return nil
}

func (r *fakeInboxRepo) GetByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]models.InboxMessageWithDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.InboxMessageWithDrive
	for _, msg := range r.messages {
		if msg.RecipientID != recipientID {
			continue
		}
		if unreadOnly && msg.IsRead {
			continue
		}
		result = append(result, models.InboxMessageWithDrive{InboxMessage: *msg})
	}
	return result, nil
}

func (r *fakeInboxRepo) GetByIDMarkingRead(ctx context.Context, id, recipientID string) (*models.InboxMessageWithDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := r.messages[id]
	if msg == nil || msg.RecipientID != recipientID {
		return nil, nil
	}
	if !msg.IsRead {
		msg.IsRead = true
		now := time.Now()
		msg.ReadAt = &now
	}
	return &models.InboxMessageWithDrive{InboxMessage: *msg}, nil
}

func (r *fakeInboxRepo) MarkRead(ctx context.Context, id, recipientID string, read bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := r.messages[id]
	if msg == nil || msg.RecipientID != recipientID {
		return false, nil
	}
	msg.IsRead = read
	return true, nil
}

func (r *fakeInboxRepo) Delete(ctx context.Context, id, recipientID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := r.messages[id]
	if msg == nil || msg.RecipientID != recipientID {
		return false, nil
	}
	delete(r.messages, id)
	return true, nil
}

func (r *fakeInboxRepo) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, msg := range r.messages {
		if msg.RecipientID == recipientID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeInboxRepo) GetPreview(ctx context.Context, recipientID string, limit int) ([]models.InboxMessageWithDrive, error) {
	msgs, err := r.GetByRecipient(ctx, recipientID, false)
	if err != nil {
		return nil, err
	}
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func TestSendBulkMessage_ExplicitRecipients(t *testing.T) {
	inboxRepo := newFakeInboxRepo()
	svc := NewInboxService(inboxRepo, newFakeUserRepo(), zerolog.Nop())

	sent, err := svc.SendBulkMessage(context.Background(), models.CurrentUser{ID: "admin-1", Role: "admin"}, &models.SendBulkMessageRequest{
		RecipientIDs: []string{"user-1", "user-2"},
		Subject:      "Drive reminder",
		Message:      "The Acme drive starts Monday.",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 messages, got %d", sent)
	}
	if len(inboxRepo.messages) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(inboxRepo.messages))
	}
	for _, msg := range inboxRepo.messages {
		if msg.MessageType != models.MessageTypeNotification.String() {
			t.Fatalf("expected default category, got %q", msg.MessageType)
		}
		if msg.SenderID == nil || *msg.SenderID != "admin-1" {
			t.Fatal("expected sender to be recorded")
		}
	}
}

func TestSendBulkMessage_EmptyListBroadcastsToStudents(t *testing.T) {
	inboxRepo := newFakeInboxRepo()
	userRepo := newFakeUserRepo()
	userRepo.users["s-1"] = &models.User{ID: "s-1", Role: "student"}
	userRepo.users["s-2"] = &models.User{ID: "s-2", Role: "student"}
	userRepo.users["a-1"] = &models.User{ID: "a-1", Role: "admin"}
	svc := NewInboxService(inboxRepo, userRepo, zerolog.Nop())

	sent, err := svc.SendBulkMessage(context.Background(), models.CurrentUser{ID: "a-1", Role: "admin"}, &models.SendBulkMessageRequest{
		Subject: "Holiday notice",
		Message: "Campus closed Friday.",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected broadcast to 2 students, got %d", sent)
	}
	for _, msg := range inboxRepo.messages {
		if msg.RecipientID == "a-1" {
			t.Fatal("broadcast must not target admins")
		}
	}
}

func TestGetMessageByID_MarksRead(t *testing.T) {
	inboxRepo := newFakeInboxRepo()
	svc := NewInboxService(inboxRepo, newFakeUserRepo(), zerolog.Nop())

	inboxRepo.messages["m-1"] = &models.InboxMessage{
		ID: "m-1", RecipientID: "user-1", Subject: "Hello",
	}

	msg, err := svc.GetMessageByID(context.Background(), "user-1", "m-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !msg.IsRead {
		t.Fatal("opening a message must mark it read")
	}
	if !inboxRepo.messages["m-1"].IsRead {
		t.Fatal("read flag must be persisted")
	}
}

func TestInboxOwnership_ReportsNotFound(t *testing.T) {
	inboxRepo := newFakeInboxRepo()
	svc := NewInboxService(inboxRepo, newFakeUserRepo(), zerolog.Nop())

	inboxRepo.messages["m-1"] = &models.InboxMessage{
		ID: "m-1", RecipientID: "user-1", Subject: "Hello",
	}

	if _, err := svc.GetMessageByID(context.Background(), "intruder", "m-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), "intruder", "m-1", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteMessage(context.Background(), "intruder", "m-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok := inboxRepo.messages["m-1"]; !ok {
		t.Fatal("message must survive a foreign delete attempt")
	}
}
