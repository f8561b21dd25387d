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

type EventService interface {
	GetEvents(ctx context.Context, eventType string, upcomingOnly bool) ([]models.EventWithDrive, error)
	GetEventByID(ctx context.Context, id string) (*models.EventWithDrive, error)
	GetEventsByDateRange(ctx context.Context, start, end time.Time) ([]models.EventWithDrive, error)
	GetUpcomingEvents(ctx context.Context) ([]models.EventWithDrive, error)
	GetCalendar(ctx context.Context, year, month int) (map[string][]models.EventWithDrive, error)
	CreateEvent(ctx context.Context, actor models.CurrentUser, req *models.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, req *models.UpdateEventRequest) error
	DeleteEvent(ctx context.Context, id string) error
}

type eventService struct {
	eventRepo repository.EventRepository
	logger    zerolog.Logger
}

func NewEventService(eventRepo repository.EventRepository, logger zerolog.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (s *eventService) GetEvents(ctx context.Context, eventType string, upcomingOnly bool) ([]models.EventWithDrive, error) {
	events, err := s.eventRepo.GetAll(ctx, eventType, upcomingOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*models.EventWithDrive, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *eventService) GetEventsByDateRange(ctx context.Context, start, end time.Time) ([]models.EventWithDrive, error) {
	events, err := s.eventRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetUpcomingEvents(ctx context.Context) ([]models.EventWithDrive, error) {
	events, err := s.eventRepo.GetUpcoming(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}
	return events, nil
}

// GetCalendar groups a month's events by day (YYYY-MM-DD keys).
func (s *eventService) GetCalendar(ctx context.Context, year, month int) (map[string][]models.EventWithDrive, error) {
	if month < 1 || month > 12 {
		return nil, reject("Month must be between 1 and 12")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	events, err := s.eventRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar events: %w", err)
	}

	byDate := make(map[string][]models.EventWithDrive)
	for _, event := range events {
		day := event.EventDate.Format("2006-01-02")
		byDate[day] = append(byDate[day], event)
	}

	return byDate, nil
}

func (s *eventService) CreateEvent(ctx context.Context, actor models.CurrentUser, req *models.CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		ID:             uuid.New().String(),
		Title:          req.Title,
		EventType:      req.EventType,
		Description:    req.Description,
		RelatedDriveID: req.RelatedDriveID,
		EventDate:      req.EventDate,
		Location:       req.Location,
		CreatedBy:      actor.ID,
		CreatedAt:      time.Now(),
	}
	if event.EventType == "" {
		event.EventType = "Other"
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("title", event.Title).
		Msg("Event created")

	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, req *models.UpdateEventRequest) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrNotFound
	}

	if err := s.eventRepo.Update(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrNotFound
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}
