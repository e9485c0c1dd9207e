package services

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
	"github.com/google/uuid"
)

// NotificationService stores in-app notifications and mirrors them to the event bus.
type NotificationService struct {
	repo      repositories.NotificationRepository
	publisher events.Publisher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repositories.NotificationRepository, publisher events.Publisher) *NotificationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NotificationService{repo: repo, publisher: publisher}
}

// Notify stores n for its recipient and publishes it. Self-notifications are dropped.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) error {
	if n.RecipientID == "" || n.RecipientID == n.ActorID {
		return nil
	}
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	n.IsRead = false
	if err := s.repo.SaveNotification(ctx, &n); err != nil {
		return err
	}
	return s.publisher.Publish(ctx, events.Event{
		Subject:    events.SubjectNotificationCreated,
		ActorID:    n.ActorID,
		TargetID:   n.RecipientID,
		Payload:    n,
		OccurredAt: n.CreatedAt,
	})
}

// Publish forwards a domain event to the bus.
func (s *NotificationService) Publish(ctx context.Context, event events.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return s.publisher.Publish(ctx, event)
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID string) ([]models.Notification, error) {
	list, err := s.repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// UnreadCount counts the recipient's unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	list, err := s.repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range list {
		if !item.IsRead {
			n++
		}
	}
	return n, nil
}

// MarkRead marks one of the recipient's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, id string) (*models.Notification, error) {
	n, err := s.repo.GetNotification(ctx, recipientID, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	n.IsRead = true
	if err := s.repo.SaveNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks every unread notification of the recipient as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) (int, error) {
	list, err := s.repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range list {
		if list[i].IsRead {
			continue
		}
		list[i].IsRead = true
		if err := s.repo.SaveNotification(ctx, &list[i]); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}
