package repositories

import (
	"context"
	"encoding/json"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/anonto42/chefhub/backend/internal/models"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	SaveNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, recipientID, id string) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
}

// KVNotificationRepository implements NotificationRepository on the kv store
type KVNotificationRepository struct {
	store kv.Store
}

// NewKVNotificationRepository creates a new KVNotificationRepository
func NewKVNotificationRepository(store kv.Store) *KVNotificationRepository {
	return &KVNotificationRepository{store: store}
}

func (r *KVNotificationRepository) SaveNotification(ctx context.Context, n *models.Notification) error {
	return kv.SetJSON(ctx, r.store, NotificationKey(n.RecipientID, n.ID), n)
}

func (r *KVNotificationRepository) GetNotification(ctx context.Context, recipientID, id string) (*models.Notification, error) {
	var n models.Notification
	found, err := kv.GetJSON(ctx, r.store, NotificationKey(recipientID, id), &n)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("notification %s not found", id)
	}
	return &n, nil
}

// ListByRecipient returns the recipient's notifications in key order.
func (r *KVNotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	entries, err := r.store.ScanPrefix(ctx, notificationRecipientPrefix(recipientID))
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(entries))
	for _, e := range entries {
		var n models.Notification
		if err := json.Unmarshal(e.Value, &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
