package repositories

import (
	"context"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/anonto42/chefhub/backend/internal/models"
)

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	SaveConversation(ctx context.Context, conv *models.Conversation) error
	ListUserConversationIDs(ctx context.Context, userID string) ([]string, error)
	AddUserConversation(ctx context.Context, userID, conversationID string) error
	DropUserConversations(ctx context.Context, userID string) error
}

// KVConversationRepository implements ConversationRepository on the kv store
type KVConversationRepository struct {
	store kv.Store
	index idIndex
}

// NewKVConversationRepository creates a new KVConversationRepository
func NewKVConversationRepository(store kv.Store) *KVConversationRepository {
	return &KVConversationRepository{
		store: store,
		index: idIndex{store: store, keyFor: UserConversationsKey},
	}
}

func (r *KVConversationRepository) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	found, err := kv.GetJSON(ctx, r.store, ConversationKey(id), &conv)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("conversation %s not found", id)
	}
	conv.ID = id
	models.NormalizeConversation(&conv)
	return &conv, nil
}

func (r *KVConversationRepository) SaveConversation(ctx context.Context, conv *models.Conversation) error {
	return kv.SetJSON(ctx, r.store, ConversationKey(conv.ID), conv)
}

func (r *KVConversationRepository) ListUserConversationIDs(ctx context.Context, userID string) ([]string, error) {
	return r.index.List(ctx, userID)
}

func (r *KVConversationRepository) AddUserConversation(ctx context.Context, userID, conversationID string) error {
	return r.index.Add(ctx, userID, conversationID)
}

func (r *KVConversationRepository) DropUserConversations(ctx context.Context, userID string) error {
	return r.index.Drop(ctx, userID)
}
