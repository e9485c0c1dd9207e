package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
	"github.com/google/uuid"
)

// ConversationService arbitrates direct and group conversations and the
// message-request lifecycle of direct ones:
//
//	(none) -> pending -> accepted | declined
//
// Direct conversations between mutual followers skip the request and carry
// a null status. accepted and declined are terminal, and a declined
// conversation is returned as-is by later GetOrCreate calls for the pair.
type ConversationService struct {
	convs repositories.ConversationRepository
	users repositories.UserRepository
	graph *SocialGraph
}

// NewConversationService creates a new ConversationService
func NewConversationService(convs repositories.ConversationRepository, users repositories.UserRepository, graph *SocialGraph) *ConversationService {
	return &ConversationService{convs: convs, users: users, graph: graph}
}

// GetOrCreate returns the direct conversation between actorID and targetID,
// creating it when none exists. created reports whether a new one was made.
func (s *ConversationService) GetOrCreate(ctx context.Context, actorID, targetID string) (*models.Conversation, bool, error) {
	if !models.IsValidID(targetID) {
		return nil, false, apperr.InvalidArgument("invalid participant id %q", targetID)
	}
	if actorID == targetID {
		return nil, false, apperr.InvalidArgument("cannot start a conversation with yourself")
	}
	if _, found, err := s.users.GetProfile(ctx, targetID); err != nil {
		return nil, false, err
	} else if !found {
		return nil, false, apperr.NotFound("user %s not found", targetID)
	}

	existing, err := s.findDirect(ctx, actorID, targetID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	mutual, err := s.graph.IsMutualFollow(ctx, actorID, targetID)
	if err != nil {
		return nil, false, err
	}
	now := time.Now().UTC()
	conv := &models.Conversation{
		ID:           uuid.NewString(),
		Type:         models.ConversationDirect,
		Participants: []string{actorID, targetID},
		Messages:     []models.Message{},
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !mutual {
		conv.SetStatus(models.RequestPending)
		conv.RequestedBy = actorID
		conv.RequestedAt = &now
	}
	if err := s.convs.SaveConversation(ctx, conv); err != nil {
		return nil, false, err
	}
	for _, uid := range conv.Participants {
		if err := s.convs.AddUserConversation(ctx, uid, conv.ID); err != nil {
			return nil, false, err
		}
	}
	return conv, true, nil
}

// findDirect looks for a conversation id present in both participants'
// indexes that is the direct conversation of the pair.
func (s *ConversationService) findDirect(ctx context.Context, a, b string) (*models.Conversation, error) {
	aIDs, err := s.convs.ListUserConversationIDs(ctx, a)
	if err != nil {
		return nil, err
	}
	bIDs, err := s.convs.ListUserConversationIDs(ctx, b)
	if err != nil {
		return nil, err
	}
	inB := make(map[string]struct{}, len(bIDs))
	for _, id := range bIDs {
		inB[id] = struct{}{}
	}
	for _, id := range aIDs {
		if _, ok := inB[id]; !ok {
			continue
		}
		conv, err := s.convs.GetConversation(ctx, id)
		if apperr.Is(err, apperr.KindNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if conv.IsDirectBetween(a, b) {
			return conv, nil
		}
	}
	return nil, nil
}

// Accept moves a pending request to accepted. Only the non-requesting participant may accept.
func (s *ConversationService) Accept(ctx context.Context, conversationID, actorID string) (*models.Conversation, error) {
	return s.resolveRequest(ctx, conversationID, actorID, models.RequestAccepted)
}

// Decline moves a pending request to declined. Only the non-requesting participant may decline.
func (s *ConversationService) Decline(ctx context.Context, conversationID, actorID string) (*models.Conversation, error) {
	return s.resolveRequest(ctx, conversationID, actorID, models.RequestDeclined)
}

func (s *ConversationService) resolveRequest(ctx context.Context, conversationID, actorID string, to models.RequestStatus) (*models.Conversation, error) {
	conv, err := s.convs.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(actorID) {
		return nil, apperr.Forbidden("not a participant of conversation %s", conversationID)
	}
	if conv.Type != models.ConversationDirect {
		return nil, apperr.Conflict("group conversations have no message request")
	}
	if conv.RequestedBy == actorID {
		return nil, apperr.Forbidden("cannot respond to your own message request")
	}
	if conv.Status() != models.RequestPending {
		return nil, apperr.Conflict("message request is not pending")
	}
	conv.SetStatus(to)
	conv.UpdatedAt = time.Now().UTC()
	if err := s.convs.SaveConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// SendMessage appends a message from actorID. Request status does not gate
// sending; it only affects where the conversation is listed.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, actorID, content string) (*models.Conversation, *models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, apperr.InvalidArgument("message content is required")
	}
	conv, err := s.convs.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	if !conv.HasParticipant(actorID) {
		return nil, nil, apperr.Forbidden("not a participant of conversation %s", conversationID)
	}
	sender, _, err := s.users.GetProfile(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()
	msg := models.Message{
		ID:         uuid.NewString(),
		SenderID:   actorID,
		SenderName: sender.Name,
		Content:    content,
		CreatedAt:  now,
	}
	conv.Messages = append(conv.Messages, msg)
	conv.LastMessage = &msg
	conv.UpdatedAt = now
	if err := s.convs.SaveConversation(ctx, conv); err != nil {
		return nil, nil, err
	}
	return conv, &msg, nil
}

// CreateGroup creates a group conversation owned by actorID. Only
// instructors and admins may create groups.
func (s *ConversationService) CreateGroup(ctx context.Context, actorID, name string, participantIDs []string) (*models.Conversation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidArgument("group name is required")
	}
	actor, _, err := s.users.GetProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageGroups() {
		return nil, apperr.Forbidden("only instructors and admins can create groups")
	}

	roles := map[string]string{actorID: models.ParticipantOwner}
	participants := []string{actorID}
	for _, id := range participantIDs {
		if _, dup := roles[id]; dup {
			continue
		}
		if !models.IsValidID(id) {
			return nil, apperr.InvalidArgument("invalid participant id %q", id)
		}
		if _, found, err := s.users.GetProfile(ctx, id); err != nil {
			return nil, err
		} else if !found {
			return nil, apperr.NotFound("user %s not found", id)
		}
		roles[id] = models.ParticipantMember
		participants = append(participants, id)
	}
	if len(participants) < 2 {
		return nil, apperr.InvalidArgument("a group needs at least one other participant")
	}

	now := time.Now().UTC()
	conv := &models.Conversation{
		ID:               uuid.NewString(),
		Type:             models.ConversationGroup,
		Name:             name,
		Participants:     participants,
		ParticipantRoles: roles,
		Messages:         []models.Message{},
		CreatedBy:        actorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.convs.SaveConversation(ctx, conv); err != nil {
		return nil, err
	}
	for _, uid := range participants {
		if err := s.convs.AddUserConversation(ctx, uid, conv.ID); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

// Get returns a conversation visible to actorID.
func (s *ConversationService) Get(ctx context.Context, conversationID, actorID string) (*models.Conversation, error) {
	conv, err := s.convs.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(actorID) {
		return nil, apperr.Forbidden("not a participant of conversation %s", conversationID)
	}
	return conv, nil
}

// List returns actorID's inbox: declined conversations and pending requests
// sent by someone else are left out. Most recently updated first.
func (s *ConversationService) List(ctx context.Context, actorID string) ([]models.Conversation, error) {
	return s.collect(ctx, actorID, func(c *models.Conversation) bool {
		switch c.Status() {
		case models.RequestDeclined:
			return false
		case models.RequestPending:
			return c.RequestedBy == actorID
		default:
			return true
		}
	})
}

// Requests returns the pending message requests actorID has received.
func (s *ConversationService) Requests(ctx context.Context, actorID string) ([]models.Conversation, error) {
	return s.collect(ctx, actorID, func(c *models.Conversation) bool {
		return c.Status() == models.RequestPending && c.RequestedBy != actorID
	})
}

func (s *ConversationService) collect(ctx context.Context, actorID string, keep func(*models.Conversation) bool) ([]models.Conversation, error) {
	ids, err := s.convs.ListUserConversationIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := s.convs.GetConversation(ctx, id)
		if apperr.Is(err, apperr.KindNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !conv.HasParticipant(actorID) || !keep(conv) {
			continue
		}
		out = append(out, *conv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// OtherParticipants returns every participant except actorID.
func OtherParticipants(conv *models.Conversation, actorID string) []string {
	out := make([]string, 0, len(conv.Participants))
	for _, id := range conv.Participants {
		if id != actorID {
			out = append(out, id)
		}
	}
	return out
}
