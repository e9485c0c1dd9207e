package models

import "time"

// Conversation types
const (
	ConversationDirect = "direct"
	ConversationGroup  = "group"
)

// Group participant roles
const (
	ParticipantOwner  = "owner"
	ParticipantMember = "member"
)

// RequestStatus is the message-request state of a direct conversation.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// Conversation is stored at conversation:<id>. RequestStatus is nil for
// groups and for direct conversations opened between mutual followers.
type Conversation struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Name             string            `json:"name,omitempty"`
	Participants     []string          `json:"participants"`
	ParticipantRoles map[string]string `json:"participant_roles,omitempty"`
	Messages         []Message         `json:"messages"`
	LastMessage      *Message          `json:"last_message"`
	RequestStatus    *RequestStatus    `json:"request_status"`
	RequestedBy      string            `json:"requested_by,omitempty"`
	RequestedAt      *time.Time        `json:"requested_at,omitempty"`
	CreatedBy        string            `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Status returns the request status, or "" when none is set.
func (c *Conversation) Status() RequestStatus {
	if c.RequestStatus == nil {
		return ""
	}
	return *c.RequestStatus
}

func (c *Conversation) SetStatus(s RequestStatus) {
	c.RequestStatus = &s
}

func (c *Conversation) HasParticipant(userID string) bool {
	return contains(c.Participants, userID)
}

// IsDirectBetween reports whether c is the direct conversation of the unordered pair {a, b}.
func (c *Conversation) IsDirectBetween(a, b string) bool {
	return c.Type == ConversationDirect && len(c.Participants) == 2 && c.HasParticipant(a) && c.HasParticipant(b)
}

// Message is appended to its Conversation and never edited.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateConversationRequest opens (or finds) the direct conversation with participant_id.
type CreateConversationRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

// CreateGroupRequest defines the request body for creating a group conversation
type CreateGroupRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=100"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,max=200,dive,required"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}
