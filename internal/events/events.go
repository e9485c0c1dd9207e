// Package events publishes domain change events for downstream consumers
// (push delivery, email digests). Delivery itself is out of this service.
package events

import (
	"context"
	"time"
)

// Subjects
const (
	SubjectNotificationCreated = "chefhub.notification.created"
	SubjectUserFollowed        = "chefhub.user.followed"
	SubjectPostLiked           = "chefhub.post.liked"
	SubjectPostCommented       = "chefhub.post.commented"
	SubjectPostRated           = "chefhub.post.rated"
	SubjectMessageSent         = "chefhub.message.sent"
	SubjectRequestAccepted     = "chefhub.message_request.accepted"
	SubjectRequestDeclined     = "chefhub.message_request.declined"
)

// Event is the envelope of every published payload.
type Event struct {
	Subject    string    `json:"subject"`
	ActorID    string    `json:"actor_id"`
	TargetID   string    `json:"target_id"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close()                               {}
