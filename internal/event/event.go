package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Domain event types
const (
	MembershipActivated Type = "membership.activated"
	MembershipExpired   Type = "membership.expired"

	PostCreated   Type = "post.created"
	PostLiked     Type = "post.liked"
	PostCommented Type = "post.commented"

	UserCreated Type = "user.created"
)

// AllTypes lists every event type the service publishes
var AllTypes = []Type{
	MembershipActivated,
	MembershipExpired,
	PostCreated,
	PostLiked,
	PostCommented,
	UserCreated,
}

// MembershipActivatedPayloadV1 is the typed payload for membership activation.
// ReplacedID is set when a renewal expired a previous active membership.
type MembershipActivatedPayloadV1 struct {
	MembershipID string          `json:"membership_id"`
	SupporterID  string          `json:"supporter_id"`
	CreatorID    string          `json:"creator_id"`
	TierID       string          `json:"tier_id"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	TxHash       string          `json:"tx_hash"`
	ExpiresAt    time.Time       `json:"expires_at"`
	ReplacedID   string          `json:"replaced_id,omitempty"`
}

// MembershipExpiredPayloadV1 is the typed payload for membership expiry
type MembershipExpiredPayloadV1 struct {
	MembershipID string    `json:"membership_id"`
	SupporterID  string    `json:"supporter_id"`
	CreatorID    string    `json:"creator_id"`
	ExpiredAt    time.Time `json:"expired_at"`
}

// PostCreatedPayloadV1 is the typed payload for new posts
type PostCreatedPayloadV1 struct {
	PostID    string    `json:"post_id"`
	CreatorID string    `json:"creator_id"`
	Gated     bool      `json:"gated"`
	CreatedAt time.Time `json:"created_at"`
}

// PostInteractionPayloadV1 is shared by like and comment events
type PostInteractionPayloadV1 struct {
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	CommentID string `json:"comment_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// UserCreatedPayloadV1 is the typed payload for first sign-in
type UserCreatedPayloadV1 struct {
	UserID   string `json:"user_id"`
	Protocol string `json:"protocol"`
	Fid      int64  `json:"fid,omitempty"`
}

// AggregateID returns the id the event is about, used as a partition key
func (e Event) AggregateID() string {
	switch p := e.Payload.(type) {
	case MembershipActivatedPayloadV1:
		return p.CreatorID
	case MembershipExpiredPayloadV1:
		return p.CreatorID
	case PostCreatedPayloadV1:
		return p.PostID
	case PostInteractionPayloadV1:
		return p.PostID
	case UserCreatedPayloadV1:
		return p.UserID
	}
	return ""
}

// Type-safe event constructors

// NewMembershipActivatedEvent creates a membership.activated event
func NewMembershipActivatedEvent(payload MembershipActivatedPayloadV1) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MembershipActivated,
		Payload: payload,
	}
}

// NewMembershipExpiredEvent creates a membership.expired event
func NewMembershipExpiredEvent(membershipID, supporterID, creatorID string, expiredAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MembershipExpired,
		Payload: MembershipExpiredPayloadV1{
			MembershipID: membershipID,
			SupporterID:  supporterID,
			CreatorID:    creatorID,
			ExpiredAt:    expiredAt,
		},
	}
}

// NewPostCreatedEvent creates a post.created event
func NewPostCreatedEvent(postID, creatorID string, gated bool, createdAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PostCreated,
		Payload: PostCreatedPayloadV1{
			PostID:    postID,
			CreatorID: creatorID,
			Gated:     gated,
			CreatedAt: createdAt,
		},
	}
}

// NewPostLikedEvent creates a post.liked event
func NewPostLikedEvent(postID, userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PostLiked,
		Payload: PostInteractionPayloadV1{
			PostID:    postID,
			UserID:    userID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPostCommentedEvent creates a post.commented event
func NewPostCommentedEvent(postID, userID, commentID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PostCommented,
		Payload: PostInteractionPayloadV1{
			PostID:    postID,
			UserID:    userID,
			CommentID: commentID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewUserCreatedEvent creates a user.created event
func NewUserCreatedEvent(userID, protocol string, fid int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UserCreated,
		Payload: UserCreatedPayloadV1{
			UserID:   userID,
			Protocol: protocol,
			Fid:      fid,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously in subscription order.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
