package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/repository"
)

// CreateInput is a new text post from the caller's creator profile
type CreateInput struct {
	Title          string  `json:"title,omitempty" validate:"max=200"`
	Summary        string  `json:"summary,omitempty" validate:"max=1000"`
	Content        string  `json:"content"`
	Type           string  `json:"type"`
	RequiredTierID *string `json:"required_tier_id,omitempty"`
}

// Service publishes posts
type Service interface {
	Create(ctx context.Context, input CreateInput) (*domain.Post, error)
}

type service struct {
	posts     repository.Post
	creators  repository.Creator
	tiers     repository.Tier
	publisher event.Publisher
	validate  *validator.Validate
	now       func() time.Time
}

// NewService creates a new post service. publisher may be nil.
func NewService(posts repository.Post, creators repository.Creator, tiers repository.Tier, publisher event.Publisher) Service {
	return &service{
		posts:     posts,
		creators:  creators,
		tiers:     tiers,
		publisher: publisher,
		validate:  validator.New(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*domain.Post, error) {
	caller := auth.GetAuthUser(ctx)
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}

	creator, err := s.creators.GetCreatorByUserID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator == nil {
		return nil, domain.ErrCreatorProfileNotFound
	}

	if input.Type != string(domain.BodyTypeText) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, input.Type)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, domain.ErrEmptyPostContent
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	body := ComposeBody(input.Title, input.Summary, input.Content)
	if len(body) > MaxContentLength {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", domain.ErrInvalidInput, MaxContentLength)
	}

	var requiredTierID *string
	if input.RequiredTierID != nil && *input.RequiredTierID != "" {
		tier, err := s.tiers.GetTierByID(ctx, *input.RequiredTierID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tier: %w", err)
		}
		if tier == nil || tier.CreatorID != creator.ID {
			logger.FromContext(ctx).Warn(LogMsgTierRejected, "tier_id", *input.RequiredTierID, "creator_id", creator.ID)
			return nil, domain.ErrTierNotFound
		}
		requiredTierID = &tier.ID
	}

	created, err := s.posts.CreatePost(ctx, domain.Post{
		CreatorID:      creator.ID,
		CreationTime:   s.now(),
		RequiredTierID: requiredTierID,
		Body:           domain.TextBody{Content: body},
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPostCreated, "post_id", created.ID, "creator_id", creator.ID, "gated", created.Gated())

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewPostCreatedEvent(created.ID, creator.ID, created.Gated(), created.CreationTime))
	}
	return created, nil
}

// ComposeBody joins the non-empty parts with a blank line between them
func ComposeBody(title, summary, content string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{title, summary, content} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, BodySeparator)
}
