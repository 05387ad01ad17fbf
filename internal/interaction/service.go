package interaction

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

// PostViewer resolves a post as the viewer would see it
type PostViewer interface {
	GetPost(ctx context.Context, viewerID, postID string) (*domain.FeedPost, error)
}

// CommentInput is the body of a new comment
type CommentInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Service records likes, shares and comments
type Service interface {
	// Like reports whether a new like was recorded; liking twice is a no-op
	Like(ctx context.Context, postID string) (bool, error)
	// Unlike reports whether an existing like was removed
	Unlike(ctx context.Context, postID string) (bool, error)
	// Share returns the post's share count after the increment
	Share(ctx context.Context, postID string) (int64, error)
	Comment(ctx context.Context, postID string, input CommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
}

type service struct {
	repo      repository.Interaction
	posts     PostViewer
	publisher event.Publisher
	validate  *validator.Validate
	now       func() time.Time
}

// NewService creates a new interaction service. publisher may be nil.
func NewService(repo repository.Interaction, posts PostViewer, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		posts:     posts,
		publisher: publisher,
		validate:  validator.New(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// visible returns the caller after checking the post exists and is not
// locked for them
func (s *service) visible(ctx context.Context, postID string) (*auth.User, error) {
	caller := auth.GetAuthUser(ctx)
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	post, err := s.posts.GetPost(ctx, caller.ID, postID)
	if err != nil {
		return nil, err
	}
	if post.Locked {
		return nil, domain.ErrContentLocked
	}
	return caller, nil
}

func (s *service) Like(ctx context.Context, postID string) (bool, error) {
	caller, err := s.visible(ctx, postID)
	if err != nil {
		return false, err
	}

	inserted, err := s.repo.AddLike(ctx, postID, caller.ID)
	if err != nil {
		return false, fmt.Errorf("failed to add like: %w", err)
	}
	if inserted {
		logger.FromContext(ctx).Info(LogMsgLiked, "post_id", postID, "user_id", caller.ID)
		s.publish(ctx, event.NewPostLikedEvent(postID, caller.ID))
	}
	return inserted, nil
}

func (s *service) Unlike(ctx context.Context, postID string) (bool, error) {
	caller := auth.GetAuthUser(ctx)
	if caller == nil {
		return false, domain.ErrUnauthorized
	}

	deleted, err := s.repo.RemoveLike(ctx, postID, caller.ID)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}
	if deleted {
		logger.FromContext(ctx).Info(LogMsgUnliked, "post_id", postID, "user_id", caller.ID)
	}
	return deleted, nil
}

func (s *service) Share(ctx context.Context, postID string) (int64, error) {
	caller, err := s.visible(ctx, postID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.IncrementShare(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to record share: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgShared, "post_id", postID, "user_id", caller.ID, "share_count", count)
	return count, nil
}

func (s *service) Comment(ctx context.Context, postID string, input CommentInput) (*domain.Comment, error) {
	input.Text = strings.TrimSpace(input.Text)
	caller, err := s.visible(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	comment, err := s.repo.AddComment(ctx, domain.Comment{
		PostID:   postID,
		UserID:   caller.ID,
		Text:     input.Text,
		PostedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgCommented, "post_id", postID, "comment_id", comment.ID)
	s.publish(ctx, event.NewPostCommentedEvent(postID, caller.ID, comment.ID))
	return comment, nil
}

// ListComments returns comments oldest first. A gated post's comments are
// only listed for viewers who can see its body.
func (s *service) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	viewerID := ""
	if caller := auth.GetAuthUser(ctx); caller != nil {
		viewerID = caller.ID
	}
	post, err := s.posts.GetPost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	if post.Locked {
		return nil, domain.ErrContentLocked
	}
	return s.repo.ListComments(ctx, postID)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
