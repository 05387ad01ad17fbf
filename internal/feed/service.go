package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/metrics"
	"github.com/osse101/Mivy_Go/internal/repository"
)

// Query narrows the feed. Zero values mean all creators and no limit.
type Query struct {
	CreatorID string
	Limit     int
}

// MembershipChecker answers the gating question for one post
type MembershipChecker interface {
	HasActiveMembership(ctx context.Context, viewerID, creatorID, requiredTierID string) (bool, error)
}

// UserReader batch-loads the users behind creators
type UserReader interface {
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
}

// Service composes viewer-scoped feeds
type Service interface {
	// ListFeed returns the posts the viewer can list, newest first, with
	// gated bodies replaced by a teaser when the viewer lacks access
	ListFeed(ctx context.Context, viewerID string, q Query) ([]domain.FeedPost, error)
	// GetPost applies the same join and gating to a single post
	GetPost(ctx context.Context, viewerID, postID string) (*domain.FeedPost, error)
}

type service struct {
	posts       repository.Post
	creators    repository.Creator
	users       UserReader
	memberships MembershipChecker
}

// NewService creates a new feed service
func NewService(posts repository.Post, creators repository.Creator, users UserReader, memberships MembershipChecker) Service {
	return &service{
		posts:       posts,
		creators:    creators,
		users:       users,
		memberships: memberships,
	}
}

func (s *service) ListFeed(ctx context.Context, viewerID string, q Query) ([]domain.FeedPost, error) {
	posts, err := s.posts.ListPosts(ctx, q.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	joined, err := s.join(ctx, posts)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].CreationTime.After(joined[j].CreationTime)
	})
	if q.Limit > 0 && len(joined) > q.Limit {
		joined = joined[:q.Limit]
	}

	for i := range joined {
		s.gate(ctx, viewerID, &joined[i])
	}

	logger.FromContext(ctx).Debug(LogMsgFeedComposed, "posts", len(posts), "visible", len(joined), "creator_id", q.CreatorID)
	return joined, nil
}

func (s *service) GetPost(ctx context.Context, viewerID, postID string) (*domain.FeedPost, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}

	joined, err := s.join(ctx, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	if len(joined) == 0 {
		return nil, domain.ErrPostNotFound
	}

	fp := joined[0]
	s.gate(ctx, viewerID, &fp)
	return &fp, nil
}

// join attaches creator and creator user to each post, dropping posts
// whose creator or user no longer exists
func (s *service) join(ctx context.Context, posts []domain.Post) ([]domain.FeedPost, error) {
	if len(posts) == 0 {
		return []domain.FeedPost{}, nil
	}
	log := logger.FromContext(ctx)

	creatorIDs := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.CreatorID]; !ok {
			seen[p.CreatorID] = struct{}{}
			creatorIDs = append(creatorIDs, p.CreatorID)
		}
	}
	creators, err := s.creators.GetCreatorsByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get creators: %w", err)
	}

	userIDs := make([]string, 0, len(creators))
	for _, c := range creators {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	out := make([]domain.FeedPost, 0, len(posts))
	for _, p := range posts {
		creator, ok := creators[p.CreatorID]
		if !ok {
			log.Debug(LogMsgDanglingCreator, "post_id", p.ID, "creator_id", p.CreatorID)
			continue
		}
		user, ok := users[creator.UserID]
		if !ok {
			log.Debug(LogMsgDanglingUser, "post_id", p.ID, "user_id", creator.UserID)
			continue
		}
		out = append(out, domain.FeedPost{
			Post:    p,
			Creator: domain.CreatorWithUser{Creator: creator, User: user},
		})
	}
	return out, nil
}

// gate replaces the body with a teaser when the viewer cannot see it.
// A failed membership lookup fails closed.
func (s *service) gate(ctx context.Context, viewerID string, fp *domain.FeedPost) {
	if s.canView(ctx, viewerID, fp) {
		return
	}
	fp.Body = Teaser(fp.Body)
	fp.Locked = true
	if fp.Body != nil {
		metrics.FeedRedactions.WithLabelValues(string(fp.Body.Type())).Inc()
	}
}

func (s *service) canView(ctx context.Context, viewerID string, fp *domain.FeedPost) bool {
	if !fp.Gated() {
		return true
	}
	if viewerID == "" {
		return false
	}
	if fp.Creator.UserID == viewerID {
		return true
	}

	ok, err := s.memberships.HasActiveMembership(ctx, viewerID, fp.CreatorID, *fp.RequiredTierID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgGatingFailed, "post_id", fp.ID, "viewer_id", viewerID, "error", err)
		return false
	}
	return ok
}
