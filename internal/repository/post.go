package repository

import (
	"context"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// Post defines persistence for posts
type Post interface {
	CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	GetPostByID(ctx context.Context, postID string) (*domain.Post, error)
	// ListPosts returns every post, or only those of creatorID when it is non-empty
	ListPosts(ctx context.Context, creatorID string) ([]domain.Post, error)
}

// Interaction defines persistence for likes, comments and shares. Every
// write updates the post counters in the same transaction.
type Interaction interface {
	// AddLike reports whether a new like row was inserted
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	// RemoveLike reports whether a like row was deleted
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	AddComment(ctx context.Context, comment domain.Comment) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
	IncrementShare(ctx context.Context, postID string) (int64, error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
}
