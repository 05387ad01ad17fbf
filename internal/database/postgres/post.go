package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/repository"
)

const postColumns = `
	post_id, creator_id, creation_time, required_tier_id, body,
	like_count, comment_count, share_count`

// PostRepository implements repository.Post for PostgreSQL
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) repository.Post {
	return &PostRepository{db: db}
}

func scanPost(row scanner) (*domain.Post, error) {
	var p domain.Post
	var body []byte
	err := row.Scan(
		&p.ID,
		&p.CreatorID,
		&p.CreationTime,
		&p.RequiredTierID,
		&body,
		&p.Stats.LikeCount,
		&p.Stats.CommentCount,
		&p.Stats.ShareCount,
	)
	if err != nil {
		return nil, err
	}
	if p.Body, err = domain.UnmarshalBody(body); err != nil {
		return nil, fmt.Errorf("failed to decode body of post %s: %w", p.ID, err)
	}
	return &p, nil
}

// CreatePost inserts a post. Counters always start at zero.
func (r *PostRepository) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	if post.Body == nil {
		return nil, fmt.Errorf("%w: post body is required", domain.ErrInvalidInput)
	}
	body, err := domain.MarshalBody(post.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode post body: %w", err)
	}

	creationTime := post.CreationTime
	if creationTime.IsZero() {
		creationTime = time.Now().UTC()
	}

	query := `
		INSERT INTO posts (creator_id, creation_time, required_tier_id, body_type, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + postColumns

	created, err := scanPost(r.db.QueryRow(ctx, query,
		post.CreatorID,
		creationTime,
		post.RequiredTierID,
		string(post.Body.Type()),
		body,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return created, nil
}

// GetPostByID retrieves a post, or nil when absent
func (r *PostRepository) GetPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	if !validID(postID) {
		return nil, nil
	}
	p, err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE post_id = $1`, postID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

// ListPosts returns posts newest first, optionally scoped to one creator
func (r *PostRepository) ListPosts(ctx context.Context, creatorID string) ([]domain.Post, error) {
	posts := []domain.Post{}

	var (
		rows pgx.Rows
		err  error
	)
	if creatorID == "" {
		rows, err = r.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY creation_time DESC, post_id DESC`)
	} else {
		if !validID(creatorID) {
			return posts, nil
		}
		rows, err = r.db.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE creator_id = $1 ORDER BY creation_time DESC, post_id DESC`, creatorID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return posts, nil
}
