package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/repository"
)

// InteractionRepository implements repository.Interaction for PostgreSQL
type InteractionRepository struct {
	db *pgxpool.Pool
}

// NewInteractionRepository creates a new InteractionRepository
func NewInteractionRepository(db *pgxpool.Pool) repository.Interaction {
	return &InteractionRepository{db: db}
}

// withTx runs fn inside a transaction, committing when it returns nil
func (r *InteractionRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// bumpCounter adjusts one post counter column inside tx
func bumpCounter(ctx context.Context, tx pgx.Tx, column, postID string, delta int) (int64, error) {
	// column is always one of the fixed names below, never user input
	var query string
	switch column {
	case "like_count":
		query = `UPDATE posts SET like_count = GREATEST(like_count + $2, 0) WHERE post_id = $1 RETURNING like_count`
	case "comment_count":
		query = `UPDATE posts SET comment_count = GREATEST(comment_count + $2, 0) WHERE post_id = $1 RETURNING comment_count`
	case "share_count":
		query = `UPDATE posts SET share_count = GREATEST(share_count + $2, 0) WHERE post_id = $1 RETURNING share_count`
	default:
		return 0, fmt.Errorf("unknown counter %q", column)
	}

	var value int64
	if err := tx.QueryRow(ctx, query, postID, delta).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrPostNotFound
		}
		return 0, fmt.Errorf("failed to update %s: %w", column, err)
	}
	return value, nil
}

// AddLike inserts a like and increments like_count only when the row is new
func (r *InteractionRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	if !validID(postID) {
		return false, domain.ErrPostNotFound
	}

	var inserted bool
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO post_likes (post_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (post_id, user_id) DO NOTHING`, postID, userID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrPostNotFound
			}
			return fmt.Errorf("failed to insert like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		inserted = true
		_, err = bumpCounter(ctx, tx, "like_count", postID, 1)
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// RemoveLike deletes a like and decrements like_count only when a row was removed
func (r *InteractionRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	if !validID(postID) {
		return false, domain.ErrPostNotFound
	}

	var deleted bool
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		deleted = true
		_, err = bumpCounter(ctx, tx, "like_count", postID, -1)
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// HasLiked reports whether the user currently likes the post
func (r *InteractionRepository) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	if !validID(postID) || !validID(userID) {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// AddComment inserts a comment and increments comment_count
func (r *InteractionRepository) AddComment(ctx context.Context, comment domain.Comment) (*domain.Comment, error) {
	if !validID(comment.PostID) {
		return nil, domain.ErrPostNotFound
	}

	var created domain.Comment
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO post_comments (post_id, user_id, text)
			VALUES ($1, $2, $3)
			RETURNING comment_id, post_id, user_id, text, posted_at`,
			comment.PostID, comment.UserID, comment.Text,
		).Scan(&created.ID, &created.PostID, &created.UserID, &created.Text, &created.PostedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrPostNotFound
			}
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		_, err = bumpCounter(ctx, tx, "comment_count", comment.PostID, 1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListComments lists a post's comments in the order they were posted
func (r *InteractionRepository) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	if !validID(postID) {
		return comments, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT comment_id, post_id, user_id, text, posted_at
		FROM post_comments
		WHERE post_id = $1
		ORDER BY posted_at, comment_id`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return comments, nil
}

// IncrementShare bumps share_count and returns the new value
func (r *InteractionRepository) IncrementShare(ctx context.Context, postID string) (int64, error) {
	if !validID(postID) {
		return 0, domain.ErrPostNotFound
	}
	var count int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		count, err = bumpCounter(ctx, tx, "share_count", postID, 1)
		return err
	})
	return count, err
}
