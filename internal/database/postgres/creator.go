package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/repository"
)

const creatorColumns = `
	creator_id, user_id, cover_image_url, bio, categories, is_verified,
	link_website, link_twitter, link_farcaster,
	follower_count, patron_count, total_volume_usd::text, xmtp_group_id, created_at`

// CreatorRepository implements repository.Creator for PostgreSQL
type CreatorRepository struct {
	db *pgxpool.Pool
}

// NewCreatorRepository creates a new CreatorRepository
func NewCreatorRepository(db *pgxpool.Pool) repository.Creator {
	return &CreatorRepository{db: db}
}

func scanCreator(row scanner) (*domain.Creator, error) {
	var c domain.Creator
	var volume string
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.CoverImageURL,
		&c.Bio,
		&c.Categories,
		&c.IsVerified,
		&c.ExternalLinks.Website,
		&c.ExternalLinks.Twitter,
		&c.ExternalLinks.Farcaster,
		&c.Stats.FollowerCount,
		&c.Stats.PatronCount,
		&volume,
		&c.XmtpGroupID,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Stats.TotalVolumeUSD, err = parseDecimal(volume); err != nil {
		return nil, err
	}
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return &c, nil
}

// CreateCreator inserts a creator profile for a user
func (r *CreatorRepository) CreateCreator(ctx context.Context, creator domain.Creator) (*domain.Creator, error) {
	categories := creator.Categories
	if categories == nil {
		categories = []string{}
	}

	query := `
		INSERT INTO creators (user_id, cover_image_url, bio, categories, is_verified,
			link_website, link_twitter, link_farcaster, xmtp_group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + creatorColumns

	created, err := scanCreator(r.db.QueryRow(ctx, query,
		creator.UserID,
		creator.CoverImageURL,
		creator.Bio,
		categories,
		creator.IsVerified,
		creator.ExternalLinks.Website,
		creator.ExternalLinks.Twitter,
		creator.ExternalLinks.Farcaster,
		creator.XmtpGroupID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCreatorAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert creator: %w", err)
	}
	return created, nil
}

// GetCreatorByID retrieves a creator, or nil when absent
func (r *CreatorRepository) GetCreatorByID(ctx context.Context, creatorID string) (*domain.Creator, error) {
	if !validID(creatorID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+creatorColumns+` FROM creators WHERE creator_id = $1`, creatorID)
}

// GetCreatorByUserID retrieves the creator owned by a user, or nil
func (r *CreatorRepository) GetCreatorByUserID(ctx context.Context, userID string) (*domain.Creator, error) {
	if !validID(userID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+creatorColumns+` FROM creators WHERE user_id = $1`, userID)
}

func (r *CreatorRepository) getOne(ctx context.Context, query string, arg any) (*domain.Creator, error) {
	c, err := scanCreator(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	return c, nil
}

// GetCreatorsByIDs retrieves the creators that exist among creatorIDs
func (r *CreatorRepository) GetCreatorsByIDs(ctx context.Context, creatorIDs []string) (map[string]domain.Creator, error) {
	ids := validIDs(creatorIDs)
	result := make(map[string]domain.Creator, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	creators, err := r.list(ctx, `SELECT `+creatorColumns+` FROM creators WHERE creator_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range creators {
		result[c.ID] = c
	}
	return result, nil
}

// SearchByCategory returns creators tagged with category, newest first
func (r *CreatorRepository) SearchByCategory(ctx context.Context, category string) ([]domain.Creator, error) {
	query := `
		SELECT ` + creatorColumns + `
		FROM creators
		WHERE categories @> ARRAY[$1]::text[]
		ORDER BY created_at DESC`
	return r.list(ctx, query, category)
}

func (r *CreatorRepository) list(ctx context.Context, query string, args ...any) ([]domain.Creator, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query creators: %w", err)
	}
	defer rows.Close()

	creators := []domain.Creator{}
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return creators, nil
}

// AdjustPatronCount moves the patron counter by delta, never below zero
func (r *CreatorRepository) AdjustPatronCount(ctx context.Context, creatorID string, delta int64) error {
	query := `UPDATE creators SET patron_count = GREATEST(patron_count + $2, 0) WHERE creator_id = $1`
	tag, err := r.db.Exec(ctx, query, creatorID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust patron count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCreatorNotFound
	}
	return nil
}

// AddVolume adds amount to the creator's lifetime volume
func (r *CreatorRepository) AddVolume(ctx context.Context, creatorID string, amount decimal.Decimal) error {
	query := `UPDATE creators SET total_volume_usd = total_volume_usd + $2::numeric WHERE creator_id = $1`
	tag, err := r.db.Exec(ctx, query, creatorID, amount.String())
	if err != nil {
		return fmt.Errorf("failed to add creator volume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCreatorNotFound
	}
	return nil
}
