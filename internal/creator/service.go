package creator

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/repository"
)

// CreateInput is the profile a user submits to become a creator
type CreateInput struct {
	Bio           string               `json:"bio" validate:"max=2000"`
	CoverImageURL *string              `json:"cover_image_url,omitempty" validate:"omitempty,url"`
	Categories    []string             `json:"categories" validate:"max=10,dive,max=64"`
	ExternalLinks domain.ExternalLinks `json:"external_links"`
	XmtpGroupID   *string              `json:"xmtp_group_id,omitempty" validate:"omitempty,max=128"`
}

// Service manages creator profiles
type Service interface {
	// BecomeCreator creates the caller's creator profile
	BecomeCreator(ctx context.Context, input CreateInput) (*domain.Creator, error)
	GetCreator(ctx context.Context, creatorID string) (*domain.Creator, error)
	GetCreatorByUser(ctx context.Context, userID string) (*domain.Creator, error)
	SearchByCategory(ctx context.Context, category string) ([]domain.Creator, error)
	Categories() []Category

	AdjustPatrons(ctx context.Context, creatorID string, delta int64) error
	AddVolume(ctx context.Context, creatorID string, amount decimal.Decimal) error
}

type service struct {
	repo     repository.Creator
	catalog  *Catalog
	validate *validator.Validate
}

// NewService creates a new creator service
func NewService(repo repository.Creator, catalog *Catalog) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		validate: validator.New(),
	}
}

func (s *service) BecomeCreator(ctx context.Context, input CreateInput) (*domain.Creator, error) {
	caller := auth.GetAuthUser(ctx)
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	categories, err := s.catalog.Normalize(input.Categories)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCreatorByUserID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing creator: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrCreatorAlreadyExists
	}

	created, err := s.repo.CreateCreator(ctx, domain.Creator{
		UserID:        caller.ID,
		CoverImageURL: input.CoverImageURL,
		Bio:           input.Bio,
		Categories:    categories,
		ExternalLinks: input.ExternalLinks,
		XmtpGroupID:   input.XmtpGroupID,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCreatorCreated, "creator_id", created.ID, "user_id", caller.ID)
	return created, nil
}

func (s *service) GetCreator(ctx context.Context, creatorID string) (*domain.Creator, error) {
	c, err := s.repo.GetCreatorByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCreatorNotFound
	}
	return c, nil
}

// GetCreatorByUser returns the user's creator profile, or nil when the user is not a creator
func (s *service) GetCreatorByUser(ctx context.Context, userID string) (*domain.Creator, error) {
	c, err := s.repo.GetCreatorByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator by user: %w", err)
	}
	return c, nil
}

func (s *service) SearchByCategory(ctx context.Context, category string) ([]domain.Creator, error) {
	name, ok := s.catalog.Canonical(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	return s.repo.SearchByCategory(ctx, name)
}

func (s *service) Categories() []Category {
	return s.catalog.All()
}

func (s *service) AdjustPatrons(ctx context.Context, creatorID string, delta int64) error {
	return s.repo.AdjustPatronCount(ctx, creatorID, delta)
}

func (s *service) AddVolume(ctx context.Context, creatorID string, amount decimal.Decimal) error {
	return s.repo.AddVolume(ctx, creatorID, amount)
}
