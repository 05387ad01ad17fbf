package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Mivy_Go/internal/database/postgres"
	"github.com/osse101/Mivy_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	Identity    repository.Identity
	Creator     repository.Creator
	Tier        repository.Tier
	Membership  repository.Membership
	Post        repository.Post
	Interaction repository.Interaction
}

// InitializeRepositories creates all repository implementations over one pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Identity:    postgres.NewIdentityRepository(dbPool),
		Creator:     postgres.NewCreatorRepository(dbPool),
		Tier:        postgres.NewTierRepository(dbPool),
		Membership:  postgres.NewMembershipRepository(dbPool),
		Post:        postgres.NewPostRepository(dbPool),
		Interaction: postgres.NewInteractionRepository(dbPool),
	}
}
