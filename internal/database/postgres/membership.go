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

const tierColumns = `
	tier_id, creator_id, name, price_usd::text, can_access_chat, chat_role, can_access_content, created_at`

const membershipColumns = `
	membership_id, supporter_id, creator_id, tier_id, status_kind,
	started_at, expires_at, tx_hash, expired_at, created_at`

// TierRepository implements repository.Tier for PostgreSQL
type TierRepository struct {
	db *pgxpool.Pool
}

// NewTierRepository creates a new TierRepository
func NewTierRepository(db *pgxpool.Pool) repository.Tier {
	return &TierRepository{db: db}
}

// MembershipRepository implements repository.Membership for PostgreSQL
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) repository.Membership {
	return &MembershipRepository{db: db}
}

func scanTier(row scanner) (*domain.Tier, error) {
	var t domain.Tier
	var price, role string
	err := row.Scan(
		&t.ID,
		&t.CreatorID,
		&t.Name,
		&price,
		&t.Perks.CanAccessChat,
		&role,
		&t.Perks.CanAccessContent,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Perks.ChatRole = domain.ChatRole(role)
	if t.PriceUSD, err = parseDecimal(price); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTier inserts a tier for a creator
func (r *TierRepository) CreateTier(ctx context.Context, tier domain.Tier) (*domain.Tier, error) {
	query := `
		INSERT INTO tiers (creator_id, name, price_usd, can_access_chat, chat_role, can_access_content)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		RETURNING ` + tierColumns

	created, err := scanTier(r.db.QueryRow(ctx, query,
		tier.CreatorID,
		tier.Name,
		tier.PriceUSD.String(),
		tier.Perks.CanAccessChat,
		string(tier.Perks.ChatRole),
		tier.Perks.CanAccessContent,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to insert tier: %w", err)
	}
	return created, nil
}

// GetTierByID retrieves a tier, or nil when absent
func (r *TierRepository) GetTierByID(ctx context.Context, tierID string) (*domain.Tier, error) {
	if !validID(tierID) {
		return nil, nil
	}
	t, err := scanTier(r.db.QueryRow(ctx, `SELECT `+tierColumns+` FROM tiers WHERE tier_id = $1`, tierID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}
	return t, nil
}

// ListTiersByCreator lists a creator's tiers, cheapest first
func (r *TierRepository) ListTiersByCreator(ctx context.Context, creatorID string) ([]domain.Tier, error) {
	tiers := []domain.Tier{}
	if !validID(creatorID) {
		return tiers, nil
	}

	query := `SELECT ` + tierColumns + ` FROM tiers WHERE creator_id = $1 ORDER BY price_usd, created_at`
	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tier: %w", err)
		}
		tiers = append(tiers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tiers, nil
}

func scanMembership(row scanner) (*domain.Membership, error) {
	var m domain.Membership
	var kind string
	var txHash *string
	err := row.Scan(
		&m.ID,
		&m.SupporterID,
		&m.CreatorID,
		&m.TierID,
		&kind,
		&m.Status.StartedAt,
		&m.Status.ExpiresAt,
		&txHash,
		&m.Status.ExpiredAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Status.Kind = domain.MembershipStatusKind(kind)
	m.Status.TxHash = deref(txHash)
	if m.Status.Kind == domain.MembershipExpired {
		// only the fields of the current variant are exposed
		m.Status.StartedAt, m.Status.ExpiresAt = nil, nil
	}
	return &m, nil
}

// GetMembershipByID retrieves a membership, or nil when absent
func (r *MembershipRepository) GetMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	if !validID(membershipID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE membership_id = $1`, membershipID)
}

// GetMembershipByTxHash retrieves the membership paid by txHash, or nil
func (r *MembershipRepository) GetMembershipByTxHash(ctx context.Context, txHash string) (*domain.Membership, error) {
	return r.getOne(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE tx_hash = $1`, txHash)
}

func (r *MembershipRepository) getOne(ctx context.Context, query string, arg any) (*domain.Membership, error) {
	m, err := scanMembership(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

const membershipWithTierSelect = `
	SELECT m.membership_id, m.supporter_id, m.creator_id, m.tier_id, m.status_kind,
	       m.started_at, m.expires_at, m.tx_hash, m.expired_at, m.created_at,
	       t.tier_id, t.creator_id, t.name, t.price_usd::text, t.can_access_chat,
	       t.chat_role, t.can_access_content, t.created_at
	FROM memberships m
	JOIN tiers t ON t.tier_id = m.tier_id`

func scanMembershipWithTier(row scanner) (*domain.MembershipWithTier, error) {
	var (
		mwt         domain.MembershipWithTier
		kind        string
		txHash      *string
		price, role string
	)
	err := row.Scan(
		&mwt.ID,
		&mwt.SupporterID,
		&mwt.CreatorID,
		&mwt.TierID,
		&kind,
		&mwt.Status.StartedAt,
		&mwt.Status.ExpiresAt,
		&txHash,
		&mwt.Status.ExpiredAt,
		&mwt.CreatedAt,
		&mwt.Tier.ID,
		&mwt.Tier.CreatorID,
		&mwt.Tier.Name,
		&price,
		&mwt.Tier.Perks.CanAccessChat,
		&role,
		&mwt.Tier.Perks.CanAccessContent,
		&mwt.Tier.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	mwt.Status.Kind = domain.MembershipStatusKind(kind)
	mwt.Status.TxHash = deref(txHash)
	if mwt.Status.Kind == domain.MembershipExpired {
		mwt.Status.StartedAt, mwt.Status.ExpiresAt = nil, nil
	}
	mwt.Tier.Perks.ChatRole = domain.ChatRole(role)
	if mwt.Tier.PriceUSD, err = parseDecimal(price); err != nil {
		return nil, err
	}
	return &mwt, nil
}

// GetActiveMembership returns the active membership for (supporter, creator), or nil
func (r *MembershipRepository) GetActiveMembership(ctx context.Context, supporterID, creatorID string) (*domain.MembershipWithTier, error) {
	if !validID(supporterID) || !validID(creatorID) {
		return nil, nil
	}
	query := membershipWithTierSelect + `
		WHERE m.supporter_id = $1 AND m.creator_id = $2 AND m.status_kind = 'active'`

	mwt, err := scanMembershipWithTier(r.db.QueryRow(ctx, query, supporterID, creatorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active membership: %w", err)
	}
	return mwt, nil
}

// ListMembershipsBySupporter lists every membership a supporter ever held, newest first
func (r *MembershipRepository) ListMembershipsBySupporter(ctx context.Context, supporterID string) ([]domain.MembershipWithTier, error) {
	result := []domain.MembershipWithTier{}
	if !validID(supporterID) {
		return result, nil
	}

	query := membershipWithTierSelect + ` WHERE m.supporter_id = $1 ORDER BY m.created_at DESC`
	rows, err := r.db.Query(ctx, query, supporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		mwt, err := scanMembershipWithTier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		result = append(result, *mwt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return result, nil
}

// ActivateMembership replaces the current active membership, if any, with a new one
func (r *MembershipRepository) ActivateMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, *domain.Membership, error) {
	if membership.Status.Kind != domain.MembershipActive || membership.Status.StartedAt == nil || membership.Status.ExpiresAt == nil {
		return nil, nil, fmt.Errorf("%w: membership must be active with a start and expiry", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	expireQuery := `
		UPDATE memberships
		SET status_kind = 'expired', expired_at = $3
		WHERE creator_id = $1 AND supporter_id = $2 AND status_kind = 'active'
		RETURNING ` + membershipColumns

	var replaced *domain.Membership
	replaced, err = scanMembership(tx.QueryRow(ctx, expireQuery,
		membership.CreatorID,
		membership.SupporterID,
		*membership.Status.StartedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		replaced, err = nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to expire previous membership: %w", err)
	}

	insertQuery := `
		INSERT INTO memberships (supporter_id, creator_id, tier_id, status_kind, started_at, expires_at, tx_hash)
		VALUES ($1, $2, $3, 'active', $4, $5, $6)
		RETURNING ` + membershipColumns

	created, err := scanMembership(tx.QueryRow(ctx, insertQuery,
		membership.SupporterID,
		membership.CreatorID,
		membership.TierID,
		*membership.Status.StartedAt,
		*membership.Status.ExpiresAt,
		membership.Status.TxHash,
	))
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == ConstraintMembershipTxHash {
				return nil, nil, domain.ErrDuplicateTransaction
			}
			return nil, nil, domain.ErrMembershipConflict
		}
		return nil, nil, fmt.Errorf("failed to insert membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, domain.ErrMembershipConflict
		}
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return created, replaced, nil
}

// ExpireMembership moves a single membership to expired. Already expired
// records are left untouched and reported as false.
func (r *MembershipRepository) ExpireMembership(ctx context.Context, membershipID string, at time.Time) (bool, error) {
	if !validID(membershipID) {
		return false, domain.ErrMembershipNotFound
	}

	query := `
		UPDATE memberships
		SET status_kind = 'expired', expired_at = $2
		WHERE membership_id = $1 AND status_kind = 'active'`
	tag, err := r.db.Exec(ctx, query, membershipID, at)
	if err != nil {
		return false, fmt.Errorf("failed to expire membership: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM memberships WHERE membership_id = $1)`, membershipID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	if !exists {
		return false, domain.ErrMembershipNotFound
	}
	return false, nil
}

// ExpireDue flips every overdue active membership in one statement. The
// expiry instant recorded is the scheduled expires_at, not the sweep time.
func (r *MembershipRepository) ExpireDue(ctx context.Context, now time.Time) ([]domain.Membership, error) {
	query := `
		UPDATE memberships
		SET status_kind = 'expired', expired_at = expires_at
		WHERE status_kind = 'active' AND expires_at <= $1
		RETURNING ` + membershipColumns

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to expire due memberships: %w", err)
	}
	defer rows.Close()

	expired := []domain.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		expired = append(expired, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return expired, nil
}
