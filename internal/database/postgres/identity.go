package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/repository"
)

const userColumns = `
	user_id, username, pfp_url, display_name, bio, email, email_verified_at,
	current_wallet_address, profile_initialized_at, socials_x, socials_linkedin, created_at`

const linkColumns = `
	linked_account_id, user_id, protocol, fid, address, email, phone,
	username, pfp_url, display_name, bio, last_synced_at, linked_at`

// IdentityRepository implements repository.Identity for PostgreSQL
type IdentityRepository struct {
	db *pgxpool.Pool
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(db *pgxpool.Pool) repository.Identity {
	return &IdentityRepository{db: db}
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var socialX, socialLinkedIn *string
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PfpURL,
		&u.DisplayName,
		&u.Bio,
		&u.Email,
		&u.EmailVerifiedAt,
		&u.CurrentWalletAddress,
		&u.ProfileInitializedAt,
		&socialX,
		&socialLinkedIn,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if socialX != nil || socialLinkedIn != nil {
		u.Socials = &domain.Socials{X: socialX, LinkedIn: socialLinkedIn}
	}
	return &u, nil
}

func scanLinkedAccount(row scanner) (*domain.LinkedAccount, error) {
	var (
		link                               domain.LinkedAccount
		protocol                           string
		fid                                *int64
		address, email, phone              *string
		username, pfpURL, displayName, bio *string
		lastSyncedAt                       *time.Time
	)
	err := row.Scan(
		&link.ID,
		&link.UserID,
		&protocol,
		&fid,
		&address,
		&email,
		&phone,
		&username,
		&pfpURL,
		&displayName,
		&bio,
		&lastSyncedAt,
		&link.LinkedAt,
	)
	if err != nil {
		return nil, err
	}

	switch domain.Protocol(protocol) {
	case domain.ProtocolFarcaster:
		acc := domain.FarcasterAccount{
			Username:     username,
			PfpURL:       pfpURL,
			DisplayName:  displayName,
			Bio:          bio,
			LastSyncedAt: lastSyncedAt,
		}
		if fid != nil {
			acc.Fid = *fid
		}
		link.Account = acc
	case domain.ProtocolWallet:
		link.Account = domain.WalletAccount{Address: deref(address)}
	case domain.ProtocolEmail:
		link.Account = domain.EmailAccount{Email: deref(email)}
	case domain.ProtocolPhone:
		link.Account = domain.PhoneAccount{Phone: deref(phone)}
	default:
		return nil, fmt.Errorf("unknown linked account protocol %q", protocol)
	}
	return &link, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetUserByID retrieves a user, or nil when absent
func (r *IdentityRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !validID(userID) {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUsersByIDs retrieves the users that exist among userIDs, keyed by id
func (r *IdentityRepository) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	ids := validIDs(userIDs)
	result := make(map[string]domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ANY($1::uuid[])`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result[user.ID] = *user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return result, nil
}

// UpdateUserProfile applies the non-nil fields of update
func (r *IdentityRepository) UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}

	var socialX, socialLinkedIn *string
	setSocials := update.Socials != nil
	if setSocials {
		socialX, socialLinkedIn = update.Socials.X, update.Socials.LinkedIn
	}

	query := `
		UPDATE users SET
			display_name     = COALESCE($2, display_name),
			bio              = COALESCE($3, bio),
			pfp_url          = COALESCE($4, pfp_url),
			socials_x        = CASE WHEN $5 THEN $6 ELSE socials_x END,
			socials_linkedin = CASE WHEN $5 THEN $7 ELSE socials_linkedin END,
			updated_at       = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query,
		userID,
		update.DisplayName,
		update.Bio,
		update.PfpURL,
		setSocials,
		socialX,
		socialLinkedIn,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return user, nil
}

// GetLinkedAccountByFid finds the farcaster link for fid, or nil
func (r *IdentityRepository) GetLinkedAccountByFid(ctx context.Context, fid int64) (*domain.LinkedAccount, error) {
	query := `SELECT ` + linkColumns + ` FROM linked_accounts WHERE protocol = 'farcaster' AND fid = $1`
	return r.getLink(ctx, query, fid)
}

// GetLinkedAccountByWallet finds the wallet link for address (case-insensitive), or nil
func (r *IdentityRepository) GetLinkedAccountByWallet(ctx context.Context, address string) (*domain.LinkedAccount, error) {
	query := `SELECT ` + linkColumns + ` FROM linked_accounts WHERE protocol = 'wallet' AND lower(address) = lower($1)`
	return r.getLink(ctx, query, address)
}

func (r *IdentityRepository) getLink(ctx context.Context, query string, arg any) (*domain.LinkedAccount, error) {
	link, err := scanLinkedAccount(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get linked account: %w", err)
	}
	return link, nil
}

// ListLinkedAccounts returns every account linked to a user, oldest first
func (r *IdentityRepository) ListLinkedAccounts(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	if !validID(userID) {
		return []domain.LinkedAccount{}, nil
	}
	query := `SELECT ` + linkColumns + ` FROM linked_accounts WHERE user_id = $1 ORDER BY linked_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query linked accounts: %w", err)
	}
	defer rows.Close()

	links := []domain.LinkedAccount{}
	for rows.Next() {
		link, err := scanLinkedAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan linked account: %w", err)
		}
		links = append(links, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return links, nil
}

// CreateUserWithLink inserts a user and its first linked account atomically
func (r *IdentityRepository) CreateUserWithLink(ctx context.Context, user domain.User, link domain.LinkedAccount) (*domain.User, *domain.LinkedAccount, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var socialX, socialLinkedIn *string
	if user.Socials != nil {
		socialX, socialLinkedIn = user.Socials.X, user.Socials.LinkedIn
	}

	userQuery := `
		INSERT INTO users (username, pfp_url, display_name, bio, email, email_verified_at,
			current_wallet_address, profile_initialized_at, socials_x, socials_linkedin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns

	created, err := scanUser(tx.QueryRow(ctx, userQuery,
		user.Username,
		user.PfpURL,
		user.DisplayName,
		user.Bio,
		user.Email,
		user.EmailVerifiedAt,
		user.CurrentWalletAddress,
		user.ProfileInitializedAt,
		socialX,
		socialLinkedIn,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert user: %w", err)
	}

	var (
		fid                                *int64
		address, email, phone              *string
		username, pfpURL, displayName, bio *string
		lastSyncedAt                       *time.Time
	)
	switch acc := link.Account.(type) {
	case domain.FarcasterAccount:
		fid = &acc.Fid
		username, pfpURL, displayName, bio = acc.Username, acc.PfpURL, acc.DisplayName, acc.Bio
		lastSyncedAt = acc.LastSyncedAt
	case domain.WalletAccount:
		a := strings.ToLower(acc.Address)
		address = &a
	case domain.EmailAccount:
		email = &acc.Email
	case domain.PhoneAccount:
		phone = &acc.Phone
	default:
		return nil, nil, fmt.Errorf("%w: unsupported linked account", domain.ErrInvalidInput)
	}

	linkedAt := link.LinkedAt
	if linkedAt.IsZero() {
		linkedAt = time.Now().UTC()
	}

	linkQuery := `
		INSERT INTO linked_accounts (user_id, protocol, fid, address, email, phone,
			username, pfp_url, display_name, bio, last_synced_at, linked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + linkColumns

	createdLink, err := scanLinkedAccount(tx.QueryRow(ctx, linkQuery,
		created.ID,
		string(link.Account.Protocol()),
		fid,
		address,
		email,
		phone,
		username,
		pfpURL,
		displayName,
		bio,
		lastSyncedAt,
		linkedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrDuplicateLink, link.Account.Protocol())
		}
		return nil, nil, fmt.Errorf("failed to insert linked account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrDuplicateLink, link.Account.Protocol())
		}
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return created, createdLink, nil
}

// TouchLinkSynced stamps last_synced_at on a linked account
func (r *IdentityRepository) TouchLinkSynced(ctx context.Context, linkedAccountID string, at time.Time) error {
	query := `UPDATE linked_accounts SET last_synced_at = $2 WHERE linked_account_id = $1`
	if _, err := r.db.Exec(ctx, query, linkedAccountID, at); err != nil {
		return fmt.Errorf("failed to update last_synced_at: %w", err)
	}
	return nil
}
