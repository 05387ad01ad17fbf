package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// fakeRepository is an in-memory repository.Identity with the same
// uniqueness rules as the database: one link per fid and per lower-cased wallet.
type fakeRepository struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	links   map[string]*domain.LinkedAccount
	nextID  int
	touched map[string]time.Time

	// beforeCreate runs inside CreateUserWithLink before the uniqueness check
	beforeCreate func()
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:   make(map[string]*domain.User),
		links:   make(map[string]*domain.LinkedAccount),
		touched: make(map[string]time.Time),
	}
}

func (f *fakeRepository) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepository) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.User)
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			out[id] = *u
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.DisplayName != nil {
		u.DisplayName = update.DisplayName
	}
	if update.Bio != nil {
		u.Bio = update.Bio
	}
	if update.PfpURL != nil {
		u.PfpURL = *update.PfpURL
	}
	if update.Socials != nil {
		u.Socials = update.Socials
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepository) findLink(match func(domain.Account) bool) *domain.LinkedAccount {
	for _, l := range f.links {
		if match(l.Account) {
			cp := *l
			return &cp
		}
	}
	return nil
}

func (f *fakeRepository) GetLinkedAccountByFid(ctx context.Context, fid int64) (*domain.LinkedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLink(func(a domain.Account) bool {
		fc, ok := a.(domain.FarcasterAccount)
		return ok && fc.Fid == fid
	}), nil
}

func (f *fakeRepository) GetLinkedAccountByWallet(ctx context.Context, address string) (*domain.LinkedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLink(func(a domain.Account) bool {
		w, ok := a.(domain.WalletAccount)
		return ok && strings.EqualFold(w.Address, address)
	}), nil
}

func (f *fakeRepository) ListLinkedAccounts(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.LinkedAccount{}
	for _, l := range f.links {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepository) CreateUserWithLink(ctx context.Context, user domain.User, link domain.LinkedAccount) (*domain.User, *domain.LinkedAccount, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	duplicate := f.findLink(func(a domain.Account) bool {
		switch existing := a.(type) {
		case domain.FarcasterAccount:
			fc, ok := link.Account.(domain.FarcasterAccount)
			return ok && fc.Fid == existing.Fid
		case domain.WalletAccount:
			w, ok := link.Account.(domain.WalletAccount)
			return ok && strings.EqualFold(w.Address, existing.Address)
		}
		return false
	})
	if duplicate != nil {
		return nil, nil, domain.ErrDuplicateLink
	}

	user.ID = f.id("user")
	user.CreatedAt = time.Now()
	link.ID = f.id("link")
	link.UserID = user.ID
	f.users[user.ID] = &user
	f.links[link.ID] = &link

	u, l := user, link
	return &u, &l, nil
}

func (f *fakeRepository) TouchLinkSynced(ctx context.Context, linkedAccountID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[linkedAccountID] = at
	return nil
}

func (f *fakeRepository) counts() (users, links int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), len(f.links)
}

// dropUser simulates a dangling link
func (f *fakeRepository) dropUser(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
}
