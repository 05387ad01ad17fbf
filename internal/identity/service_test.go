package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

func strPtr(s string) *string { return &s }

func profile(name string) domain.ProfileFields {
	return domain.ProfileFields{Username: name, PfpURL: "https://img/" + name}
}

func TestResolveOrCreateByFid_CreatesThenResolves(t *testing.T) {
	repo := newFakeRepository()
	pub := new(MockPublisher)
	pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.UserCreated
	})).Once()
	svc := NewService(repo, pub)
	ctx := context.Background()

	first, err := svc.ResolveOrCreateByFid(ctx, 42, profile("alice"))
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.ResolveOrCreateByFid(ctx, 42, profile("renamed"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	user, err := svc.GetUser(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username, "repeat sign-in does not refresh profile fields")

	users, links := repo.counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, links)
	pub.AssertExpectations(t)
}

func TestResolveOrCreateByFid_StampsLastSyncedOnRepeat(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, nil).(*service)
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return stamp }
	ctx := context.Background()

	_, err := s.ResolveOrCreateByFid(ctx, 7, profile("bob"))
	require.NoError(t, err)
	link, err := repo.GetLinkedAccountByFid(ctx, 7)
	require.NoError(t, err)

	// a fresh service has an empty cache and goes through the repository
	s2 := NewService(repo, nil).(*service)
	s2.now = func() time.Time { return stamp.Add(time.Hour) }
	_, err = s2.ResolveOrCreateByFid(ctx, 7, profile("bob"))
	require.NoError(t, err)
	assert.Equal(t, stamp.Add(time.Hour), repo.touched[link.ID])
}

func TestResolveOrCreateByFid_InvalidFid(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)
	_, err := svc.ResolveOrCreateByFid(context.Background(), 0, profile("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidFid)
}

func TestResolveOrCreateByFid_DanglingLink(t *testing.T) {
	repo := newFakeRepository()
	ctx := context.Background()
	userID, err := NewService(repo, nil).ResolveOrCreateByFid(ctx, 9, profile("ghost"))
	require.NoError(t, err)
	repo.dropUser(userID)

	svc := NewService(repo, nil)
	_, err = svc.ResolveOrCreateByFid(ctx, 9, profile("ghost"))
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.Contains(t, err.Error(), domain.ErrMsgDataIntegrity)

	_, err = svc.GetByFid(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestResolveOrCreateByFid_LoserReturnsWinner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	// both callers pass the initial lookup before either inserts
	var gate sync.WaitGroup
	gate.Add(2)
	repo.beforeCreate = func() {
		gate.Done()
		gate.Wait()
	}

	ids := make([]string, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = svc.ResolveOrCreateByFid(ctx, 100, profile("racer"))
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, ids[0], ids[1])
	users, links := repo.counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, links)
}

func TestGetByFid(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	missing, err := svc.GetByFid(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, missing, "not found is not an error")

	p := profile("carol")
	p.DisplayName = strPtr("Carol")
	userID, err := svc.ResolveOrCreateByFid(ctx, 5, p)
	require.NoError(t, err)

	view, err := svc.GetByFid(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, userID, view.UserID)
	assert.Equal(t, int64(5), view.Fid)
	assert.Equal(t, "Carol", *view.DisplayName)
	assert.False(t, view.LinkedAt.IsZero())
}

func TestResolveOrCreateByWallet(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()
	addr := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	_, err := svc.ResolveOrCreateByWallet(ctx, "not-an-address", domain.ProfileFields{})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	id, err := svc.ResolveOrCreateByWallet(ctx, addr, domain.ProfileFields{})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, addr, user.Username, "username defaults to the address")
	assert.Equal(t, addr, *user.CurrentWalletAddress)

	again, err := NewService(repo, nil).ResolveOrCreateByWallet(ctx, addr, domain.ProfileFields{})
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()
	id, err := svc.ResolveOrCreateByFid(ctx, 11, profile("dave"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, id, domain.ProfileUpdate{PfpURL: strPtr("not a url")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := svc.UpdateProfile(ctx, id, domain.ProfileUpdate{Bio: strPtr("hello")})
	require.NoError(t, err)
	assert.Equal(t, "hello", *u.Bio)

	_, err = svc.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Resolving any fid any number of times yields one user and one link per fid.
func TestResolveOrCreateByFid_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := newFakeRepository()
		svc := NewService(repo, nil)
		ctx := context.Background()

		fids := rapid.SliceOfN(rapid.Int64Range(1, 20), 1, 40).Draw(t, "fids")
		seen := make(map[int64]string)
		for _, fid := range fids {
			name := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "name")
			id, err := svc.ResolveOrCreateByFid(ctx, fid, profile(name))
			if err != nil {
				t.Fatalf("resolve %d: %v", fid, err)
			}
			if prev, ok := seen[fid]; ok && prev != id {
				t.Fatalf("fid %d resolved to %s then %s", fid, prev, id)
			}
			seen[fid] = id
		}

		users, links := repo.counts()
		if users != len(seen) || links != len(seen) {
			t.Fatalf("expected %d users and links, got %d users %d links", len(seen), users, links)
		}
	})
}
