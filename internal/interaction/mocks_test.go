package interaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
)

type MockPostViewer struct {
	mock.Mock
}

func (m *MockPostViewer) GetPost(ctx context.Context, viewerID, postID string) (*domain.FeedPost, error) {
	args := m.Called(ctx, viewerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedPost), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

// fakeInteractions keeps like rows and the counters they drive
type fakeInteractions struct {
	mu       sync.Mutex
	likes    map[string]bool
	counts   map[string]*domain.PostStats
	comments []domain.Comment
}

func newFakeInteractions() *fakeInteractions {
	return &fakeInteractions{
		likes:  make(map[string]bool),
		counts: make(map[string]*domain.PostStats),
	}
}

func (f *fakeInteractions) stats(postID string) *domain.PostStats {
	if f.counts[postID] == nil {
		f.counts[postID] = &domain.PostStats{}
	}
	return f.counts[postID]
}

func (f *fakeInteractions) AddLike(_ context.Context, postID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := postID + "|" + userID
	if f.likes[key] {
		return false, nil
	}
	f.likes[key] = true
	f.stats(postID).LikeCount++
	return true, nil
}

func (f *fakeInteractions) RemoveLike(_ context.Context, postID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := postID + "|" + userID
	if !f.likes[key] {
		return false, nil
	}
	delete(f.likes, key)
	f.stats(postID).LikeCount--
	return true, nil
}

func (f *fakeInteractions) AddComment(_ context.Context, c domain.Comment) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = fmt.Sprintf("cm%d", len(f.comments)+1)
	f.comments = append(f.comments, c)
	f.stats(c.PostID).CommentCount++
	return &c, nil
}

func (f *fakeInteractions) ListComments(_ context.Context, postID string) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeInteractions) IncrementShare(_ context.Context, postID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats(postID).ShareCount++
	return f.stats(postID).ShareCount, nil
}

func (f *fakeInteractions) HasLiked(_ context.Context, postID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[postID+"|"+userID], nil
}
