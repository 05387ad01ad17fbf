package interaction

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/event"
)

func as(userID string) context.Context {
	return auth.WithUser(context.Background(), &auth.User{ID: userID})
}

func openPost(id string) *domain.FeedPost {
	return &domain.FeedPost{Post: domain.Post{ID: id, CreatorID: "c1"}}
}

func setup() (Service, *fakeInteractions, *MockPostViewer, *MockPublisher) {
	repo := newFakeInteractions()
	viewer := new(MockPostViewer)
	pub := new(MockPublisher)
	return NewService(repo, viewer, pub), repo, viewer, pub
}

func TestLike_Idempotent(t *testing.T) {
	svc, repo, viewer, pub := setup()
	viewer.On("GetPost", mock.Anything, "u1", "p1").Return(openPost("p1"), nil)
	pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.PostLiked
	})).Once()

	liked, err := svc.Like(as("u1"), "p1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.Like(as("u1"), "p1")
	require.NoError(t, err)
	assert.False(t, liked, "second like inserts nothing")

	assert.Equal(t, int64(1), repo.stats("p1").LikeCount)
	pub.AssertExpectations(t)
}

func TestLike_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		post    *domain.FeedPost
		postErr error
		wantErr error
	}{
		{"anonymous", context.Background(), nil, nil, domain.ErrUnauthorized},
		{"missing post", as("u1"), nil, domain.ErrPostNotFound, domain.ErrPostNotFound},
		{"locked post", as("u1"), &domain.FeedPost{Post: domain.Post{ID: "p1"}, Locked: true}, nil, domain.ErrContentLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, viewer, _ := setup()
			if tt.post != nil {
				viewer.On("GetPost", mock.Anything, "u1", "p1").Return(tt.post, nil)
			} else {
				viewer.On("GetPost", mock.Anything, "u1", "p1").Return(nil, tt.postErr)
			}

			_, err := svc.Like(tt.ctx, "p1")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.likes)
		})
	}
}

func TestUnlike(t *testing.T) {
	svc, repo, viewer, pub := setup()
	viewer.On("GetPost", mock.Anything, "u1", "p1").Return(openPost("p1"), nil)
	pub.On("PublishWithRetry", mock.Anything, mock.Anything)

	removed, err := svc.Unlike(as("u1"), "p1")
	require.NoError(t, err)
	assert.False(t, removed, "nothing to remove")
	assert.Equal(t, int64(0), repo.stats("p1").LikeCount)

	_, err = svc.Like(as("u1"), "p1")
	require.NoError(t, err)
	removed, err = svc.Unlike(as("u1"), "p1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, int64(0), repo.stats("p1").LikeCount)

	_, err = svc.Unlike(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestShare(t *testing.T) {
	svc, _, viewer, _ := setup()
	viewer.On("GetPost", mock.Anything, "u1", "p1").Return(openPost("p1"), nil)

	for want := int64(1); want <= 3; want++ {
		got, err := svc.Share(as("u1"), "p1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestComment(t *testing.T) {
	svc, repo, viewer, pub := setup()
	viewer.On("GetPost", mock.Anything, mock.Anything, "p1").Return(openPost("p1"), nil)
	pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		p, ok := e.Payload.(event.PostInteractionPayloadV1)
		return ok && e.Type == event.PostCommented && p.CommentID == "cm1"
	})).Once()

	c, err := svc.Comment(as("u1"), "p1", CommentInput{Text: "  nice post  "})
	require.NoError(t, err)
	assert.Equal(t, "nice post", c.Text)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, int64(1), repo.stats("p1").CommentCount)

	_, err = svc.Comment(as("u1"), "p1", CommentInput{Text: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Comment(as("u1"), "p1", CommentInput{Text: strings.Repeat("a", 2001)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	comments, err := svc.ListComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	pub.AssertExpectations(t)
}

func TestListComments_LockedPost(t *testing.T) {
	svc, _, viewer, _ := setup()
	viewer.On("GetPost", mock.Anything, "", "p1").Return(&domain.FeedPost{Locked: true}, nil)

	_, err := svc.ListComments(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrContentLocked)
}

func TestLikeCountTracksRows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc, repo, viewer, pub := setup()
		viewer.On("GetPost", mock.Anything, mock.Anything, mock.Anything).Return(openPost("p"), nil)
		pub.On("PublishWithRetry", mock.Anything, mock.Anything)

		ops := rapid.SliceOf(rapid.IntRange(0, 7)).Draw(t, "ops")
		for _, op := range ops {
			user := fmt.Sprintf("u%d", op%4)
			var err error
			if op < 4 {
				_, err = svc.Like(as(user), "p")
			} else {
				_, err = svc.Unlike(as(user), "p")
			}
			if err != nil {
				t.Fatalf("op %d: %v", op, err)
			}
		}

		if got, want := repo.stats("p").LikeCount, int64(len(repo.likes)); got != want {
			t.Fatalf("like count %d, like rows %d", got, want)
		}
	})
}
